package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/caseflow-io/caseflow/internal/database"
)

var contactMarkers = []string{"Company", "Company Name", "company", "company_name", "Name", "Contact Name", "contact_name", "Email", "Email Address", "email_address"}

var nonDigits = regexp.MustCompile(`\D`)

// ParseContacts parses a contact/property-manager sheet. Header variants are
// folded into canonical keys before the standard fields are read. Duplicate
// names are skipped outright (first occurrence wins, no merging), matching
// how contact rosters repeat across exports.
func (p *Parser) ParseContacts(grid [][]string, sheetName string) ([]*database.Contact, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, contactMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	seen := make(map[string]bool)
	var contacts []*database.Contact

	for i, row := range rows {
		row = normalizeContactRow(row)

		company := firstNonEmpty(row, "Company")
		if looksLikeHeaderValue(company) {
			warnings = append(warnings, rowWarning(sheetName, i+1, "header row detected in data"))
			continue
		}

		name := firstNonEmpty(row, "Company", "Name")
		if name == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no name or company"))
			continue
		}

		dedupKey := strings.ToLower(strings.TrimSpace(name))
		if seen[dedupKey] {
			warnings = append(warnings, rowWarning(sheetName, i+1, "duplicate contact: "+name))
			continue
		}
		seen[dedupKey] = true

		contacts = append(contacts, &database.Contact{
			ContactID: uuid.NewString(),
			Name:      name,
			Role:      inferContactRole(firstNonEmpty(row, "Role")),
			Email:     firstNonEmpty(row, "Email"),
			Phone:     formatPhoneNumber(firstNonEmpty(row, "Phone")),
			Company:   company,
			Address:   firstNonEmpty(row, "Address"),
		})
	}

	p.logger.Debug("Parsed contacts", "sheet", sheetName, "count", len(contacts))
	return contacts, warnings
}

// normalizeContactRow folds arbitrary header variants onto canonical contact
// keys via case-insensitive substring checks. Existing canonical keys are
// never overwritten.
func normalizeContactRow(row Row) Row {
	out := Row{}
	for key, value := range row {
		out[key] = value
	}

	for key, value := range row {
		lower := strings.ToLower(key)
		var canonical string
		switch {
		case strings.Contains(lower, "company") || strings.Contains(lower, "business"):
			canonical = "Company"
		case strings.Contains(lower, "phone") || strings.Contains(lower, "cell") || strings.Contains(lower, "mobile"):
			canonical = "Phone"
		case strings.Contains(lower, "email") || strings.Contains(lower, "e-mail"):
			canonical = "Email"
		case strings.Contains(lower, "name"):
			canonical = "Name"
		case strings.Contains(lower, "role") || strings.Contains(lower, "title"):
			canonical = "Role"
		case strings.Contains(lower, "address"):
			canonical = "Address"
		default:
			continue
		}
		if FormatStringValue(out[canonical]) == "" {
			out[canonical] = value
		}
	}
	return out
}

// looksLikeHeaderValue flags company cells that are really stray header text.
func looksLikeHeaderValue(v string) bool {
	lower := strings.ToLower(v)
	return strings.Contains(lower, "company") ||
		strings.Contains(lower, "business") ||
		strings.Contains(lower, "name")
}

// formatPhoneNumber reformats to xxx-xxx-xxxx only when exactly 10 digits
// remain after stripping; anything else passes through untouched.
func formatPhoneNumber(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return raw
	}
	return fmt.Sprintf("%s-%s-%s", digits[0:3], digits[3:6], digits[6:10])
}

func inferContactRole(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "attorney") || strings.Contains(lower, "lawyer"):
		return database.RoleAttorney
	case strings.Contains(lower, "paralegal"):
		return database.RoleParalegal
	case strings.Contains(lower, "pm") || strings.Contains(lower, "property manager") || strings.Contains(lower, "project manager"):
		return database.RolePM
	case strings.Contains(lower, "client"):
		return database.RoleClient
	default:
		return database.RoleOther
	}
}

// BuildClientPrefixMap maps the first three alphanumeric characters of each
// contact name (uppercased) to its contact ID, first occurrence wins. Kept
// for parity with client-number conventions in the source exports.
func BuildClientPrefixMap(contacts []*database.Contact) map[string]string {
	prefixes := make(map[string]string)
	for _, c := range contacts {
		var b strings.Builder
		for _, r := range strings.ToUpper(c.Name) {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
				if b.Len() >= 3 {
					break
				}
			}
		}
		prefix := b.String()
		if prefix == "" {
			continue
		}
		if _, exists := prefixes[prefix]; !exists {
			prefixes[prefix] = c.ContactID
		}
	}
	return prefixes
}
