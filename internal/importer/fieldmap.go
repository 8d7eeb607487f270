package importer

import (
	"path/filepath"
	"sort"
	"strings"
)

// Canonical sheet names the parsers understand.
const (
	SheetComplaint     = "Complaint"
	SheetSummons       = "Summons"
	SheetAllEvictions  = "All Evictions"
	SheetCourt25       = "Court 25"
	SheetCourt24       = "Court 24"
	SheetZoom          = "ZOOM"
	SheetInvoices      = "invoices"
	SheetNewInvoices   = "New Invoices"
	SheetFinalInvoices = "Final Invoices"
	SheetPMInfo        = "PM INFO"
	SheetPaymentPlans  = "Payment Plans"
	SheetServiceLogs   = "Service Logs"
)

// FieldRule rewrites one source column into a canonical field. Transform,
// when set, is applied to the value before it is written.
type FieldRule struct {
	Source    string
	Target    string
	Transform func(interface{}) interface{}
}

// MappingConfig is the immutable mapping configuration injected into the
// importer: per-sheet field rules, filename aliases and document skip markers.
type MappingConfig struct {
	sheetRules  map[string][]FieldRule
	fileAliases map[string]string

	// DocumentSkipMarkers flags instructional/footer rows misread as data.
	// Known heuristic: may false-positive on real IDs containing them.
	DocumentSkipMarkers []string
}

func upperTrim(v interface{}) interface{} {
	return strings.ToUpper(FormatStringValue(v))
}

func trim(v interface{}) interface{} {
	return FormatStringValue(v)
}

// DefaultMappingConfig builds the mapping tables for the sheet layouts seen
// in client exports.
func DefaultMappingConfig() *MappingConfig {
	return &MappingConfig{
		sheetRules: map[string][]FieldRule{
			SheetComplaint: {
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "case_number", Target: "File #", Transform: upperTrim},
				{Source: "plaintiff", Target: "Plaintiff 1", Transform: trim},
				{Source: "plaintiff_1", Target: "Plaintiff 1", Transform: trim},
				{Source: "defendant", Target: "Defendant 1", Transform: trim},
				{Source: "defendant_1", Target: "Defendant 1", Transform: trim},
				{Source: "property_address", Target: "Property Address", Transform: trim},
				{Source: "street_address", Target: "Property Address", Transform: trim},
				{Source: "city", Target: "City", Transform: trim},
				{Source: "state", Target: "State", Transform: upperTrim},
				{Source: "zip", Target: "Zip", Transform: trim},
				{Source: "zip_code", Target: "Zip", Transform: trim},
				{Source: "date_filed", Target: "Date Filed"},
				{Source: "filing_date", Target: "Date Filed"},
			},
			SheetSummons: {
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "unnamed_0", Target: "File #", Transform: upperTrim},
				{Source: "document_type", Target: "Document Type", Transform: trim},
				{Source: "service_date", Target: "Service Date"},
				{Source: "date_served", Target: "Service Date"},
				{Source: "failure_reason", Target: "Failure Reason", Transform: trim},
			},
			SheetAllEvictions: {
				{Source: "case_no", Target: "Case No", Transform: upperTrim},
				{Source: "client_no", Target: "Client No", Transform: upperTrim},
				{Source: "case_name", Target: "Case Name", Transform: trim},
				{Source: "status", Target: "Status", Transform: trim},
				{Source: "outcome", Target: "Outcome", Transform: trim},
				{Source: "next_court_date", Target: "Next Court Date"},
			},
			SheetCourt25: {
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "court_date", Target: "Court Date"},
				{Source: "hearing_date", Target: "Court Date"},
				{Source: "courtroom", Target: "Courtroom", Transform: trim},
				{Source: "court_room", Target: "Courtroom", Transform: trim},
				{Source: "outcome", Target: "Outcome", Transform: trim},
			},
			SheetCourt24: {
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "court_date", Target: "Court Date"},
				{Source: "courtroom", Target: "Courtroom", Transform: trim},
				{Source: "outcome", Target: "Outcome", Transform: trim},
			},
			SheetZoom: {
				{Source: "courtroom", Target: "Courtroom", Transform: trim},
				{Source: "meeting_id", Target: "Meeting ID", Transform: trim},
				{Source: "password", Target: "Password", Transform: trim},
				{Source: "judge", Target: "Judge", Transform: trim},
			},
			SheetInvoices: {
				{Source: "invoice_number", Target: "Invoice #", Transform: upperTrim},
				{Source: "invoice_no", Target: "Invoice #", Transform: upperTrim},
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "amount", Target: "Amount"},
				{Source: "amount_due", Target: "Amount"},
				{Source: "issue_date", Target: "Issue Date"},
				{Source: "invoice_date", Target: "Issue Date"},
				{Source: "due_date", Target: "Due Date"},
				{Source: "paid", Target: "Paid"},
				{Source: "payment_status", Target: "Paid"},
			},
			SheetPMInfo: {
				{Source: "company", Target: "Company", Transform: trim},
				{Source: "company_name", Target: "Company", Transform: trim},
				{Source: "contact_name", Target: "Name", Transform: trim},
				{Source: "phone_number", Target: "Phone", Transform: trim},
				{Source: "email_address", Target: "Email", Transform: trim},
				{Source: "role", Target: "Role", Transform: trim},
			},
			SheetPaymentPlans: {
				{Source: "case_number", Target: "Case #", Transform: upperTrim},
				{Source: "installment_date", Target: "Installment Date"},
				{Source: "amount", Target: "Amount"},
				{Source: "paid", Target: "Paid"},
			},
			SheetServiceLogs: {
				{Source: "file_number", Target: "File #", Transform: upperTrim},
				{Source: "method", Target: "Method", Transform: trim},
				{Source: "attempt_date", Target: "Attempt Date"},
				{Source: "result", Target: "Result", Transform: trim},
			},
		},
		fileAliases: map[string]string{
			"complaint":            SheetComplaint,
			"complaints":           SheetComplaint,
			"summons":              SheetSummons,
			"all evictions":        SheetAllEvictions,
			"evictions":            SheetAllEvictions,
			"court 25":             SheetCourt25,
			"court25":              SheetCourt25,
			"court 24":             SheetCourt24,
			"court24":              SheetCourt24,
			"zoom":                 SheetZoom,
			"invoices":             SheetInvoices,
			"outstanding invoices": SheetInvoices,
			"new invoices":         SheetNewInvoices,
			"final invoices":       SheetFinalInvoices,
			"pm info":              SheetPMInfo,
			"contacts":             SheetPMInfo,
			"payment plans":        SheetPaymentPlans,
			"service logs":         SheetServiceLogs,
			"sheriff log":          SheetServiceLogs,
		},
		DocumentSkipMarkers: []string{"INSTRUCTION", "TOTAL", "file", "note"},
	}
}

// TransformRow rewrites a source row's columns into canonical field names for
// the given sheet. Input fields no rule consumed are copied through with
// their key converted from snake_case to Title Case, so unmapped data is
// never silently dropped. Unknown sheets pass through unchanged.
func (m *MappingConfig) TransformRow(row Row, sheetName string) Row {
	rules, ok := m.sheetRules[sheetName]
	if !ok {
		return row
	}

	out := Row{}
	consumed := make(map[string]bool)

	for _, rule := range rules {
		value, present := row[rule.Source]
		if !present {
			continue
		}
		consumed[rule.Source] = true
		if rule.Transform != nil {
			if transformed := rule.Transform(value); transformed != nil {
				value = transformed
			}
		}
		out[rule.Target] = value
	}

	for key, value := range row {
		if consumed[key] {
			continue
		}
		out[snakeToTitle(key)] = value
	}
	return out
}

// TransformDataset applies TransformRow to every row.
func (m *MappingConfig) TransformDataset(rows []Row, sheetName string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.TransformRow(row, sheetName))
	}
	return out
}

// MapFileNameToSheetName resolves an uploaded file's name to a canonical
// sheet name: direct alias lookup first, then substring matching in either
// direction, else the cleaned name unchanged (the caller falls back to
// content-based detection).
func (m *MappingConfig) MapFileNameToSheetName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.ToLower(strings.TrimSpace(base))
	cleaned = strings.NewReplacer("_", " ", "-", " ").Replace(cleaned)

	if canonical, ok := m.fileAliases[cleaned]; ok {
		return canonical
	}

	// Substring fallback, longest alias first so "new invoices" beats
	// "invoices"
	aliases := make([]string, 0, len(m.fileAliases))
	for alias := range m.fileAliases {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	for _, alias := range aliases {
		if strings.Contains(cleaned, alias) || strings.Contains(alias, cleaned) {
			return m.fileAliases[alias]
		}
	}
	return cleaned
}

// snakeToTitle converts snake_case keys to Title Case ("file_number" ->
// "File Number").
func snakeToTitle(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
