package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/caseflow-io/caseflow/internal/database"
)

var invoiceMarkers = []string{"Invoice #", "invoice_number", "invoice_no", "Amount", "amount_due"}

// SheetData pairs a canonical sheet name with its raw grid.
type SheetData struct {
	Name string
	Grid [][]string
}

// ParseInvoices merges invoice rows from multiple sources (Outstanding, New,
// Final) by invoice number, first seen wins: the first complete record for an
// invoice is kept whole and later sources never amend it. Cases merge
// field-by-field; invoices deliberately do not, so a bill is never assembled
// from mixed exports.
func (p *Parser) ParseInvoices(sources []SheetData, caseIDMap map[string]string) ([]*database.Invoice, []string) {
	var warnings []string

	seen := make(map[string]bool)
	var invoices []*database.Invoice

	for _, source := range sources {
		rows, ok := p.prepareRows(source.Grid, source.Name, invoiceMarkers)
		if !ok {
			warnings = append(warnings, source.Name+": missing expected headers")
			continue
		}

		for i, row := range rows {
			invoiceID := firstNonEmpty(row, "Invoice #", "Invoice No", "Invoice Number")
			if invoiceID == "" {
				warnings = append(warnings, rowWarning(source.Name, i+1, "no invoice number"))
				continue
			}
			if seen[invoiceID] {
				continue
			}
			seen[invoiceID] = true

			fileID := firstNonEmpty(row, "File #", "Case No", "Case Number")
			issueDate := ParseDateValue(firstNonEmpty(row, "Issue Date", "Invoice Date", "Date"))
			dueDate := ParseDateValue(firstNonEmpty(row, "Due Date"))
			if dueDate == "" && issueDate != "" {
				dueDate = addDays(issueDate, 30)
			}

			invoices = append(invoices, &database.Invoice{
				InvoiceID: invoiceID,
				CaseID:    ResolveCaseID(caseIDMap, fileID),
				Amount:    FormatNumericValue(row["Amount"]),
				IssueDate: issueDate,
				DueDate:   dueDate,
				Paid:      ParsePaidFlag(row["Paid"]),
			})
		}
	}

	p.logger.Debug("Parsed invoices", "count", len(invoices))
	return invoices, warnings
}

// ParsePaidFlag interprets the many shapes a "paid" column takes: booleans,
// the strings paid/yes/complete (case-insensitive), or the number 1.
func ParsePaidFlag(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val == 1
	case int:
		return val == 1
	}

	s := strings.ToLower(FormatStringValue(v))
	switch s {
	case "paid", "yes", "complete", "true":
		return true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n == 1
	}
	return false
}

// addDays shifts an ISO date string by n days.
func addDays(iso string, days int) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).UTC().Format(isoLayout)
}
