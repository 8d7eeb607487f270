package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/caseflow-io/caseflow/internal/database"
)

var paymentPlanMarkers = []string{"Case #", "case_number", "Installment Date", "installment_date", "Amount"}

// ParsePaymentPlans parses installment rows and attaches each to an invoice
// by substring-matching the row's case number against invoice case IDs; the
// first containing invoice wins. Rows with a non-positive amount or no
// matching invoice are skipped.
func (p *Parser) ParsePaymentPlans(grid [][]string, sheetName string, invoices []*database.Invoice) ([]*database.PaymentPlan, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, paymentPlanMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	var plans []*database.PaymentPlan
	for i, row := range rows {
		caseNo := firstNonEmpty(row, "Case #", "Case Number", "File #")
		if caseNo == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no case number"))
			continue
		}

		amount := FormatNumericValue(row["Amount"])
		if amount <= 0 {
			warnings = append(warnings, rowWarning(sheetName, i+1, "non-positive amount"))
			continue
		}

		invoice := matchInvoiceByCaseNumber(invoices, caseNo)
		if invoice == nil {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no invoice for case "+caseNo))
			continue
		}

		plans = append(plans, &database.PaymentPlan{
			PlanID:          uuid.NewString(),
			InvoiceID:       invoice.InvoiceID,
			InstallmentDate: ParseDateValue(firstNonEmpty(row, "Installment Date", "Date")),
			Amount:          amount,
			Paid:            ParsePaidFlag(row["Paid"]),
		})
	}

	p.logger.Debug("Parsed payment plans", "sheet", sheetName, "count", len(plans))
	return plans, warnings
}

// matchInvoiceByCaseNumber returns the first invoice whose caseId contains
// the given case number.
func matchInvoiceByCaseNumber(invoices []*database.Invoice, caseNo string) *database.Invoice {
	for _, inv := range invoices {
		if inv.CaseID != "" && strings.Contains(inv.CaseID, caseNo) {
			return inv
		}
	}
	return nil
}
