package importer

import (
	"testing"

	"github.com/caseflow-io/caseflow/internal/database"
)

func TestParsePaymentPlans(t *testing.T) {
	p := newTestParser(t)

	invoices := []*database.Invoice{
		{InvoiceID: "INV-1", CaseID: "CASE-100"},
		{InvoiceID: "INV-2", CaseID: "CASE-200"},
	}

	grid := [][]string{
		{"Case #", "Installment Date", "Amount", "Paid"},
		{"100", "45020", "50", "yes"},
		{"200", "45021", "0", ""},
		{"999", "45022", "75", ""},
	}

	plans, warnings := p.ParsePaymentPlans(grid, SheetPaymentPlans, invoices)

	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].InvoiceID != "INV-1" {
		t.Errorf("plan should attach to the first matching invoice, got %q", plans[0].InvoiceID)
	}
	if !plans[0].Paid {
		t.Error("paid flag should be parsed")
	}
	if plans[0].InstallmentDate != ExcelDateToISOString(45020) {
		t.Errorf("installment date = %q", plans[0].InstallmentDate)
	}

	// One zero-amount skip, one unmatched-invoice skip
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestMatchInvoiceByCaseNumber(t *testing.T) {
	invoices := []*database.Invoice{
		{InvoiceID: "A", CaseID: "C-1001"},
		{InvoiceID: "B", CaseID: "C-100"},
	}

	// Substring match takes the first containing invoice, even when a
	// tighter match exists later
	if got := matchInvoiceByCaseNumber(invoices, "100"); got == nil || got.InvoiceID != "A" {
		t.Errorf("expected first containing invoice A, got %v", got)
	}
	if got := matchInvoiceByCaseNumber(invoices, "404"); got != nil {
		t.Errorf("expected no match, got %v", got)
	}
}
