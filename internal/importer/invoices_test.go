package importer

import (
	"testing"
)

func TestParsePaidFlag(t *testing.T) {
	trueValues := []interface{}{"Paid", "yes", "Complete", "PAID", true, 1, float64(1), "1"}
	for _, v := range trueValues {
		if !ParsePaidFlag(v) {
			t.Errorf("ParsePaidFlag(%v) = false, want true", v)
		}
	}

	falseValues := []interface{}{"Pending", 0, float64(0), nil, "", "no", "2"}
	for _, v := range falseValues {
		if ParsePaidFlag(v) {
			t.Errorf("ParsePaidFlag(%v) = true, want false", v)
		}
	}
}

func TestParseInvoicesFirstSeenWins(t *testing.T) {
	p := newTestParser(t)

	outstanding := SheetData{
		Name: SheetInvoices,
		Grid: [][]string{
			{"Invoice #", "File #", "Amount", "Issue Date", "Paid"},
			{"INV-1", "C1", "500", "45000", "no"},
		},
	}
	final := SheetData{
		Name: SheetFinalInvoices,
		Grid: [][]string{
			{"Invoice #", "File #", "Amount", "Issue Date", "Paid"},
			{"INV-1", "C1", "999", "45050", "yes"},
			{"INV-2", "C2", "250", "45010", "Paid"},
		},
	}

	invoices, _ := p.ParseInvoices([]SheetData{outstanding, final}, map[string]string{"C1": "C1"})

	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}

	// First-seen record is kept whole; the later source never amends it
	if invoices[0].InvoiceID != "INV-1" || invoices[0].Amount != 500 {
		t.Errorf("invoice 1 = %+v, want the outstanding record", invoices[0])
	}
	if invoices[0].Paid {
		t.Error("invoice 1 should keep the first source's unpaid flag")
	}
	if invoices[1].Amount != 250 || !invoices[1].Paid {
		t.Errorf("invoice 2 = %+v", invoices[1])
	}
}

func TestParseInvoicesDueDateDefault(t *testing.T) {
	p := newTestParser(t)

	source := SheetData{
		Name: SheetInvoices,
		Grid: [][]string{
			{"Invoice #", "Amount", "Issue Date", "Due Date"},
			{"INV-1", "100", "45000", ""},
			{"INV-2", "100", "45000", "45015"},
			{"INV-3", "100", "", ""},
		},
	}

	invoices, _ := p.ParseInvoices([]SheetData{source}, nil)

	if len(invoices) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(invoices))
	}
	if invoices[0].DueDate != ExcelDateToISOString(45030) {
		t.Errorf("due date should default to issue + 30 days, got %q", invoices[0].DueDate)
	}
	if invoices[1].DueDate != ExcelDateToISOString(45015) {
		t.Errorf("explicit due date must be kept, got %q", invoices[1].DueDate)
	}
	if invoices[2].DueDate != "" {
		t.Errorf("no issue date means no due date, got %q", invoices[2].DueDate)
	}
}
