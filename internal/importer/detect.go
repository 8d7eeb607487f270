package importer

import (
	"strings"
)

// SheetKind routes a classified sheet to its parser.
type SheetKind string

const (
	KindCasesComplaint SheetKind = "cases_complaint"
	KindCasesRoster    SheetKind = "cases_roster"
	KindHearings       SheetKind = "hearings"
	KindZoom           SheetKind = "zoom"
	KindDocuments      SheetKind = "documents"
	KindServiceLogs    SheetKind = "service_logs"
	KindInvoices       SheetKind = "invoices"
	KindPaymentPlans   SheetKind = "payment_plans"
	KindContacts       SheetKind = "contacts"
	KindUnknown        SheetKind = "unknown"
)

var sheetNameKinds = map[string]SheetKind{
	SheetComplaint:     KindCasesComplaint,
	SheetAllEvictions:  KindCasesRoster,
	SheetCourt25:       KindHearings,
	SheetCourt24:       KindHearings,
	SheetZoom:          KindZoom,
	SheetSummons:       KindDocuments,
	SheetServiceLogs:   KindServiceLogs,
	SheetInvoices:      KindInvoices,
	SheetNewInvoices:   KindInvoices,
	SheetFinalInvoices: KindInvoices,
	SheetPaymentPlans:  KindPaymentPlans,
	SheetPMInfo:        KindContacts,
}

// ClassifySheetName maps a canonical sheet name to its parser kind.
func ClassifySheetName(sheetName string) SheetKind {
	if kind, ok := sheetNameKinds[sheetName]; ok {
		return kind
	}
	return KindUnknown
}

// Content keyword sets checked in order: the more specific sets first so
// "court" alone cannot claim a zoom or payment sheet.
var contentKeywordKinds = []struct {
	kind     SheetKind
	keywords []string
}{
	{KindZoom, []string{"meeting id", "meeting_id", "zoom"}},
	{KindPaymentPlans, []string{"installment", "installment date", "installment_date"}},
	{KindServiceLogs, []string{"attempt date", "attempt_date", "sheriff", "sps"}},
	{KindInvoices, []string{"invoice", "invoice #", "amount due", "amount_due"}},
	{KindContacts, []string{"company", "business name", "contact name", "contact_name"}},
	{KindDocuments, []string{"document type", "document_type", "summons", "service date", "service_date"}},
	{KindHearings, []string{"court date", "court_date", "hearing", "courtroom", "next court date"}},
	{KindCasesRoster, []string{"case name", "case_name", "case no", "case_no"}},
	{KindCasesComplaint, []string{"plaintiff", "defendant", "property address", "property_address"}},
}

// DetectSheetKind classifies a sheet by the keywords in its first few rows.
// Used as the second pass when the sheet/file name resolved to nothing.
func DetectSheetKind(grid [][]string, scanMax int) SheetKind {
	if scanMax > len(grid) {
		scanMax = len(grid)
	}

	var cells []string
	for i := 0; i < scanMax; i++ {
		for _, cell := range grid[i] {
			cells = append(cells, strings.ToLower(strings.TrimSpace(cell)))
		}
	}

	for _, set := range contentKeywordKinds {
		for _, cell := range cells {
			for _, keyword := range set.keywords {
				if cell == keyword || strings.Contains(cell, keyword) {
					return set.kind
				}
			}
		}
	}
	return KindUnknown
}
