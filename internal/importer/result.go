package importer

import (
	"github.com/caseflow-io/caseflow/internal/database"
)

// EntityBundle holds every entity produced by one import run.
type EntityBundle struct {
	Cases        []*database.Case        `json:"cases"`
	Hearings     []*database.Hearing     `json:"hearings"`
	Documents    []*database.Document    `json:"documents"`
	ServiceLogs  []*database.ServiceLog  `json:"service_logs"`
	Invoices     []*database.Invoice     `json:"invoices"`
	PaymentPlans []*database.PaymentPlan `json:"payment_plans"`
	Contacts     []*database.Contact     `json:"contacts"`
}

// ImportStats counts what an import run looked at.
type ImportStats struct {
	TotalFiles      int `json:"total_files,omitempty"`
	ProcessedFiles  int `json:"processed_files,omitempty"`
	TotalSheets     int `json:"total_sheets,omitempty"`
	ProcessedSheets int `json:"processed_sheets,omitempty"`
	ProcessedRows   int `json:"processed_rows"`
}

// ImportResult is the full handoff surface to the UI/persistence layer. It is
// self-describing: everything a preview needs is in here, nothing is written
// as a side effect of producing it.
type ImportResult struct {
	Success  bool         `json:"success"`
	Entities EntityBundle `json:"entities"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
	Stats    ImportStats  `json:"stats"`
}

// newImportResult starts with empty slices everywhere so even a run that
// fails before the pipeline hands back a well-formed bundle.
func newImportResult() *ImportResult {
	return &ImportResult{
		Entities: EntityBundle{
			Cases:        []*database.Case{},
			Hearings:     []*database.Hearing{},
			Documents:    []*database.Document{},
			ServiceLogs:  []*database.ServiceLog{},
			Invoices:     []*database.Invoice{},
			PaymentPlans: []*database.PaymentPlan{},
			Contacts:     []*database.Contact{},
		},
		Errors:   []string{},
		Warnings: []string{},
	}
}

func (r *ImportResult) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *ImportResult) fail(msg string) {
	r.Errors = append(r.Errors, msg)
}
