package importer

import (
	"strings"

	"github.com/caseflow-io/caseflow/internal/database"
)

var complaintRequiredFields = []string{"File #", "Plaintiff 1", "Defendant 1", "Property Address"}

var allEvictionsMarkers = []string{"Case No", "Client No", "Case Name", "case_no", "client_no", "case_name"}

var complaintMarkers = []string{"File #", "file_number", "case_number", "Plaintiff 1", "plaintiff"}

// ParseComplaintCases parses the "Complaint" sheet layout. Rows must carry a
// file number, both party names and a property address; everything else is
// optional.
func (p *Parser) ParseComplaintCases(grid [][]string, sheetName string) ([]*database.Case, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, complaintMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	var cases []*database.Case
	for i, row := range rows {
		if !IsValidRow(row, complaintRequiredFields) {
			warnings = append(warnings, rowWarning(sheetName, i+1, "missing required fields"))
			continue
		}

		c := &database.Case{
			CaseID:    FormatStringValue(row["File #"]),
			Plaintiff: FormatStringValue(row["Plaintiff 1"]),
			Defendant: FormatStringValue(row["Defendant 1"]),
			Address:   composeAddress(row),
			Status:    inferCaseStatus(row),
			DateFiled: ParseDateValue(row["Date Filed"]),
		}
		cases = append(cases, c)
	}

	p.logger.Debug("Parsed complaint cases", "sheet", sheetName, "count", len(cases))
	return cases, warnings
}

// ParseAllEvictionsCases parses the "All Evictions" roster layout, where
// plaintiff and defendant arrive combined in a single "Case Name" column.
func (p *Parser) ParseAllEvictionsCases(grid [][]string, sheetName string) ([]*database.Case, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, allEvictionsMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	var cases []*database.Case
	for i, row := range rows {
		caseID := firstNonEmpty(row, "Case No", "File #", "Client No")
		if caseID == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no case number"))
			continue
		}

		plaintiff, defendant := SplitCaseName(firstNonEmpty(row, "Case Name"))

		c := &database.Case{
			CaseID:    caseID,
			Plaintiff: plaintiff,
			Defendant: defendant,
			Address:   composeAddress(row),
			Status:    inferCaseStatus(row),
			DateFiled: ParseDateValue(row["Date Filed"]),
		}
		cases = append(cases, c)
	}

	p.logger.Debug("Parsed eviction cases", "sheet", sheetName, "count", len(cases))
	return cases, warnings
}

// SplitCaseName splits a combined case caption into plaintiff and defendant
// on " v. " or " vs. ". Without a separator the whole caption is the
// plaintiff and the defendant is unknown.
func SplitCaseName(caseName string) (string, string) {
	caseName = strings.TrimSpace(caseName)

	for _, sep := range []string{" v. ", " vs. "} {
		if idx := strings.Index(caseName, sep); idx >= 0 {
			plaintiff := strings.TrimSpace(caseName[:idx])
			defendant := strings.TrimSpace(caseName[idx+len(sep):])
			return plaintiff, defendant
		}
	}
	return caseName, "Unknown Defendant"
}

// composeAddress joins street, city, state and zip into one address line.
func composeAddress(row Row) string {
	street := firstNonEmpty(row, "Property Address", "Address")
	city := firstNonEmpty(row, "City")
	state := firstNonEmpty(row, "State")
	zip := firstNonEmpty(row, "Zip", "Zip Code")

	var parts []string
	for _, part := range []string{street, city, state} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	address := strings.Join(parts, ", ")
	if zip != "" {
		address = strings.TrimSpace(address + " " + zip)
	}
	return address
}

// inferCaseStatus derives the case status: Closed when an outcome/status
// field says so, Active when any court-date field is present, else Intake.
func inferCaseStatus(row Row) string {
	statusText := strings.ToLower(firstNonEmpty(row, "Status", "Outcome"))
	if strings.Contains(statusText, "closed") || strings.Contains(statusText, "dismissed") {
		return database.CaseStatusClosed
	}

	if firstNonEmpty(row, "Court Date", "Hearing Date", "Next Court Date") != "" {
		return database.CaseStatusActive
	}
	return database.CaseStatusIntake
}
