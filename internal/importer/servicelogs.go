package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/caseflow-io/caseflow/internal/database"
)

var serviceLogMarkers = []string{"File #", "file_number", "Attempt Date", "attempt_date", "Method"}

// ParseServiceLogs parses service-attempt rows. A row must reference a case
// that already has a parsed document and must carry a parseable attempt date;
// anything else is dropped with a warning.
func (p *Parser) ParseServiceLogs(grid [][]string, sheetName string, caseIDMap map[string]string, documents []*database.Document) ([]*database.ServiceLog, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, serviceLogMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	// Index documents by case so lookups stay linear
	docsByCase := make(map[string]*database.Document)
	for _, doc := range documents {
		if _, exists := docsByCase[doc.CaseID]; !exists {
			docsByCase[doc.CaseID] = doc
		}
	}

	var logs []*database.ServiceLog
	for i, row := range rows {
		fileID := firstNonEmpty(row, "File #", "Case No", "Case Number")
		if fileID == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no file number"))
			continue
		}

		doc, found := docsByCase[ResolveCaseID(caseIDMap, fileID)]
		if !found {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no matching document for case "+fileID))
			continue
		}

		attemptDate := ParseDateValue(firstNonEmpty(row, "Attempt Date", "Date", "Service Date"))
		if attemptDate == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no parseable attempt date"))
			continue
		}

		logs = append(logs, &database.ServiceLog{
			LogID:       uuid.NewString(),
			DocID:       doc.DocID,
			Method:      inferServiceMethod(firstNonEmpty(row, "Method")),
			AttemptDate: attemptDate,
			Result:      inferServiceResult(firstNonEmpty(row, "Result", "Outcome", "Status")),
		})
	}

	p.logger.Debug("Parsed service logs", "sheet", sheetName, "count", len(logs))
	return logs, warnings
}

func inferServiceMethod(raw string) string {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "sps") || strings.Contains(lower, "special") || strings.Contains(lower, "private") {
		return database.ServiceMethodSPS
	}
	return database.ServiceMethodSheriff
}

// inferServiceResult is Success only on an explicit success marker.
func inferServiceResult(raw string) string {
	lower := strings.ToLower(raw)
	for _, marker := range []string{"success", "served", "completed"} {
		if strings.Contains(lower, marker) {
			return database.ServiceResultSuccess
		}
	}
	return database.ServiceResultFailed
}
