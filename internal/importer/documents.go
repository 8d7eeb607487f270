package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/caseflow-io/caseflow/internal/database"
)

var documentMarkers = []string{"File #", "file_number", "unnamed_0", "Document Type", "document_type"}

// ParseDocuments parses a document sheet, deduplicating by (fileId, type):
// repeated rows for the same case and document type collapse to one entity
// (multiple defendants commonly repeat the row).
func (p *Parser) ParseDocuments(grid [][]string, sheetName string, caseIDMap map[string]string) ([]*database.Document, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, documentMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	seen := make(map[string]bool)
	var documents []*database.Document

	for i, row := range rows {
		fileID := firstNonEmpty(row, "File #", "Case No", "Case Number")
		if fileID == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no file number"))
			continue
		}

		if p.isSkippableDocumentID(fileID) {
			warnings = append(warnings, rowWarning(sheetName, i+1, "instructional/footer row: "+fileID))
			continue
		}

		docType := normalizeDocumentType(firstNonEmpty(row, "Document Type", "Type"), sheetName)

		dedupKey := fileID + "-" + docType
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true

		serviceDate := ParseDateValue(firstNonEmpty(row, "Service Date", "Date Served", "Served"))

		documents = append(documents, &database.Document{
			DocID:       uuid.NewString(),
			CaseID:      ResolveCaseID(caseIDMap, fileID),
			Type:        docType,
			FileURL:     firstNonEmpty(row, "File URL", "URL", "Link"),
			Status:      inferDocumentStatus(row, serviceDate),
			ServiceDate: serviceDate,
		})
	}

	p.logger.Debug("Parsed documents", "sheet", sheetName, "count", len(documents))
	return documents, warnings
}

// isSkippableDocumentID flags rows whose ID matches a configured skip marker.
// All-caps markers match as plain substrings; lowercase markers match as
// case-insensitive whole words, so "C1-FILED" is not mistaken for "file".
func (p *Parser) isSkippableDocumentID(fileID string) bool {
	for _, marker := range p.mapping.DocumentSkipMarkers {
		if marker == strings.ToUpper(marker) {
			if strings.Contains(strings.ToUpper(fileID), marker) {
				return true
			}
			continue
		}
		if p.skipWordRegexps[marker].MatchString(fileID) {
			return true
		}
	}
	return false
}

// normalizeDocumentType maps a raw type value (or the sheet name when no type
// column exists) onto the known document types.
func normalizeDocumentType(raw, sheetName string) string {
	candidate := raw
	if candidate == "" {
		candidate = sheetName
	}
	lower := strings.ToLower(candidate)

	switch {
	case strings.Contains(lower, "complaint"):
		return database.DocTypeComplaint
	case strings.Contains(lower, "summons"):
		return database.DocTypeSummons
	case strings.Contains(lower, "affidavit"):
		return database.DocTypeAffidavit
	case strings.Contains(lower, "motion"):
		return database.DocTypeMotion
	case strings.Contains(lower, "order"):
		return database.DocTypeOrder
	default:
		return database.DocTypeOther
	}
}

// inferDocumentStatus: Served when a service date is present, Failed when a
// failure field is, otherwise Pending.
func inferDocumentStatus(row Row, serviceDate string) string {
	if serviceDate != "" {
		return database.DocStatusServed
	}
	if firstNonEmpty(row, "Failure Reason", "Failed", "Failure Date", "Not Served") != "" {
		return database.DocStatusFailed
	}
	return database.DocStatusPending
}
