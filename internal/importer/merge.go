package importer

import (
	"github.com/caseflow-io/caseflow/internal/database"
)

// MergeCases deduplicates cases from multiple source lists by caseId, merging
// duplicates field-by-field. A non-empty incoming value always overwrites the
// existing one; an empty incoming value never does. List order matters:
// later lists win ties.
func MergeCases(caseLists ...[]*database.Case) []*database.Case {
	byID := make(map[string]*database.Case)
	var order []string

	for _, list := range caseLists {
		for _, c := range list {
			if c == nil || c.CaseID == "" {
				continue
			}
			existing, ok := byID[c.CaseID]
			if !ok {
				copied := *c
				byID[c.CaseID] = &copied
				order = append(order, c.CaseID)
				continue
			}
			mergeCaseInto(existing, c)
		}
	}

	merged := make([]*database.Case, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged
}

// mergeCaseInto copies src's non-empty fields over dst's.
func mergeCaseInto(dst, src *database.Case) {
	if src.Plaintiff != "" {
		dst.Plaintiff = src.Plaintiff
	}
	if src.Defendant != "" {
		dst.Defendant = src.Defendant
	}
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.Status != "" {
		dst.Status = src.Status
	}
	if src.DateFiled != "" {
		dst.DateFiled = src.DateFiled
	}
}

// BuildCaseIDMap builds the file-ID lookup used to attach hearings, documents
// and invoices to cases. Every parsed case maps its own ID to itself; the map
// answers "is this file ID a known case".
func BuildCaseIDMap(cases []*database.Case) map[string]string {
	m := make(map[string]string, len(cases))
	for _, c := range cases {
		if c.CaseID != "" {
			m[c.CaseID] = c.CaseID
		}
	}
	return m
}

// ResolveCaseID looks up a raw file ID in the case map. Unresolved references
// keep the raw ID as their caseId: orphaned, not dropped.
func ResolveCaseID(caseIDMap map[string]string, fileID string) string {
	if resolved, ok := caseIDMap[fileID]; ok {
		return resolved
	}
	return fileID
}
