package importer

import (
	"testing"

	"github.com/caseflow-io/caseflow/internal/database"
)

func TestParseHearings(t *testing.T) {
	p := newTestParser(t)

	grid := [][]string{
		{"File #", "Court Date", "Courtroom", "Outcome"},
		{"C1", "45000", "25", "Adjourned"},
		{"Z9", "45001", "", ""},
		{"C3", "", "24", ""},
		{"", "45002", "24", ""},
	}
	caseIDMap := map[string]string{"C1": "C1"}

	hearings, warnings := p.ParseHearings(grid, SheetCourt25, caseIDMap)

	if len(hearings) != 2 {
		t.Fatalf("expected 2 hearings, got %d", len(hearings))
	}

	if hearings[0].CaseID != "C1" {
		t.Errorf("hearing 1 CaseID = %q, want C1", hearings[0].CaseID)
	}
	if hearings[0].HearingDate != ExcelDateToISOString(45000) {
		t.Errorf("hearing 1 date = %q", hearings[0].HearingDate)
	}
	if hearings[0].HearingID == "" {
		t.Error("hearing IDs must be generated")
	}

	// Orphaned reference keeps the raw file ID
	if hearings[1].CaseID != "Z9" {
		t.Errorf("orphan hearing CaseID = %q, want Z9", hearings[1].CaseID)
	}
	if hearings[1].CourtName != "Unknown Court" {
		t.Errorf("missing courtroom should default, got %q", hearings[1].CourtName)
	}

	// One skip for the dateless row, one for the missing file number
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestZoomAugmentation(t *testing.T) {
	p := newTestParser(t)

	zoomGrid := [][]string{
		{"Courtroom", "Meeting ID", "Password", "Judge"},
		{"25", "123456", "pw123", "Smith"},
		{"24", "987654", "", ""},
	}
	details := p.ParseZoomSheet(zoomGrid)
	if len(details) != 2 {
		t.Fatalf("expected 2 zoom entries, got %d", len(details))
	}

	hearings := []*database.Hearing{
		{CourtName: "25", Outcome: ""},
		{CourtName: "25", Outcome: "Adjourned"},
		{CourtName: "24", Outcome: ""},
		{CourtName: "99", Outcome: ""},
	}
	p.ApplyZoomDetails(hearings, details)

	if hearings[0].Outcome != "Zoom: 123456, Pwd: pw123 | Judge: Smith" {
		t.Errorf("outcome = %q", hearings[0].Outcome)
	}
	if hearings[1].Outcome != "Adjourned | Zoom: 123456, Pwd: pw123 | Judge: Smith" {
		t.Errorf("existing outcome should be preserved, got %q", hearings[1].Outcome)
	}
	if hearings[2].Outcome != "Zoom: 987654" {
		t.Errorf("partial zoom details, got %q", hearings[2].Outcome)
	}
	if hearings[3].Outcome != "" {
		t.Errorf("courtroom without zoom details must stay untouched, got %q", hearings[3].Outcome)
	}
}

func TestFormatZoomNote(t *testing.T) {
	tests := []struct {
		name    string
		details ZoomDetails
		want    string
	}{
		{"all parts", ZoomDetails{MeetingID: "1", Password: "p", Judge: "J"}, "Zoom: 1, Pwd: p | Judge: J"},
		{"id only", ZoomDetails{MeetingID: "1"}, "Zoom: 1"},
		{"judge only", ZoomDetails{Judge: "J"}, "Judge: J"},
		{"empty", ZoomDetails{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatZoomNote(tt.details); got != tt.want {
				t.Errorf("formatZoomNote = %q, want %q", got, tt.want)
			}
		})
	}
}
