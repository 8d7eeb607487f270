package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/caseflow-io/caseflow/internal/database"
)

var hearingMarkers = []string{"File #", "file_number", "Case ID", "Court Date", "court_date", "Hearing Date"}

var hearingDateFields = []string{"Court Date", "Hearing Date", "Date", "Next Court Date"}

// ParseHearings parses a court-schedule sheet. A row needs a file number and
// at least one date field; rows without either are skipped. Hearings whose
// file ID does not resolve to a known case keep the raw ID as caseId.
func (p *Parser) ParseHearings(grid [][]string, sheetName string, caseIDMap map[string]string) ([]*database.Hearing, []string) {
	var warnings []string

	rows, ok := p.prepareRows(grid, sheetName, hearingMarkers)
	if !ok {
		return nil, []string{sheetName + ": missing expected headers"}
	}

	var hearings []*database.Hearing
	for i, row := range rows {
		fileID := firstNonEmpty(row, "File #", "Case ID", "Case No")
		if fileID == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no file number"))
			continue
		}

		rawDate := firstNonEmpty(row, hearingDateFields...)
		if rawDate == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "no hearing date"))
			continue
		}
		hearingDate := ParseDateValue(rawDate)
		if hearingDate == "" {
			warnings = append(warnings, rowWarning(sheetName, i+1, "unparseable hearing date: "+rawDate))
			continue
		}

		courtName := firstNonEmpty(row, "Courtroom", "Court", "Court Name")
		if courtName == "" {
			courtName = "Unknown Court"
		}

		hearings = append(hearings, &database.Hearing{
			HearingID:   uuid.NewString(),
			CaseID:      ResolveCaseID(caseIDMap, fileID),
			CourtName:   courtName,
			HearingDate: hearingDate,
			Outcome:     firstNonEmpty(row, "Outcome"),
		})
	}

	p.logger.Debug("Parsed hearings", "sheet", sheetName, "count", len(hearings))
	return hearings, warnings
}

// ZoomDetails holds the video-hearing coordinates for one courtroom.
type ZoomDetails struct {
	MeetingID string
	Password  string
	Judge     string
}

// ParseZoomSheet builds a courtroom -> Zoom details map from the ZOOM sheet.
func (p *Parser) ParseZoomSheet(grid [][]string) map[string]ZoomDetails {
	rows, ok := p.prepareRows(grid, SheetZoom, []string{"Courtroom", "courtroom", "Meeting ID", "meeting_id"})
	if !ok {
		return nil
	}

	details := make(map[string]ZoomDetails)
	for _, row := range rows {
		courtroom := normalizeCourtroom(firstNonEmpty(row, "Courtroom"))
		if courtroom == "" {
			continue
		}
		details[courtroom] = ZoomDetails{
			MeetingID: firstNonEmpty(row, "Meeting ID"),
			Password:  firstNonEmpty(row, "Password"),
			Judge:     firstNonEmpty(row, "Judge"),
		}
	}
	return details
}

// ApplyZoomDetails appends each matching courtroom's Zoom note onto the
// hearing's outcome text.
func (p *Parser) ApplyZoomDetails(hearings []*database.Hearing, details map[string]ZoomDetails) {
	if len(details) == 0 {
		return
	}

	for _, h := range hearings {
		d, ok := details[normalizeCourtroom(h.CourtName)]
		if !ok {
			continue
		}
		note := formatZoomNote(d)
		if note == "" {
			continue
		}
		if h.Outcome != "" {
			h.Outcome = h.Outcome + " | " + note
		} else {
			h.Outcome = note
		}
	}
}

// formatZoomNote renders "Zoom: <id>, Pwd: <pwd> | Judge: <judge>" with
// absent parts omitted.
func formatZoomNote(d ZoomDetails) string {
	var meeting []string
	if d.MeetingID != "" {
		meeting = append(meeting, "Zoom: "+d.MeetingID)
	}
	if d.Password != "" {
		meeting = append(meeting, "Pwd: "+d.Password)
	}

	note := strings.Join(meeting, ", ")
	if d.Judge != "" {
		if note != "" {
			note += " | "
		}
		note += "Judge: " + d.Judge
	}
	return note
}

func normalizeCourtroom(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
