package importer

import (
	"testing"

	"github.com/caseflow-io/caseflow/internal/database"
)

func TestParseServiceLogs(t *testing.T) {
	p := newTestParser(t)

	documents := []*database.Document{
		{DocID: "d1", CaseID: "C1"},
		{DocID: "d2", CaseID: "C2"},
	}

	grid := [][]string{
		{"File #", "Attempt Date", "Method", "Result"},
		{"C1", "45001", "Sheriff", "Served"},
		{"C2", "45002", "SPS", "no answer"},
		{"C9", "45003", "Sheriff", "Served"},
		{"C1", "", "Sheriff", "Served"},
	}

	logs, warnings := p.ParseServiceLogs(grid, SheetServiceLogs, map[string]string{"C1": "C1", "C2": "C2"}, documents)

	if len(logs) != 2 {
		t.Fatalf("expected 2 service logs, got %d", len(logs))
	}

	if logs[0].DocID != "d1" {
		t.Errorf("log 1 DocID = %q, want d1", logs[0].DocID)
	}
	if logs[0].Result != database.ServiceResultSuccess {
		t.Errorf("explicit served marker should be Success, got %q", logs[0].Result)
	}
	if logs[0].Method != database.ServiceMethodSheriff {
		t.Errorf("method = %q, want Sheriff", logs[0].Method)
	}

	if logs[1].Method != database.ServiceMethodSPS {
		t.Errorf("method = %q, want SPS", logs[1].Method)
	}
	if logs[1].Result != database.ServiceResultFailed {
		t.Errorf("no success marker should be Failed, got %q", logs[1].Result)
	}

	// C9 has no document, the last C1 row has no date
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestInferServiceResult(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Served", database.ServiceResultSuccess},
		{"completed", database.ServiceResultSuccess},
		{"Success", database.ServiceResultSuccess},
		{"no answer", database.ServiceResultFailed},
		{"", database.ServiceResultFailed},
	}

	for _, tt := range tests {
		if got := inferServiceResult(tt.raw); got != tt.want {
			t.Errorf("inferServiceResult(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
