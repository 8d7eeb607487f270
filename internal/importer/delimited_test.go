package importer

import (
	"testing"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"a,b;c", ','},
		{"plain text", ','},
	}

	for _, tt := range tests {
		if got := DetectDelimiter(tt.line); got != tt.want {
			t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestReadDelimited(t *testing.T) {
	data := []byte("File #;Plaintiff 1;Notes\nC1;\"Acme; Inc\";hello\nC2;Beta\n")

	grid, err := ReadDelimited(data)
	if err != nil {
		t.Fatalf("ReadDelimited: %v", err)
	}

	if len(grid) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid))
	}
	if grid[0][0] != "File #" || grid[1][1] != "Acme; Inc" {
		t.Errorf("grid = %v", grid)
	}
	// Ragged rows pass through
	if len(grid[2]) != 2 {
		t.Errorf("ragged row should be kept, got %v", grid[2])
	}
}
