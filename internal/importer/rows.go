package importer

import (
	"fmt"
	"strings"
)

// Row is a loosely-typed record keyed by source column name. Values are
// whatever the reader produced (usually strings, sometimes numbers); every
// parser coerces through the normalizers before using a value.
type Row map[string]interface{}

// NamedFile is one uploaded input: a file name plus its raw bytes.
type NamedFile struct {
	Name string
	Data []byte
}

// FindHeaderRow scans the first maxScan rows of a grid for a row containing
// any of the given marker labels (case-insensitive, trimmed). Returns the row
// index, or -1 if no marker was found.
func FindHeaderRow(grid [][]string, markers []string, maxScan int) int {
	if maxScan > len(grid) {
		maxScan = len(grid)
	}
	for i := 0; i < maxScan; i++ {
		for _, cell := range grid[i] {
			cleaned := strings.ToLower(strings.TrimSpace(cell))
			for _, marker := range markers {
				if cleaned == strings.ToLower(marker) {
					return i
				}
			}
		}
	}
	return -1
}

// GridToRows converts a raw cell grid into rows keyed by the header row's
// cell values. Blank header cells become "unnamed_N" keys so their data is
// not lost. Rows before the header and fully-empty rows are dropped.
func GridToRows(grid [][]string, headerIdx int) []Row {
	if headerIdx < 0 || headerIdx >= len(grid) {
		return nil
	}

	headers := make([]string, len(grid[headerIdx]))
	for i, h := range grid[headerIdx] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("unnamed_%d", i)
		}
		headers[i] = h
	}

	var rows []Row
	for i := headerIdx + 1; i < len(grid); i++ {
		row := Row{}
		empty := true
		for j, cell := range grid[i] {
			if j >= len(headers) {
				break
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			row[headers[j]] = cell
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// firstNonEmpty returns the first non-empty value among the given keys.
func firstNonEmpty(row Row, keys ...string) string {
	for _, key := range keys {
		if v := FormatStringValue(row[key]); v != "" {
			return v
		}
	}
	return ""
}
