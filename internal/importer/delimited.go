package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// DetectDelimiter picks the delimiter among comma, semicolon and tab by
// counting occurrences in the first line and taking the max. Comma wins ties.
func DetectDelimiter(firstLine string) rune {
	delimiters := []rune{',', ';', '\t'}

	best := ','
	bestCount := -1
	for _, d := range delimiters {
		count := strings.Count(firstLine, string(d))
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

// ReadDelimited parses delimited text into a cell grid with the delimiter
// auto-detected from the first line. Ragged rows are tolerated.
func ReadDelimited(data []byte) ([][]string, error) {
	text := string(data)
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(firstLine)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}
	return grid, nil
}
