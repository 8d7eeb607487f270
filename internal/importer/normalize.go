package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel's 1900 epoch: serial 25569 is 1970-01-01 UTC.
const excelEpochOffset = 25569

const isoLayout = "2006-01-02T15:04:05.000Z"

var nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)

// ExcelDateToISOString converts an Excel serial date to an ISO-8601 string.
func ExcelDateToISOString(serial float64) string {
	ms := int64((serial - excelEpochOffset) * 86400000)
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}

// ISOToExcelSerial converts an ISO-8601 string back to an Excel serial date.
func ISOToExcelSerial(iso string) (float64, error) {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		t, err = time.Parse(time.RFC3339, iso)
		if err != nil {
			return 0, fmt.Errorf("unable to parse ISO date: %s", iso)
		}
	}
	return float64(t.UnixMilli())/86400000 + excelEpochOffset, nil
}

// FormatStringValue coerces an arbitrary cell value to a trimmed string.
// Nil becomes the empty string.
func FormatStringValue(v interface{}) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// Avoid "1.000000" noise for integral numbers
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// FormatNumericValue coerces an arbitrary cell value to a number by stripping
// everything but digits, dots and minus signs. Returns 0 when nothing
// parseable remains; bad input data is expected, not an error.
func FormatNumericValue(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	cleaned := nonNumericChars.ReplaceAllString(FormatStringValue(v), "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// IsValidRow reports whether a row is non-nil and every required field is
// present and non-empty.
func IsValidRow(row Row, requiredFields []string) bool {
	if row == nil {
		return false
	}
	for _, field := range requiredFields {
		v, ok := row[field]
		if !ok || v == nil {
			return false
		}
		if FormatStringValue(v) == "" {
			return false
		}
	}
	return true
}

// Date formats seen in client spreadsheet exports
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"01/02/06",
	isoLayout,
	time.RFC3339,
}

// ParseDateValue normalizes a cell value to an ISO-8601 string. Numeric
// values in the plausible Excel serial range are treated as serial dates;
// strings are tried against the known layouts. Returns "" when nothing parses.
func ParseDateValue(v interface{}) string {
	s := FormatStringValue(v)
	if s == "" {
		return ""
	}

	// Excel serial dates arrive as bare numbers when cells are read raw
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > 1000 && f < 200000 {
			return ExcelDateToISOString(f)
		}
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoLayout)
		}
	}
	return ""
}
