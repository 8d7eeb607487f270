package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/caseflow-io/caseflow/pkg/logger"
)

// Parser turns raw sheet grids into domain entities. One instance serves all
// entity types; every method is a pure function of its inputs plus the
// injected mapping configuration.
type Parser struct {
	logger        *logger.Logger
	mapping       *MappingConfig
	headerScanMax int

	// Precompiled word-boundary matchers for lowercase document skip markers
	skipWordRegexps map[string]*regexp.Regexp
}

// NewParser creates a parser with the given mapping configuration.
func NewParser(log *logger.Logger, mapping *MappingConfig, headerScanMax int) *Parser {
	if headerScanMax <= 0 {
		headerScanMax = 10
	}

	skipWordRegexps := make(map[string]*regexp.Regexp)
	for _, marker := range mapping.DocumentSkipMarkers {
		if marker != strings.ToUpper(marker) {
			skipWordRegexps[marker] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(marker) + `\b`)
		}
	}

	return &Parser{
		logger:          log,
		mapping:         mapping,
		headerScanMax:   headerScanMax,
		skipWordRegexps: skipWordRegexps,
	}
}

// prepareRows locates the header row by marker scan, converts the grid to
// keyed rows and runs them through the field mapper for the given sheet.
// Returns nil and false when no header row could be found.
func (p *Parser) prepareRows(grid [][]string, sheetName string, markers []string) ([]Row, bool) {
	headerIdx := FindHeaderRow(grid, markers, p.headerScanMax)
	if headerIdx < 0 {
		return nil, false
	}
	rows := GridToRows(grid, headerIdx)
	return p.mapping.TransformDataset(rows, sheetName), true
}

func rowWarning(sheetName string, rowNum int, reason string) string {
	return fmt.Sprintf("%s row %d skipped: %s", sheetName, rowNum, reason)
}
