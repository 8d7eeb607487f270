package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/caseflow-io/caseflow/internal/database"
	"github.com/caseflow-io/caseflow/pkg/logger"
)

// Importer runs the full reconciliation pipeline over uploaded workbooks or
// delimited files. Processing is strictly sequential: later stages depend on
// state accumulated by earlier ones (case-ID map, parsed documents, parsed
// invoices).
type Importer struct {
	logger  *logger.Logger
	mapping *MappingConfig
	parser  *Parser
	scanMax int
}

// NewImporter wires a parser with the given mapping configuration.
func NewImporter(log *logger.Logger, mapping *MappingConfig, headerScanMax int) *Importer {
	if headerScanMax <= 0 {
		headerScanMax = 10
	}
	return &Importer{
		logger:  log,
		mapping: mapping,
		parser:  NewParser(log, mapping, headerScanMax),
		scanMax: headerScanMax,
	}
}

// classifiedSheet is one input sheet/file routed to a parser kind.
type classifiedSheet struct {
	name string
	kind SheetKind
	grid [][]string
	rank int
}

// ImportWorkbook runs the pipeline over a multi-sheet .xlsx workbook.
// Sheet purpose is detected by name first, then by header content.
func (im *Importer) ImportWorkbook(data []byte) (result *ImportResult) {
	result = newImportResult()

	// A totally malformed workbook is the one fatal case; everything below
	// sheet level degrades to warnings.
	defer func() {
		if r := recover(); r != nil {
			result.fail(fmt.Sprintf("import run failed: %v", r))
			result.Success = false
		}
	}()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		result.fail(fmt.Sprintf("failed to open workbook: %v", err))
		result.Success = false
		return result
	}
	defer f.Close()

	var sheets []classifiedSheet
	for _, sheetName := range f.GetSheetList() {
		result.Stats.TotalSheets++

		grid, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			result.warn(fmt.Sprintf("%s: failed to read sheet: %v", sheetName, err))
			continue
		}
		if len(grid) == 0 {
			result.warn(sheetName + ": no data rows found")
			continue
		}

		canonical := im.mapping.MapFileNameToSheetName(sheetName)
		kind := ClassifySheetName(canonical)
		if kind == KindUnknown {
			kind = DetectSheetKind(grid, im.scanMax)
		}
		if kind == KindUnknown {
			result.warn(sheetName + ": unrecognized sheet type")
			continue
		}

		result.Stats.ProcessedSheets++
		result.Stats.ProcessedRows += len(grid)
		sheets = append(sheets, classifiedSheet{
			name: canonical,
			kind: kind,
			grid: grid,
			rank: invoiceSourceRank(canonical),
		})
	}

	im.runPipeline(sheets, result)
	result.Success = len(result.Errors) == 0
	return result
}

// ImportFiles runs the pipeline over a set of flat delimited files. File
// purpose is detected by filename pattern first, then by header content.
func (im *Importer) ImportFiles(files []NamedFile) (result *ImportResult) {
	result = newImportResult()

	defer func() {
		if r := recover(); r != nil {
			result.fail(fmt.Sprintf("import run failed: %v", r))
			result.Success = false
		}
	}()

	result.Stats.TotalFiles = len(files)

	var sheets []classifiedSheet
	for _, file := range files {
		if len(file.Data) == 0 {
			result.warn(file.Name + ": empty file")
			continue
		}
		if ext := strings.ToLower(filepath.Ext(file.Name)); ext == ".xlsx" || ext == ".xls" {
			result.warn(file.Name + ": workbook files must be imported individually")
			continue
		}

		grid, err := ReadDelimited(file.Data)
		if err != nil {
			// A single unreadable file degrades to a warning, not a
			// run failure
			result.warn(fmt.Sprintf("%s: %v", file.Name, err))
			continue
		}
		if len(grid) == 0 {
			result.warn(file.Name + ": no data rows found")
			continue
		}

		canonical := im.mapping.MapFileNameToSheetName(file.Name)
		kind := ClassifySheetName(canonical)
		if kind == KindUnknown {
			kind = DetectSheetKind(grid, im.scanMax)
		}
		if kind == KindUnknown {
			result.warn(file.Name + ": unrecognized file type")
			continue
		}

		result.Stats.ProcessedFiles++
		result.Stats.ProcessedRows += len(grid)
		sheets = append(sheets, classifiedSheet{
			name: canonical,
			kind: kind,
			grid: grid,
			rank: invoiceSourceRank(canonical),
		})
	}

	im.runPipeline(sheets, result)
	result.Success = len(result.Errors) == 0
	return result
}

// runPipeline executes the fixed stage order over classified sheets:
// contacts, cases, hearings (+zoom), documents, service logs, invoices,
// payment plans. Each stage's inputs come from the state the previous
// stages produced.
func (im *Importer) runPipeline(sheets []classifiedSheet, result *ImportResult) {
	state := &importState{}

	im.parseContactsStage(sheets, state, result)
	im.parseCasesStage(sheets, state, result)
	im.parseHearingsStage(sheets, state, result)
	im.parseDocumentsStage(sheets, state, result)
	im.parseServiceLogsStage(sheets, state, result)
	im.parseInvoicesStage(sheets, state, result)
	im.parsePaymentPlansStage(sheets, state, result)

	result.Entities = EntityBundle{
		Cases:        orEmptyCases(state.cases),
		Hearings:     orEmptyHearings(state.hearings),
		Documents:    orEmptyDocuments(state.documents),
		ServiceLogs:  orEmptyServiceLogs(state.serviceLogs),
		Invoices:     orEmptyInvoices(state.invoices),
		PaymentPlans: orEmptyPaymentPlans(state.paymentPlans),
		Contacts:     orEmptyContacts(state.contacts),
	}
}

// importState carries the cross-stage data dependencies explicitly.
type importState struct {
	contacts       []*database.Contact
	clientPrefixes map[string]string

	cases     []*database.Case
	caseIDMap map[string]string

	hearings []*database.Hearing
	zoom     map[string]ZoomDetails

	documents    []*database.Document
	serviceLogs  []*database.ServiceLog
	invoices     []*database.Invoice
	paymentPlans []*database.PaymentPlan
}

func (im *Importer) parseContactsStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	seen := make(map[string]bool)
	for _, sheet := range sheets {
		if sheet.kind != KindContacts {
			continue
		}
		contacts, warnings := im.parser.ParseContacts(sheet.grid, sheet.name)
		result.Warnings = append(result.Warnings, warnings...)

		// Cross-sheet dedupe keeps first occurrence, same policy as
		// within a sheet
		for _, c := range contacts {
			key := strings.ToLower(strings.TrimSpace(c.Name))
			if seen[key] {
				continue
			}
			seen[key] = true
			state.contacts = append(state.contacts, c)
		}
	}

	state.clientPrefixes = BuildClientPrefixMap(state.contacts)
	im.logger.Debug("Contacts stage complete",
		"contacts", len(state.contacts),
		"client_prefixes", len(state.clientPrefixes),
	)
}

func (im *Importer) parseCasesStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	var caseLists [][]*database.Case
	for _, sheet := range sheets {
		var cases []*database.Case
		var warnings []string

		switch sheet.kind {
		case KindCasesComplaint:
			cases, warnings = im.parser.ParseComplaintCases(sheet.grid, sheet.name)
		case KindCasesRoster:
			cases, warnings = im.parser.ParseAllEvictionsCases(sheet.grid, sheet.name)
		default:
			continue
		}

		result.Warnings = append(result.Warnings, warnings...)
		caseLists = append(caseLists, cases)
	}

	state.cases = MergeCases(caseLists...)
	state.caseIDMap = BuildCaseIDMap(state.cases)
	im.logger.Debug("Cases stage complete", "cases", len(state.cases))
}

func (im *Importer) parseHearingsStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	// Zoom details first so augmentation covers every hearing sheet
	state.zoom = make(map[string]ZoomDetails)
	for _, sheet := range sheets {
		if sheet.kind != KindZoom {
			continue
		}
		for courtroom, details := range im.parser.ParseZoomSheet(sheet.grid) {
			if _, exists := state.zoom[courtroom]; !exists {
				state.zoom[courtroom] = details
			}
		}
	}

	for _, sheet := range sheets {
		if sheet.kind != KindHearings {
			continue
		}
		hearings, warnings := im.parser.ParseHearings(sheet.grid, sheet.name, state.caseIDMap)
		result.Warnings = append(result.Warnings, warnings...)
		state.hearings = append(state.hearings, hearings...)
	}

	im.parser.ApplyZoomDetails(state.hearings, state.zoom)
	im.logger.Debug("Hearings stage complete", "hearings", len(state.hearings))
}

func (im *Importer) parseDocumentsStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	for _, sheet := range sheets {
		if sheet.kind != KindDocuments {
			continue
		}
		documents, warnings := im.parser.ParseDocuments(sheet.grid, sheet.name, state.caseIDMap)
		result.Warnings = append(result.Warnings, warnings...)
		state.documents = append(state.documents, documents...)
	}
	im.logger.Debug("Documents stage complete", "documents", len(state.documents))
}

func (im *Importer) parseServiceLogsStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	for _, sheet := range sheets {
		if sheet.kind != KindServiceLogs {
			continue
		}
		logs, warnings := im.parser.ParseServiceLogs(sheet.grid, sheet.name, state.caseIDMap, state.documents)
		result.Warnings = append(result.Warnings, warnings...)
		state.serviceLogs = append(state.serviceLogs, logs...)
	}
	im.logger.Debug("Service logs stage complete", "service_logs", len(state.serviceLogs))
}

func (im *Importer) parseInvoicesStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	var sources []SheetData
	var invoiceSheets []classifiedSheet
	for _, sheet := range sheets {
		if sheet.kind == KindInvoices {
			invoiceSheets = append(invoiceSheets, sheet)
		}
	}
	// Outstanding before New before Final: first seen wins, so source
	// order is the merge policy
	sort.SliceStable(invoiceSheets, func(i, j int) bool {
		return invoiceSheets[i].rank < invoiceSheets[j].rank
	})
	for _, sheet := range invoiceSheets {
		sources = append(sources, SheetData{Name: sheet.name, Grid: sheet.grid})
	}

	var warnings []string
	state.invoices, warnings = im.parser.ParseInvoices(sources, state.caseIDMap)
	result.Warnings = append(result.Warnings, warnings...)
	im.logger.Debug("Invoices stage complete", "invoices", len(state.invoices))
}

func (im *Importer) parsePaymentPlansStage(sheets []classifiedSheet, state *importState, result *ImportResult) {
	for _, sheet := range sheets {
		if sheet.kind != KindPaymentPlans {
			continue
		}
		plans, warnings := im.parser.ParsePaymentPlans(sheet.grid, sheet.name, state.invoices)
		result.Warnings = append(result.Warnings, warnings...)
		state.paymentPlans = append(state.paymentPlans, plans...)
	}
	im.logger.Debug("Payment plans stage complete", "payment_plans", len(state.paymentPlans))
}

// invoiceSourceRank orders invoice sources Outstanding < New < Final.
func invoiceSourceRank(sheetName string) int {
	switch sheetName {
	case SheetInvoices:
		return 0
	case SheetNewInvoices:
		return 1
	case SheetFinalInvoices:
		return 2
	default:
		return 3
	}
}

// SuggestMappings runs the field-type detector over a single file's headers
// so the UI can offer a mapping-review table before import.
func (im *Importer) SuggestMappings(file NamedFile, maxSamples int) (map[string]FieldType, error) {
	var grid [][]string
	var err error

	if ext := strings.ToLower(filepath.Ext(file.Name)); ext == ".xlsx" || ext == ".xls" {
		f, openErr := excelize.OpenReader(bytes.NewReader(file.Data))
		if openErr != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", openErr)
		}
		defer f.Close()
		sheetList := f.GetSheetList()
		if len(sheetList) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		grid, err = f.GetRows(sheetList[0], excelize.Options{RawCellValue: true})
	} else {
		grid, err = ReadDelimited(file.Data)
	}
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}

	headers := make([]string, 0, len(grid[0]))
	for _, h := range grid[0] {
		if strings.TrimSpace(h) != "" {
			headers = append(headers, strings.TrimSpace(h))
		}
	}
	rows := GridToRows(grid, 0)

	if maxSamples <= 0 {
		maxSamples = 5
	}
	return GenerateFieldMappingSuggestions(headers, rows, maxSamples), nil
}

// Empty-slice helpers keep the JSON handoff self-describing: the UI sees
// [] rather than null for absent entity types.

func orEmptyCases(v []*database.Case) []*database.Case {
	if v == nil {
		return []*database.Case{}
	}
	return v
}

func orEmptyHearings(v []*database.Hearing) []*database.Hearing {
	if v == nil {
		return []*database.Hearing{}
	}
	return v
}

func orEmptyDocuments(v []*database.Document) []*database.Document {
	if v == nil {
		return []*database.Document{}
	}
	return v
}

func orEmptyServiceLogs(v []*database.ServiceLog) []*database.ServiceLog {
	if v == nil {
		return []*database.ServiceLog{}
	}
	return v
}

func orEmptyInvoices(v []*database.Invoice) []*database.Invoice {
	if v == nil {
		return []*database.Invoice{}
	}
	return v
}

func orEmptyPaymentPlans(v []*database.PaymentPlan) []*database.PaymentPlan {
	if v == nil {
		return []*database.PaymentPlan{}
	}
	return v
}

func orEmptyContacts(v []*database.Contact) []*database.Contact {
	if v == nil {
		return []*database.Contact{}
	}
	return v
}
