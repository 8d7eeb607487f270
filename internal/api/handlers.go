package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caseflow-io/caseflow/internal/cache"
	"github.com/caseflow-io/caseflow/internal/config"
	"github.com/caseflow-io/caseflow/internal/database"
	"github.com/caseflow-io/caseflow/internal/importer"
	"github.com/caseflow-io/caseflow/pkg/logger"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db       *gorm.DB
	store    *database.Store
	cache    cache.Cache
	importer *importer.Importer
	logger   *logger.Logger
	cfg      *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, resultCache cache.Cache, imp *importer.Importer, log *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		db:       db,
		store:    database.NewStore(db),
		cache:    resultCache,
		importer: imp,
		logger:   log,
		cfg:      cfg,
	}
}

// readUploads extracts all uploaded files from the multipart form.
func (h *Handlers) readUploads(c *gin.Context) ([]importer.NamedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var files []importer.NamedFile
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, importer.NamedFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

// runImport executes the right pipeline for the upload: a single workbook
// goes through the sheet orchestrator, anything else through the flat-file
// orchestrator. Results are cached by content digest.
func (h *Handlers) runImport(files []importer.NamedFile) (string, *importer.ImportResult) {
	key := cache.DigestKey(files)
	if cached, found := h.cache.Get(key); found {
		h.logger.Info("Import cache hit", "digest", key)
		return key, cached
	}

	var result *importer.ImportResult
	if len(files) == 1 && isWorkbook(files[0].Name) {
		result = h.importer.ImportWorkbook(files[0].Data)
	} else {
		result = h.importer.ImportFiles(files)
	}

	h.cache.Set(key, result)
	return key, result
}

func isWorkbook(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls"
}

// PreviewImport parses an upload and returns the full result without
// persisting anything, so the UI can render a review table first.
func (h *Handlers) PreviewImport(c *gin.Context) {
	files, err := h.readUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid upload: " + err.Error(),
		})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "no files uploaded",
		})
		return
	}

	digest, result := h.runImport(files)

	c.JSON(http.StatusOK, gin.H{
		"success": result.Success,
		"digest":  digest,
		"result":  result,
	})
}

// CommitImport parses an upload (or reuses the cached parse) and persists the
// entities through the store.
func (h *Handlers) CommitImport(c *gin.Context) {
	files, err := h.readUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid upload: " + err.Error(),
		})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "no files uploaded",
		})
		return
	}

	digest, result := h.runImport(files)

	run := &database.ImportRun{
		Source:          sourceLabel(files),
		Digest:          digest,
		Success:         result.Success,
		TotalSheets:     result.Stats.TotalSheets + result.Stats.TotalFiles,
		ProcessedSheets: result.Stats.ProcessedSheets + result.Stats.ProcessedFiles,
		ProcessedRows:   result.Stats.ProcessedRows,
		CaseCount:       len(result.Entities.Cases),
		HearingCount:    len(result.Entities.Hearings),
		DocumentCount:   len(result.Entities.Documents),
		InvoiceCount:    len(result.Entities.Invoices),
		ContactCount:    len(result.Entities.Contacts),
		Warnings:        strings.Join(result.Warnings, "\n"),
		Errors:          strings.Join(result.Errors, "\n"),
	}

	if !result.Success {
		h.store.RecordRun(run)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"result":  result,
		})
		return
	}

	if err := h.persist(result); err != nil {
		h.logger.Error("Failed to persist import", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to persist import: " + err.Error(),
		})
		return
	}

	if err := h.store.RecordRun(run); err != nil {
		h.logger.Error("Failed to record import run", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"digest":  digest,
		"result":  result,
	})
}

// persist writes the bundle in dependency order.
func (h *Handlers) persist(result *importer.ImportResult) error {
	if err := h.store.SaveContacts(result.Entities.Contacts); err != nil {
		return err
	}
	if err := h.store.SaveCases(result.Entities.Cases); err != nil {
		return err
	}
	if err := h.store.SaveHearings(result.Entities.Hearings); err != nil {
		return err
	}
	if err := h.store.SaveDocuments(result.Entities.Documents); err != nil {
		return err
	}
	if err := h.store.SaveServiceLogs(result.Entities.ServiceLogs); err != nil {
		return err
	}
	if err := h.store.SaveInvoices(result.Entities.Invoices); err != nil {
		return err
	}
	return h.store.SavePaymentPlans(result.Entities.PaymentPlans)
}

func sourceLabel(files []importer.NamedFile) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

// SuggestMappings returns field-type suggestions for a single uploaded file.
func (h *Handlers) SuggestMappings(c *gin.Context) {
	files, err := h.readUploads(c)
	if err != nil || len(files) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "exactly one file is required",
		})
		return
	}

	suggestions, err := h.importer.SuggestMappings(files[0], h.cfg.SampleRows)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
	})
}

// ListRuns returns past import runs, newest first.
func (h *Handlers) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	runs, total, err := h.store.ListRuns(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    runs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// ListCases returns persisted cases with pagination.
func (h *Handlers) ListCases(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int64
	h.db.Model(&database.Case{}).Count(&total)

	var cases []database.Case
	h.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&cases)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetCase returns one case plus everything attached to it.
func (h *Handlers) GetCase(c *gin.Context) {
	caseID := c.Param("caseId")

	var kase database.Case
	if err := h.db.Where("case_id = ?", caseID).First(&kase).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "case not found",
		})
		return
	}

	var hearings []database.Hearing
	h.db.Where("case_id = ?", caseID).Find(&hearings)

	var documents []database.Document
	h.db.Where("case_id = ?", caseID).Find(&documents)

	var invoices []database.Invoice
	h.db.Where("case_id = ?", caseID).Find(&invoices)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"case":      kase,
			"hearings":  hearings,
			"documents": documents,
			"invoices":  invoices,
		},
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.ImportRun{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	stats := h.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
