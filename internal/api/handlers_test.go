package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/caseflow-io/caseflow/internal/cache"
	"github.com/caseflow-io/caseflow/internal/config"
	"github.com/caseflow-io/caseflow/internal/database"
	"github.com/caseflow-io/caseflow/internal/importer"
	"github.com/caseflow-io/caseflow/pkg/logger"
)

const complaintCSV = "File #,Plaintiff 1,Defendant 1,Property Address\n" +
	"C1,Acme Properties LLC,John Doe,1 Main St\n"

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log, err := logger.NewLogger("error", "text")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	cfg := &config.Config{SampleRows: 5, HeaderScanMax: 10}
	imp := importer.NewImporter(log, importer.DefaultMappingConfig(), cfg.HeaderScanMax)
	resultCache := cache.NewCache(10, time.Minute)

	router := gin.New()
	SetupRoutes(router, db, resultCache, imp, log, cfg)
	return router
}

func multipartUpload(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	names := make([]string, 0, len(files))
	for filename := range files {
		names = append(names, filename)
	}
	sort.Strings(names)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, filename := range names {
		part, err := writer.CreateFormFile("files", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(files[filename])); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v", resp["status"])
	}
	if resp["database"] != true {
		t.Errorf("database health = %v", resp["database"])
	}
}

func TestPreviewImportNoFiles(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPreviewImportCSV(t *testing.T) {
	router := setupTestRouter(t)

	body, contentType := multipartUpload(t, map[string]string{"complaint.csv": complaintCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		Digest  string                 `json:"digest"`
		Result  *importer.ImportResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Digest == "" {
		t.Errorf("success = %v, digest = %q", resp.Success, resp.Digest)
	}
	if len(resp.Result.Entities.Cases) != 1 || resp.Result.Entities.Cases[0].CaseID != "C1" {
		t.Errorf("cases = %+v", resp.Result.Entities.Cases)
	}

	// Preview must not persist
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	router.ServeHTTP(w2, req2)
	var listResp struct {
		Data []database.Case `json:"data"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listResp.Data) != 0 {
		t.Errorf("preview should not write cases, found %d", len(listResp.Data))
	}
}

func TestCommitImportPersists(t *testing.T) {
	router := setupTestRouter(t)

	body, contentType := multipartUpload(t, map[string]string{"complaint.csv": complaintCSV})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/import/commit", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// The case is queryable afterwards
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/cases/C1", nil)
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("get case status = %d", w2.Code)
	}

	// And the run is audited
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/api/imports", nil)
	router.ServeHTTP(w3, req3)
	var runsResp struct {
		Data []database.ImportRun `json:"data"`
	}
	if err := json.Unmarshal(w3.Body.Bytes(), &runsResp); err != nil {
		t.Fatalf("decode runs response: %v", err)
	}
	if len(runsResp.Data) != 1 || runsResp.Data[0].CaseCount != 1 {
		t.Errorf("runs = %+v", runsResp.Data)
	}
}

func TestCommitImportRetry(t *testing.T) {
	router := setupTestRouter(t)

	upload := map[string]string{
		"complaint.csv": complaintCSV,
		"court 25.csv":  "File #,Court Date,Courtroom\nC1,45000,25\n",
	}

	// A retried commit serves the cached parse; persisting it must not
	// have left record IDs on the cached entities
	for i := 0; i < 2; i++ {
		body, contentType := multipartUpload(t, upload)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/import/commit", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("commit %d status = %d, body = %s", i+1, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cases/C1", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get case status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Hearings []database.Hearing `json:"hearings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Cases upsert, hearings append
	if len(resp.Data.Hearings) != 2 {
		t.Errorf("expected 2 hearing rows after retry, got %d", len(resp.Data.Hearings))
	}
}

func TestGetCaseNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cases/NOPE", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestSuggestMappingsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	body, contentType := multipartUpload(t, map[string]string{
		"contacts.csv": "Contact Email,Cell\na@example.com,555-123-4567\n",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/import/suggest", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success     bool              `json:"success"`
		Suggestions map[string]string `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Suggestions["Contact Email"] != "email" {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}
}

func TestCacheStatsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
