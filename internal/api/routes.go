package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caseflow-io/caseflow/internal/cache"
	"github.com/caseflow-io/caseflow/internal/config"
	"github.com/caseflow-io/caseflow/internal/importer"
	"github.com/caseflow-io/caseflow/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, resultCache cache.Cache, imp *importer.Importer, logger *logger.Logger, cfg *config.Config) {
	h := NewHandlers(db, resultCache, imp, logger, cfg)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// Import pipeline
		api.POST("/import/preview", h.PreviewImport)
		api.POST("/import/commit", h.CommitImport)
		api.POST("/import/suggest", h.SuggestMappings)
		api.GET("/imports", h.ListRuns)

		// Persisted entities
		api.GET("/cases", h.ListCases)
		api.GET("/cases/:caseId", h.GetCase)

		// Cache stats
		api.GET("/cache/stats", h.CacheStats)
	}
}
