// Package server exposes the reconciliation pipeline over HTTP: a
// multipart upload endpoint that returns the verdict as JSON, plus
// read-only views over the match history.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-reconciler/internal/common"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
	"github.com/joseph-ayodele/invoice-reconciler/internal/history"
	"github.com/joseph-ayodele/invoice-reconciler/internal/pipeline"
)

// DocumentMatcher runs the invoice/PO pipeline for one upload pair.
type DocumentMatcher interface {
	Match(ctx context.Context, invoice, po pipeline.Upload) (entity.ReconciliationReport, error)
}

// HistoryStore is the slice of the history package the handlers use.
// A nil store disables recording and the history endpoints return 404.
type HistoryStore interface {
	Record(ctx context.Context, invoiceFile, poFile string, report entity.ReconciliationReport) (string, error)
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// Exporter renders history entries as a downloadable workbook.
type Exporter interface {
	ExportMatchesXLSX(ctx context.Context, limit int) ([]byte, error)
}

type Server struct {
	matcher       DocumentMatcher
	store         HistoryStore
	exporter      Exporter
	maxUploadSize int64
	log           *slog.Logger
}

func New(matcher DocumentMatcher, store HistoryStore, exporter Exporter, maxUploadSize int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = 20 << 20
	}
	return &Server{
		matcher:       matcher,
		store:         store,
		exporter:      exporter,
		maxUploadSize: maxUploadSize,
		log:           logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware())

	r.GET("/healthz", s.handleHealth)
	r.POST("/match", s.handleMatch)
	r.GET("/matches", s.handleListMatches)
	r.GET("/matches/export", s.handleExportMatches)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		s.log.Info("http.request",
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
