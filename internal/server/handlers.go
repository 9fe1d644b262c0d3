package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/common"
	"github.com/joseph-ayodele/invoice-reconciler/internal/pipeline"
)

// handleMatch accepts a multipart form with two files, "invoice" and
// "po", runs the pipeline, and responds with the verdict. The verdict
// is recorded to history on a best-effort basis.
func (s *Server) handleMatch(c *gin.Context) {
	invoice, err := s.readUpload(c, "invoice")
	if err != nil {
		s.respondError(c, err)
		return
	}
	po, err := s.readUpload(c, "po")
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := s.matcher.Match(c.Request.Context(), invoice, po)
	if err != nil {
		s.respondError(c, common.WrapError(err, "match documents"))
		return
	}

	if s.store != nil {
		if _, err := s.store.Record(c.Request.Context(), invoice.Filename, po.Filename, report); err != nil {
			s.log.Warn("history.record.failed",
				"invoice_file", invoice.Filename, "po_file", po.Filename, "error", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleListMatches(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match history is disabled"})
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, common.WrapError(err, "list match history"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": entries})
}

func (s *Server) handleExportMatches(c *gin.Context) {
	if s.store == nil || s.exporter == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match history is disabled"})
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	data, err := s.exporter.ExportMatchesXLSX(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, common.WrapError(err, "export match history"))
		return
	}

	filename := fmt.Sprintf("matches-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// readUpload pulls one named file out of the multipart form and
// validates its extension and size before buffering it.
func (s *Server) readUpload(c *gin.Context, field string) (pipeline.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return pipeline.Upload{}, common.NewAppError("MISSING_FILE",
			fmt.Sprintf("multipart field %q is required", field), common.ErrInvalidInput)
	}
	if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
		return pipeline.Upload{}, common.NewAppError("UNSUPPORTED_TYPE",
			fmt.Sprintf("%q: only PDF, JPG, JPEG and PNG files are accepted", fh.Filename),
			common.ErrInvalidInput)
	}
	if fh.Size > s.maxUploadSize {
		return pipeline.Upload{}, common.NewAppError("FILE_TOO_LARGE",
			fmt.Sprintf("%q exceeds the %d byte upload limit", fh.Filename, s.maxUploadSize),
			common.ErrInvalidInput)
	}

	data, err := readFileHeader(fh)
	if err != nil {
		return pipeline.Upload{}, common.NewAppError("READ_FAILED",
			fmt.Sprintf("read uploaded file %q", fh.Filename), err)
	}
	return pipeline.Upload{Filename: fh.Filename, Data: data}, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("http.request.failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
