// Package ocr turns uploaded document bytes into text. PDFs go through
// pdftotext first; when the text layer is blank the pages are
// rasterized with pdftoppm and read with tesseract. Images go straight
// to tesseract. All external commands run through the Runner seam.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ExtractBytes spools the upload to a temp file and picks a strategy
// from the filename extension.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte, filename string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(filename))
	format := constants.MapExtToFormat(ext)
	e.logger.Debug("ocr.extract.start", "filename", filename, "ext", ext, "bytes", len(data))

	if format == "" {
		e.logger.Error("ocr.extract.unsupported_ext", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}

	path, cleanup, err := spool(data, ext)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("spool upload: %w", err)
	}
	defer cleanup()

	var res ExtractionResult
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	e.logger.Info("ocr.extract.ok",
		"filename", filename,
		"method", res.Method,
		"pages", res.Pages,
		"text_bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func spool(data []byte, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "recon-up-*."+ext)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() {
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			slog.Warn("ocr.spool.cleanup_failed", "path", path, "error", rerr)
		}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
