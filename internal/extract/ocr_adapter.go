package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/invoice-reconciler/internal/ocr"
)

// OCRAdapter adapts the ocr.Extractor to the TextExtractor contract.
type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor, _ *slog.Logger) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, data []byte, filename string) (TextExtractionResult, error) {
	r, err := a.e.ExtractBytes(ctx, data, filename)
	return TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Language:   r.Language,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}, err
}
