// Package pipeline wires the two extraction stages to the
// reconciliation engine: text extraction, structured-field parsing,
// coercion, then the verdict. One Matcher serves all requests; every
// call works on fresh records.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
	"github.com/joseph-ayodele/invoice-reconciler/internal/extract"
	"github.com/joseph-ayodele/invoice-reconciler/internal/llm"
	"github.com/joseph-ayodele/invoice-reconciler/internal/recon"
)

// Upload is one document as received from the transport layer.
type Upload struct {
	Filename string
	Data     []byte
}

type Matcher struct {
	text   extract.TextExtractor
	parser llm.DocumentParser
	engine *recon.Engine
	log    *slog.Logger
}

func NewMatcher(text extract.TextExtractor, parser llm.DocumentParser, engine *recon.Engine, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	if engine == nil {
		engine = recon.NewEngine(recon.DefaultOptions(), logger)
	}
	return &Matcher{text: text, parser: parser, engine: engine, log: logger}
}

// Match runs the full pipeline for one invoice/PO pair. Text
// extraction failure aborts the request; a failed structured parse
// degrades to a placeholder record so the verdict still explains
// itself through issues.
func (m *Matcher) Match(ctx context.Context, invoice, po Upload) (entity.ReconciliationReport, error) {
	start := time.Now()

	invRec, err := m.processDocument(ctx, invoice, llm.KindInvoice)
	if err != nil {
		return entity.ReconciliationReport{}, err
	}
	poRec, err := m.processDocument(ctx, po, llm.KindPurchaseOrder)
	if err != nil {
		return entity.ReconciliationReport{}, err
	}

	report := m.engine.Reconcile(invRec, poRec)

	m.log.Info("pipeline.match.ok",
		"invoice_file", invoice.Filename,
		"po_file", po.Filename,
		"status", string(report.Status),
		"issues", len(report.Issues),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (m *Matcher) processDocument(ctx context.Context, up Upload, kind string) (entity.DocumentRecord, error) {
	res, err := m.text.Extract(ctx, up.Data, up.Filename)
	if err != nil {
		m.log.Error("pipeline.extract.failed", "kind", kind, "filename", up.Filename, "error", err)
		return entity.DocumentRecord{}, fmt.Errorf("extract text from %s: %w", kind, err)
	}
	m.log.Debug("pipeline.extract.ok",
		"kind", kind, "method", res.Method, "pages", res.Pages, "text_bytes", len(res.Text))

	raw, _, err := m.parser.ParseDocument(ctx, llm.ParseRequest{
		Text:         res.Text,
		FilenameHint: up.Filename,
		Kind:         kind,
	})
	if err != nil {
		// Degrade instead of failing the pair: the placeholder record
		// fails the name checks and surfaces as review issues.
		m.log.Warn("pipeline.parse.fallback", "kind", kind, "filename", up.Filename, "error", err)
		raw = llm.FallbackDocument()
	}

	return recon.CoerceRecord(raw), nil
}
