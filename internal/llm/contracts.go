package llm

import (
	"context"

	"github.com/joseph-ayodele/invoice-reconciler/internal/recon"
)

// Document kinds, used for prompting and logging only.
const (
	KindInvoice       = "invoice"
	KindPurchaseOrder = "purchase order"
)

// ParseRequest carries extracted document text into the field parser.
type ParseRequest struct {
	Text         string
	FilenameHint string
	Kind         string // KindInvoice | KindPurchaseOrder
}

// DocumentParser is Stage 2: text -> raw structured record. The record
// is best-effort; the reconciliation engine coerces it afterwards.
type DocumentParser interface {
	ParseDocument(ctx context.Context, req ParseRequest) (recon.RawDocument, []byte /*rawJSON*/, error)
}
