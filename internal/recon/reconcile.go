// Package recon implements the reconciliation engine: coercion of raw
// extractor records into canonical documents, fuzzy matching of names
// and line items, and aggregation into a single explainable verdict.
// The engine is pure and synchronous; malformed input degrades into
// issue strings, never into errors.
package recon

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
)

// Options holds the matching thresholds and tolerances.
type Options struct {
	NameThreshold   int     // token-sort score required for vendor/customer match
	ItemThreshold   int     // partial-match score required for a line-item match
	AmountTolerance float64 // absolute tolerance for totals and unit prices
}

// DefaultOptions returns the production thresholds.
func DefaultOptions() Options {
	return Options{
		NameThreshold:   constants.NameMatchThreshold,
		ItemThreshold:   constants.ItemMatchThreshold,
		AmountTolerance: constants.AmountTolerance,
	}
}

// Engine compares a coerced invoice against a coerced purchase order.
// Each call allocates a fresh report, so one Engine may serve
// concurrent requests.
type Engine struct {
	opts Options
	log  *slog.Logger
}

func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NameThreshold <= 0 {
		opts.NameThreshold = constants.NameMatchThreshold
	}
	if opts.ItemThreshold <= 0 {
		opts.ItemThreshold = constants.ItemMatchThreshold
	}
	if opts.AmountTolerance <= 0 {
		opts.AmountTolerance = constants.AmountTolerance
	}
	return &Engine{opts: opts, log: logger}
}

// Reconcile produces the verdict for one invoice/PO pair. Issue order:
// total amount, forward line-item pass, reverse line-item pass, vendor,
// customer. APPROVED exactly when the issue list comes out empty.
func (e *Engine) Reconcile(invoice, po entity.DocumentRecord) entity.ReconciliationReport {
	vendorMatch := TokenSortRatio(invoice.VendorName, po.VendorName) >= e.opts.NameThreshold
	customerMatch := TokenSortRatio(invoice.CustomerName, po.CustomerName) >= e.opts.NameThreshold
	totalMatch := math.Abs(invoice.TotalAmount-po.TotalAmount) < e.opts.AmountTolerance

	issues := make([]string, 0, 4)
	if !totalMatch {
		issues = append(issues, fmt.Sprintf("Total amount mismatch: PO=%v, Invoice=%v", po.TotalAmount, invoice.TotalAmount))
	}

	issues = append(issues, e.compareItems(invoice.Items, po.Items)...)

	if !vendorMatch {
		issues = append(issues, "Vendor name mismatch.")
	}
	if !customerMatch {
		issues = append(issues, "Customer name mismatch.")
	}

	status := constants.StatusApproved
	if len(issues) > 0 {
		status = constants.StatusNeedsReview
	}

	e.log.Info("recon.report",
		"status", string(status),
		"invoice_number", invoice.InvoiceNumber,
		"po_number", po.PONumber,
		"vendor_match", vendorMatch,
		"customer_match", customerMatch,
		"total_match", totalMatch,
		"issues", len(issues),
	)

	return entity.ReconciliationReport{
		Status:        status,
		InvoiceNumber: invoice.InvoiceNumber,
		PONumber:      po.PONumber,
		VendorMatch:   vendorMatch,
		CustomerMatch: customerMatch,
		TotalMatch:    totalMatch,
		Issues:        issues,
	}
}
