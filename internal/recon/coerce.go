package recon

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
)

// RawLineItem is one line item as the structured-field extractor emits
// it. Numeric fields may arrive as numbers, numeric-looking strings
// ("12 pcs", "$5.00"), or junk.
type RawLineItem struct {
	Description string `json:"description"`
	Quantity    any    `json:"quantity"`
	UnitPrice   any    `json:"unit_price"`
	Total       any    `json:"total"`
}

// RawDocument is the best-effort record shape produced by the
// structured-field extractor, before coercion.
type RawDocument struct {
	VendorName    string        `json:"vendor_name"`
	CustomerName  string        `json:"customer_name"`
	PONumber      string        `json:"po_number"`
	InvoiceNumber string        `json:"invoice_number"`
	TotalAmount   any           `json:"total_amount"`
	Items         []RawLineItem `json:"items"`
}

var nonNumericChars = regexp.MustCompile(`[^0-9.]`)

// CoerceNumber converts any JSON-representable scalar into a float64.
// Numbers pass through; strings are stripped down to digits and decimal
// points and parsed; anything unparseable yields 0. Rejecting a whole
// document over one noisy field would be worse than a zeroed value that
// later surfaces as a mismatch issue, so this never fails.
func CoerceNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return coerceNumericString(t.String())
	case string:
		return coerceNumericString(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceNumericString(s string) float64 {
	s = nonNumericChars.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CoerceRecord turns a raw extractor record into a canonical
// DocumentRecord: numeric fields guaranteed numeric, missing string
// fields replaced by the N/A sentinel, items always non-nil.
func CoerceRecord(raw RawDocument) entity.DocumentRecord {
	rec := entity.DocumentRecord{
		VendorName:    coerceText(raw.VendorName),
		CustomerName:  coerceText(raw.CustomerName),
		PONumber:      coerceText(raw.PONumber),
		InvoiceNumber: coerceText(raw.InvoiceNumber),
		TotalAmount:   CoerceNumber(raw.TotalAmount),
		Items:         make([]entity.LineItem, 0, len(raw.Items)),
	}
	for _, it := range raw.Items {
		rec.Items = append(rec.Items, entity.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    CoerceNumber(it.Quantity),
			UnitPrice:   CoerceNumber(it.UnitPrice),
			Total:       CoerceNumber(it.Total),
		})
	}
	return rec
}

func coerceText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return constants.NAString
	}
	return s
}
