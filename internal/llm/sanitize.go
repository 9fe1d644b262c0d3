package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/invoice-reconciler/internal/recon"
)

// StripCodeFences removes markdown code fences that chat models like to
// wrap JSON replies in, leaving the bare payload.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeDocument unmarshals a sanitized model reply into the raw record
// shape. Numeric fields stay `any` here; coercion happens in the engine.
func DecodeDocument(data []byte) (recon.RawDocument, error) {
	var doc recon.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return recon.RawDocument{}, fmt.Errorf("decode document json: %w", err)
	}
	if doc.Items == nil {
		doc.Items = []recon.RawLineItem{}
	}
	return doc, nil
}

// FallbackDocument is the placeholder record used when parsing fails
// outright. The names read as errors on purpose: they fail the fuzzy
// name checks, so the final report explains itself instead of crashing
// the reconciliation.
func FallbackDocument() recon.RawDocument {
	return recon.RawDocument{
		VendorName:    "Error",
		CustomerName:  "Error",
		PONumber:      "N/A",
		InvoiceNumber: "N/A",
		TotalAmount:   0.0,
		Items:         []recon.RawLineItem{},
	}
}
