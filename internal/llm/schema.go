package llm

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset)
// as a generic map. We send it to the model as a structured-output
// constraint and also use it locally to validate the reply. Numeric
// fields deliberately admit strings: extractors return values like
// "$1,234.50" or "12 pcs" and the coercer downstream handles them.
func BuildDocumentJSONSchema() map[string]any {
	numericOrString := map[string]any{"type": []string{"number", "string"}}

	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"quantity":    numericOrString,
			"unit_price":  numericOrString,
			"total":       numericOrString,
		},
		"required": []string{"description"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"vendor_name":    map[string]any{"type": "string"},
			"customer_name":  map[string]any{"type": "string"},
			"po_number":      map[string]any{"type": "string"},
			"invoice_number": map[string]any{"type": "string"},
			"total_amount":   numericOrString,
			"items":          map[string]any{"type": "array", "items": item},
		},
		"required": []string{"vendor_name", "customer_name", "total_amount", "items"},
	}
}
