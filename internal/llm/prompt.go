package llm

import "strings"

const maxPromptTextBytes = 12000

// BuildSystemPrompt instructs the model to emit the document-record
// JSON shape and nothing else.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a parser for purchase orders and invoices.",
		"From the document text you are given, extract and return a JSON object with this exact structure:",
		`{"vendor_name": "...", "customer_name": "...", "po_number": "...", "invoice_number": "...", "total_amount": 0.0, "items": [{"description": "...", "quantity": 0, "unit_price": 0.0, "total": 0.0}]}`,
		`"items" must list every product or line item found.`,
		"Quantities and prices must be numeric.",
		`If something is missing, set it to "N/A" or 0.`,
		"Do not include any text outside the JSON.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt wraps the extracted text with its hints, capped so a
// long scan cannot blow the context window.
func BuildUserPrompt(req ParseRequest) string {
	var b strings.Builder
	b.WriteString("Document kind hint: ")
	b.WriteString(req.Kind)
	b.WriteString("\nFilename: ")
	b.WriteString(req.FilenameHint)
	b.WriteString("\n\nDocument text:\n---\n")
	if len(req.Text) > maxPromptTextBytes {
		b.WriteString(req.Text[:maxPromptTextBytes])
	} else {
		b.WriteString(req.Text)
	}
	b.WriteString("\n---")
	return b.String()
}
