package entity

import "github.com/joseph-ayodele/invoice-reconciler/constants"

// LineItem is one product or service entry on a document.
// Numeric fields are guaranteed numeric after coercion.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// DocumentRecord is the canonical structured view of one purchase order
// or one invoice, after field coercion. Records are built once per
// request, read-only afterwards, and discarded with the report.
type DocumentRecord struct {
	VendorName    string     `json:"vendor_name"`
	CustomerName  string     `json:"customer_name"`
	PONumber      string     `json:"po_number"`
	InvoiceNumber string     `json:"invoice_number"`
	TotalAmount   float64    `json:"total_amount"`
	Items         []LineItem `json:"items"`
}

// ReconciliationReport is the verdict for one invoice/PO pair. Field
// names and casing are a frozen contract with existing clients.
type ReconciliationReport struct {
	Status        constants.ReportStatus `json:"status"`
	InvoiceNumber string                 `json:"invoice_number"`
	PONumber      string                 `json:"po_number"`
	VendorMatch   bool                   `json:"vendor_match"`
	CustomerMatch bool                   `json:"customer_match"`
	TotalMatch    bool                   `json:"total_match"`
	Issues        []string               `json:"issues"`
}

// Approved reports whether the pair reconciled cleanly.
func (r ReconciliationReport) Approved() bool {
	return r.Status == constants.StatusApproved
}
