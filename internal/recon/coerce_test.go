package recon

import (
	"testing"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"numeric passthrough", 1234.5, 1234.5},
		{"int passthrough", 42, 42},
		{"currency string", "$1,200.00", 1200.0},
		{"units suffix", "12 pcs", 12},
		{"plain decimal string", "5.50", 5.5},
		{"empty string", "", 0},
		{"placeholder", "N/A", 0},
		{"nil", nil, 0},
		{"garbage", "abc", 0},
		{"multiple decimal points", "1.2.3", 0},
		{"negative sign stripped", "-7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceNumber(tt.in); got != tt.want {
				t.Errorf("CoerceNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceNumberIdempotent(t *testing.T) {
	once := CoerceNumber("$1,200.00")
	twice := CoerceNumber(once)
	if once != twice {
		t.Errorf("coercion not idempotent: %v != %v", once, twice)
	}
}

func TestCoerceRecordDefaults(t *testing.T) {
	rec := CoerceRecord(RawDocument{
		VendorName:  "  Acme Corp  ",
		TotalAmount: "$99.90",
		Items: []RawLineItem{
			{Description: " Widget A ", Quantity: "10 units", UnitPrice: 5.0, Total: "50"},
		},
	})

	if rec.VendorName != "Acme Corp" {
		t.Errorf("vendor = %q", rec.VendorName)
	}
	if rec.CustomerName != constants.NAString {
		t.Errorf("missing customer should default to %q, got %q", constants.NAString, rec.CustomerName)
	}
	if rec.PONumber != constants.NAString || rec.InvoiceNumber != constants.NAString {
		t.Errorf("missing numbers should default to N/A: po=%q invoice=%q", rec.PONumber, rec.InvoiceNumber)
	}
	if rec.TotalAmount != 99.9 {
		t.Errorf("total = %v, want 99.9", rec.TotalAmount)
	}
	if len(rec.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(rec.Items))
	}
	it := rec.Items[0]
	if it.Description != "Widget A" || it.Quantity != 10 || it.UnitPrice != 5.0 || it.Total != 50 {
		t.Errorf("coerced item = %+v", it)
	}
}

func TestCoerceRecordEmptyItems(t *testing.T) {
	rec := CoerceRecord(RawDocument{})
	if rec.Items == nil {
		t.Fatal("items must be non-nil after coercion")
	}
	if len(rec.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(rec.Items))
	}
}
