package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "matches.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := entity.ReconciliationReport{
		Status:        constants.StatusNeedsReview,
		InvoiceNumber: "INV-2002",
		PONumber:      "PO-1001",
		VendorMatch:   true,
		CustomerMatch: true,
		TotalMatch:    false,
		Issues:        []string{"Total amount mismatch: PO=50, Invoice=60"},
	}

	id, err := s.Record(ctx, "invoice.pdf", "po.pdf", report)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ID != id || e.InvoiceFile != "invoice.pdf" || e.POFile != "po.pdf" {
		t.Errorf("entry = %+v", e)
	}
	if e.Report.Status != constants.StatusNeedsReview || e.Report.TotalMatch {
		t.Errorf("report round-trip: %+v", e.Report)
	}
	if len(e.Report.Issues) != 1 || e.Report.Issues[0] != report.Issues[0] {
		t.Errorf("issues round-trip: %v", e.Report.Issues)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestListNewestFirstAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	clean := entity.ReconciliationReport{Status: constants.StatusApproved, Issues: []string{}}
	for i := 0; i < 5; i++ {
		if _, err := s.Record(ctx, "inv.pdf", "po.pdf", clean); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	entries, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Error("entries not ordered newest first")
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("want empty non-nil slice, got %v", entries)
	}
}
