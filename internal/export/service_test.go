package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
	"github.com/joseph-ayodele/invoice-reconciler/internal/history"
)

type fakeLister struct {
	entries []history.Entry
	err     error
}

func (f *fakeLister) List(ctx context.Context, limit int) ([]history.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func TestExportMatchesXLSX(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	lister := &fakeLister{entries: []history.Entry{
		{
			ID:          "m-1",
			InvoiceFile: "inv-1001.pdf",
			POFile:      "po-77.pdf",
			CreatedAt:   created,
			Report: entity.ReconciliationReport{
				Status:        constants.StatusNeedsReview,
				InvoiceNumber: "INV-1001",
				PONumber:      "PO-77",
				VendorMatch:   true,
				CustomerMatch: false,
				TotalMatch:    true,
				Issues:        []string{"Customer name mismatch."},
			},
		},
	}}

	svc := NewService(lister, nil)
	data, err := svc.ExportMatchesXLSX(context.Background(), 50)
	if err != nil {
		t.Fatalf("ExportMatchesXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Matches"
	checks := map[string]string{
		"A1": "Matched At",
		"B1": "Status",
		"A2": created.Format(time.RFC3339),
		"B2": "NEEDS_REVIEW",
		"C2": "INV-1001",
		"D2": "PO-77",
		"E2": "inv-1001.pdf",
		"G2": "YES",
		"H2": "NO",
		"J2": "Customer name mismatch.",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestExportMatchesXLSXEmptyHistory(t *testing.T) {
	svc := NewService(&fakeLister{}, nil)
	data, err := svc.ExportMatchesXLSX(context.Background(), 10)
	if err != nil {
		t.Fatalf("ExportMatchesXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Matches")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header row only, got %d rows", len(rows))
	}
}

func TestExportMatchesXLSXStoreError(t *testing.T) {
	svc := NewService(&fakeLister{err: errors.New("db locked")}, nil)
	if _, err := svc.ExportMatchesXLSX(context.Background(), 10); err == nil {
		t.Fatal("expected store error to surface")
	}
}
