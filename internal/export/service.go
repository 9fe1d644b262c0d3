package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-reconciler/internal/history"
)

// HistoryLister is the slice of the history store this service needs.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// Service produces XLSX bytes from the match history for download.
type Service struct {
	store  HistoryLister
	logger *slog.Logger
}

func NewService(store HistoryLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportMatchesXLSX returns a workbook with the most recent verdicts,
// one row per reconciled pair.
func (s *Service) ExportMatchesXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query match history: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Matches"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Matched At",
		"Status",
		"Invoice Number",
		"PO Number",
		"Invoice File",
		"PO File",
		"Vendor Match",
		"Customer Match",
		"Total Match",
		"Issues",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.CreatedAt.Format(time.RFC3339))
		write(2, string(e.Report.Status))
		write(3, e.Report.InvoiceNumber)
		write(4, e.Report.PONumber)
		write(5, e.InvoiceFile)
		write(6, e.POFile)
		write(7, yesNo(e.Report.VendorMatch))
		write(8, yesNo(e.Report.CustomerMatch))
		write(9, yesNo(e.Report.TotalMatch))
		write(10, strings.Join(e.Report.Issues, "\n"))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 22) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 16) // status
	_ = f.SetColWidth(sheet, "C", "D", 18) // doc numbers
	_ = f.SetColWidth(sheet, "E", "F", 32) // filenames
	_ = f.SetColWidth(sheet, "J", "J", 72) // issues

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
