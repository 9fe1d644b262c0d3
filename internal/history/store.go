// Package history keeps an append-only log of reconciliation verdicts
// in a local SQLite database. The reconciliation engine itself stays
// persistence-free; history belongs to the transport layer and failing
// to record a verdict never fails the request.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_history (
	id              TEXT PRIMARY KEY,
	invoice_file    TEXT NOT NULL,
	po_file         TEXT NOT NULL,
	status          TEXT NOT NULL,
	invoice_number  TEXT NOT NULL,
	po_number       TEXT NOT NULL,
	vendor_match    INTEGER NOT NULL,
	customer_match  INTEGER NOT NULL,
	total_match     INTEGER NOT NULL,
	issues          TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_history_created_at ON match_history(created_at DESC);
`

// Entry is one recorded verdict.
type Entry struct {
	ID          string                      `json:"id"`
	InvoiceFile string                      `json:"invoice_file"`
	POFile      string                      `json:"po_file"`
	Report      entity.ReconciliationReport `json:"report"`
	CreatedAt   time.Time                   `json:"created_at"`
}

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the history database and applies the
// production pragmas and schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db, log: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one verdict and returns its assigned ID.
func (s *Store) Record(ctx context.Context, invoiceFile, poFile string, report entity.ReconciliationReport) (string, error) {
	id := uuid.New().String()
	issues, err := json.Marshal(report.Issues)
	if err != nil {
		return "", fmt.Errorf("marshal issues: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_history
			(id, invoice_file, po_file, status, invoice_number, po_number,
			 vendor_match, customer_match, total_match, issues, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, invoiceFile, poFile, string(report.Status),
		report.InvoiceNumber, report.PONumber,
		boolToInt(report.VendorMatch), boolToInt(report.CustomerMatch), boolToInt(report.TotalMatch),
		string(issues), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert match history: %w", err)
	}
	s.log.Debug("history.record.ok", "id", id, "status", string(report.Status))
	return id, nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_file, po_file, status, invoice_number, po_number,
		       vendor_match, customer_match, total_match, issues, created_at
		FROM match_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query match history: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.log.Warn("history.list.rows_close_error", "error", cerr)
		}
	}()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e                  Entry
			status, issuesJSON string
			vm, cm, tm         int
			createdAt          string
		)
		if err := rows.Scan(&e.ID, &e.InvoiceFile, &e.POFile, &status,
			&e.Report.InvoiceNumber, &e.Report.PONumber,
			&vm, &cm, &tm, &issuesJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan match history: %w", err)
		}
		e.Report.Status = constants.ReportStatus(status)
		e.Report.VendorMatch = vm != 0
		e.Report.CustomerMatch = cm != 0
		e.Report.TotalMatch = tm != 0
		if err := json.Unmarshal([]byte(issuesJSON), &e.Report.Issues); err != nil {
			return nil, fmt.Errorf("decode issues for %s: %w", e.ID, err)
		}
		if e.Report.Issues == nil {
			e.Report.Issues = []string{}
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
