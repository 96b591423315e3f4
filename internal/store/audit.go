package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// RunStatus is the terminal state of one aggregation run.
type RunStatus string

const (
	RunOK              RunStatus = "ok"
	RunUpstreamError   RunStatus = "upstream_error"
	RunSchemaViolation RunStatus = "schema_violation"
)

// AuditEntry is one row in the aggregation audit log.
type AuditEntry struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id"`
	Sources       string    `json:"sources"` // comma-joined
	Status        RunStatus `json:"status"`
	FieldsDropped int       `json:"fields_dropped"`
	DurationMs    int64     `json:"duration_ms"`
	Detail        string    `json:"detail,omitempty"`
	CreatedAt     string    `json:"created_at"`
}

var (
	auditDB   *sql.DB
	auditOnce sync.Once
	auditErr  error
	auditPath string
)

// SetAuditPath sets the SQLite audit log location before first use.
// Empty keeps the default under $HOME/.go_profile.
func SetAuditPath(path string) { auditPath = path }

// openAuditDB opens (or creates) the SQLite audit database.
func openAuditDB() (*sql.DB, error) {
	auditOnce.Do(func() {
		dbPath := auditPath
		if dbPath == "" {
			dir := filepath.Join(os.Getenv("HOME"), ".go_profile")
			if err := os.MkdirAll(dir, 0750); err != nil {
				auditErr = fmt.Errorf("audit: mkdir %s: %w", dir, err)
				return
			}
			dbPath = filepath.Join(dir, "audit.db")
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			auditErr = fmt.Errorf("audit: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initAuditSchema(db); err != nil {
			auditErr = fmt.Errorf("audit: init schema: %w", err)
			return
		}
		auditDB = db
	})
	return auditDB, auditErr
}

func initAuditSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS aggregation_runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id         TEXT NOT NULL,
		sources        TEXT NOT NULL,
		status         TEXT NOT NULL,
		fields_dropped INTEGER NOT NULL DEFAULT 0,
		duration_ms    INTEGER NOT NULL DEFAULT 0,
		detail         TEXT,
		created_at     TEXT NOT NULL
	)`)
	return err
}

// RecordRun appends one aggregation run to the audit log. Best-effort:
// callers treat failures as non-fatal.
func RecordRun(_ context.Context, e AuditEntry) error {
	db, err := openAuditDB()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(
		`INSERT INTO aggregation_runs (run_id, sources, status, fields_dropped, duration_ms, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Sources, string(e.Status), e.FieldsDropped, e.DurationMs, e.Detail, now,
	)
	if err != nil {
		return fmt.Errorf("audit: insert run: %w", err)
	}
	return nil
}

// ListRuns returns recent aggregation runs, newest first, optionally
// filtered by status.
func ListRuns(_ context.Context, status string, limit int) ([]AuditEntry, error) {
	db, err := openAuditDB()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, run_id, sources, status, fields_dropped, duration_ms, COALESCE(detail,''), created_at
	          FROM aggregation_runs`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += ` WHERE status = ?`
		args = append(args, s)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: list runs: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Sources, &e.Status,
			&e.FieldsDropped, &e.DurationMs, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
