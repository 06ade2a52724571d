// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs to a local SQLite database so
// past batches can be inspected with the history command. Recording is
// best-effort: a conversion never fails because its history could not be
// written.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jzbor/raw-to-img/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location under the user cache directory.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "raw-to-img", dbFile), nil
}

// Open opens or creates the history database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			input TEXT NOT NULL,
			format TEXT NOT NULL,
			converted INTEGER NOT NULL,
			copied INTEGER NOT NULL,
			moved INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run summarizes one recorded conversion batch.
type Run struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Finished  time.Time `json:"finished_at"`
	Input     string    `json:"input"`
	Format    string    `json:"format"`
	Converted int       `json:"converted"`
	Copied    int       `json:"copied"`
	Moved     int       `json:"moved"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// Record stores one finished run and its per-file records, returning the
// run ID.
func (s *Store) Record(ctx context.Context, run Run, records []types.FileRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, input, format, converted, copied, moved, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Finished.UTC().Format(time.RFC3339Nano),
		run.Input, run.Format,
		run.Converted, run.Copied, run.Moved, run.Skipped, run.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, input, output, status, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		duration := (rec.DecodeTime + rec.EncodeTime).Milliseconds()
		if _, err := stmt.ExecContext(ctx,
			runID, rec.Input, rec.Output, string(rec.Status), rec.Error, duration,
		); err != nil {
			return 0, fmt.Errorf("inserting file record for %s: %w", rec.Input, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input, format, converted, copied, moved, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Input, &r.Format,
			&r.Converted, &r.Copied, &r.Moved, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file records of one run in insertion order.
func (s *Store) Files(ctx context.Context, runID int64) ([]types.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, status, error, duration_ms FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []types.FileRecord
	for rows.Next() {
		var rec types.FileRecord
		var output, errMsg sql.NullString
		var duration sql.NullInt64
		var status string
		if err := rows.Scan(&rec.Input, &output, &status, &errMsg, &duration); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		rec.Output = output.String
		rec.Status = types.FileStatus(status)
		rec.Error = errMsg.String
		rec.DecodeTime = time.Duration(duration.Int64) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}
