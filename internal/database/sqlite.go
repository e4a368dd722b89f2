package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/assapir/jobflow/internal/models"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS search_runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	source        TEXT    NOT NULL,
	query         TEXT    NOT NULL,
	location      TEXT    NOT NULL DEFAULT '',
	outcome       TEXT    NOT NULL,
	job_count     INTEGER NOT NULL DEFAULT 0,
	error         TEXT    NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at_ms INTEGER NOT NULL
)`

// SQLiteStore stores search runs in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the table exists
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating search_runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run models.SearchRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_runs (source, query, location, outcome, job_count, error, duration_ms, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.Query, run.Location, string(run.Outcome), run.JobCount, run.Error,
		run.Duration.Milliseconds(), run.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording search run for %q: %w", run.Query, err)
	}
	return nil
}

// RecentRuns returns the newest runs first
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, query, location, outcome, job_count, error, duration_ms, created_at_ms
		FROM search_runs
		ORDER BY created_at_ms DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search runs: %w", err)
	}
	defer rows.Close()

	runs := []models.SearchRun{}
	for rows.Next() {
		var run models.SearchRun
		var outcome string
		var durationMs, createdMs int64
		if err := rows.Scan(&run.ID, &run.Source, &run.Query, &run.Location, &outcome,
			&run.JobCount, &run.Error, &durationMs, &createdMs); err != nil {
			return nil, fmt.Errorf("scanning search run: %w", err)
		}
		run.Outcome = models.Outcome(outcome)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.CreatedAt = time.UnixMilli(createdMs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading search runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
