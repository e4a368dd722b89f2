package database

import (
	"context"
	"fmt"
	"time"

	"github.com/assapir/jobflow/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS search_runs (
	id          BIGSERIAL PRIMARY KEY,
	source      TEXT        NOT NULL,
	query       TEXT        NOT NULL,
	location    TEXT        NOT NULL DEFAULT '',
	outcome     TEXT        NOT NULL,
	job_count   INTEGER     NOT NULL DEFAULT 0,
	error       TEXT        NOT NULL DEFAULT '',
	duration_ms BIGINT      NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Repository stores search runs in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers (PgBouncer, Supabase) do not support prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create search_runs table: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		r.db.Close()
	}
	return nil
}

// RecordRun inserts one search run
func (r *Repository) RecordRun(ctx context.Context, run models.SearchRun) error {
	query := `
		INSERT INTO search_runs (source, query, location, outcome, job_count, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query, run.Source, run.Query, run.Location, string(run.Outcome),
		run.JobCount, run.Error, run.Duration.Milliseconds(), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record search run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error) {
	query := `
		SELECT id, source, query, location, outcome, job_count, error, duration_ms, created_at
		FROM search_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search runs: %w", err)
	}
	defer rows.Close()

	runs := []models.SearchRun{}
	for rows.Next() {
		var run models.SearchRun
		var outcome string
		var durationMs int64
		if err := rows.Scan(&run.ID, &run.Source, &run.Query, &run.Location, &outcome,
			&run.JobCount, &run.Error, &durationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		run.Outcome = models.Outcome(outcome)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search runs: %w", err)
	}
	return runs, nil
}
