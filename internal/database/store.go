package database

import (
	"context"
	"strings"

	"github.com/assapir/jobflow/internal/models"
)

// RunStore is the search run log. Repository and SQLiteStore implement it.
type RunStore interface {
	RecordRun(ctx context.Context, run models.SearchRun) error
	RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error)
	Close() error
}

// Open picks the backend from the DSN: postgres:// or postgresql:// use pgx,
// sqlite://<path> or a bare file path use SQLite
func Open(ctx context.Context, dsn string) (RunStore, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return ConnectDB(ctx, dsn)
	default:
		return NewSQLiteStore(strings.TrimPrefix(dsn, "sqlite://"))
	}
}
