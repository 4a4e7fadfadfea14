package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bootstat/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create bootstrap_runs table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS bootstrap_runs (
			id TEXT PRIMARY KEY,
			suite TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			statistic TEXT NOT NULL,
			passed BOOLEAN NOT NULL,
			alpha DOUBLE PRECISION NOT NULL,
			alpha_corrected DOUBLE PRECISION NOT NULL,
			sample_size INTEGER NOT NULL,
			resamples INTEGER NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_bootstrap_runs_created_at ON bootstrap_runs (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bootstrap_runs_suite ON bootstrap_runs (suite)`,
	}
	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
