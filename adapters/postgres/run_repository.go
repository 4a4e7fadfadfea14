package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bootstat/domain/bootstrap"
	"bootstat/domain/core"
	"bootstat/domain/run"
	"bootstat/ports"
)

// RunRepository persists bootstrap test runs in PostgreSQL
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun inserts one completed run record
func (r *RunRepository) SaveRun(ctx context.Context, record *run.Record) error {
	query := `
		INSERT INTO bootstrap_runs (
			id, suite, name, statistic, passed,
			alpha, alpha_corrected, sample_size, resamples,
			result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		record.ID.String(),
		record.Suite,
		record.Name,
		record.Statistic,
		record.Passed,
		record.Result.Alpha,
		record.Result.AlphaCorrected,
		record.Result.SampleSize,
		record.Result.Resamples,
		resultJSON,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}
	return nil
}

// GetRun fetches a run by ID
func (r *RunRepository) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	query := `
		SELECT id, suite, name, statistic, passed, result, created_at
		FROM bootstrap_runs
		WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to fetch run %s: %w", id, err)
	}
	return record, nil
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*run.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, suite, name, statistic, passed, result, created_at
		FROM bootstrap_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*run.Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *RunRepository) scanRecord(row rowScanner) (*run.Record, error) {
	var (
		record     run.Record
		id         string
		resultJSON []byte
		createdAt  time.Time
	)
	if err := row.Scan(&id, &record.Suite, &record.Name, &record.Statistic,
		&record.Passed, &resultJSON, &createdAt); err != nil {
		return nil, err
	}

	var result bootstrap.Result
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	record.ID = core.RunID(id)
	record.Result = &result
	record.CreatedAt = createdAt
	return &record, nil
}

var _ ports.RunLedgerPort = (*RunRepository)(nil)
