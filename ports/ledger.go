package ports

import (
	"context"

	"bootstat/domain/core"
	"bootstat/domain/run"
)

// RunLedgerPort records and retrieves bootstrap test runs
type RunLedgerPort interface {
	// SaveRun persists one completed run record
	SaveRun(ctx context.Context, record *run.Record) error

	// GetRun fetches a run by ID; core.ErrRunNotFound when absent
	GetRun(ctx context.Context, id core.RunID) (*run.Record, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]*run.Record, error)
}
