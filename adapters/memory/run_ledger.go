// Package memory provides an in-process run ledger used when no database is
// configured and as the ledger fake in tests.
package memory

import (
	"context"
	"sync"

	"bootstat/domain/core"
	"bootstat/domain/run"
	"bootstat/ports"
)

// RunLedger stores run records in memory, newest first.
type RunLedger struct {
	mu      sync.RWMutex
	records []*run.Record
	byID    map[core.RunID]*run.Record
}

// NewRunLedger creates an empty in-memory ledger.
func NewRunLedger() *RunLedger {
	return &RunLedger{byID: make(map[core.RunID]*run.Record)}
}

// SaveRun appends a record.
func (l *RunLedger) SaveRun(_ context.Context, record *run.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]*run.Record{record}, l.records...)
	l.byID[record.ID] = record
	return nil
}

// GetRun fetches a record by ID.
func (l *RunLedger) GetRun(_ context.Context, id core.RunID) (*run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.byID[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return record, nil
}

// ListRuns returns up to limit records, newest first. limit <= 0 means all.
func (l *RunLedger) ListRuns(_ context.Context, limit int) ([]*run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]*run.Record, limit)
	copy(out, l.records[:limit])
	return out, nil
}

var _ ports.RunLedgerPort = (*RunLedger)(nil)
