package run

import (
	"time"

	"bootstat/domain/bootstrap"
	"bootstat/domain/core"
)

// Record is one persisted bootstrap test run: the inputs that name it plus
// the full diagnostic result.
type Record struct {
	ID        core.RunID        `json:"id"`
	Suite     string            `json:"suite,omitempty"`
	Name      string            `json:"name"`
	Statistic string            `json:"statistic"`
	Passed    bool              `json:"passed"`
	Result    *bootstrap.Result `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewRecord stamps a result with identity and time.
func NewRecord(suite, name, statistic string, result *bootstrap.Result) *Record {
	return &Record{
		ID:        core.NewRunID(),
		Suite:     suite,
		Name:      name,
		Statistic: statistic,
		Passed:    result.Passed(),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}
