package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"bootstat/domain/bootstrap"
	"bootstat/domain/run"
	"bootstat/internal"
	"bootstat/internal/engine"
	"bootstat/internal/statistics"
	"bootstat/ports"
)

// TestCase is one named bootstrap assertion within a suite. Statistic names
// resolve through the built-in registry; Fn overrides the name with a custom
// statistic when set.
type TestCase struct {
	Name      string
	Sample    []float64
	Statistic string
	Fn        bootstrap.ScalarStatistic
	Reference float64

	// Zero values fall back to the suite defaults.
	Alpha     float64
	Resamples int
}

// CaseOutcome is the per-case result of a suite run. Err is non-nil for
// caller misuse (input or shape errors); a failed decision sets Failed with
// a populated Result instead.
type CaseOutcome struct {
	Name   string
	Passed bool
	Result *bootstrap.Result
	Err    error
}

// SuiteReport aggregates a suite run.
type SuiteReport struct {
	Suite    string
	Outcomes []CaseOutcome
	Passed   int
	Failed   int
	Errored  int
}

// SuiteRunner executes many test cases with bounded concurrency. Each case
// gets its own RNG stream derived from the suite name, case name, and base
// seed, so results are reproducible regardless of scheduling order.
type SuiteRunner struct {
	rng       ports.RNGPort
	ledger    ports.RunLedgerPort // optional
	log       *internal.Logger
	sem       *semaphore.Weighted
	alpha     float64
	resamples int
	seed      int64
}

// NewSuiteRunner creates a runner with engine defaults. ledger may be nil to
// skip persistence.
func NewSuiteRunner(rng ports.RNGPort, ledger ports.RunLedgerPort, maxParallel int) *SuiteRunner {
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &SuiteRunner{
		rng:       rng,
		ledger:    ledger,
		log:       internal.DefaultLogger,
		sem:       semaphore.NewWeighted(int64(maxParallel)),
		alpha:     engine.DefaultAlpha,
		resamples: engine.DefaultResamples,
	}
}

// SetDefaults overrides the suite-wide alpha, resample count, and base seed.
func (r *SuiteRunner) SetDefaults(alpha float64, resamples int, seed int64) {
	r.alpha = alpha
	r.resamples = resamples
	r.seed = seed
}

// Run evaluates all cases and returns the aggregated report. Only context
// cancellation is returned as an error; per-case problems live in the
// outcomes.
func (r *SuiteRunner) Run(ctx context.Context, suite string, cases []TestCase) (*SuiteReport, error) {
	outcomes := make([]CaseOutcome, len(cases))
	var wg sync.WaitGroup

	for i, testCase := range cases {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, testCase TestCase) {
			defer wg.Done()
			defer r.sem.Release(1)
			outcomes[i] = r.runCase(ctx, suite, testCase)
		}(i, testCase)
	}
	wg.Wait()

	report := &SuiteReport{Suite: suite, Outcomes: outcomes}
	for _, outcome := range outcomes {
		switch {
		case outcome.Err != nil:
			report.Errored++
		case outcome.Passed:
			report.Passed++
		default:
			report.Failed++
		}
	}
	r.log.Info("suite %s: %d passed, %d failed, %d errored", suite, report.Passed, report.Failed, report.Errored)
	return report, nil
}

func (r *SuiteRunner) runCase(ctx context.Context, suite string, testCase TestCase) CaseOutcome {
	statistic := testCase.Fn
	if statistic == nil {
		resolved, err := statistics.Lookup(testCase.Statistic)
		if err != nil {
			return CaseOutcome{Name: testCase.Name, Err: err}
		}
		statistic = resolved
	}

	e := engine.New()
	e.SetRand(r.rng.Stream(suite, testCase.Name, r.seed))
	e.SetAlpha(r.alpha)
	e.SetResamples(r.resamples)
	if testCase.Alpha > 0 {
		e.SetAlpha(testCase.Alpha)
	}
	if testCase.Resamples > 0 {
		e.SetResamples(testCase.Resamples)
	}

	result, err := e.TestScalar(testCase.Sample, statistic, testCase.Reference)
	if err != nil && !bootstrap.IsTestError(err) {
		return CaseOutcome{Name: testCase.Name, Err: err}
	}

	outcome := CaseOutcome{Name: testCase.Name, Passed: result.Passed(), Result: result}
	if r.ledger != nil {
		record := run.NewRecord(suite, testCase.Name, testCase.Statistic, result)
		if saveErr := r.ledger.SaveRun(ctx, record); saveErr != nil {
			r.log.Error("failed to record run %s/%s: %v", suite, testCase.Name, saveErr)
		}
	}
	return outcome
}
