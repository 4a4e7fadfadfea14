// Package engine implements the bootstrap assertion pipeline: nonparametric
// resampling of a caller-supplied statistic, percentile interval
// construction at a multiplicity-corrected significance level, and the
// pass/fail decision against a reference value.
package engine

import (
	"fmt"
	"math/rand"

	"bootstat/domain/bootstrap"
	"bootstat/domain/core"
	"bootstat/internal"

	"github.com/montanaflynn/stats"
)

// Defaults match the conventional bootstrap test configuration.
const (
	DefaultAlpha     = 0.01
	DefaultResamples = 1000
	DefaultRTol      = 1e-7
	DefaultATol      = 0
)

// FailMode controls how a failed decision is surfaced.
type FailMode string

const (
	// FailModeError returns the result together with a *bootstrap.TestError.
	FailModeError FailMode = "error"
	// FailModeWarn logs the failure and returns the result with a nil error.
	FailModeWarn FailMode = "warn"
)

// Engine evaluates bootstrap tests. The zero configuration from New is ready
// to use; setters adjust one evaluation knob each. An Engine is intended for
// one logical caller at a time: concurrent callers must use separate engines
// with separate random sources.
type Engine struct {
	alpha      float64
	resamples  int
	rtol       float64
	atol       float64
	correction Correction
	failMode   FailMode
	rng        *rand.Rand
	log        *internal.Logger
}

// New creates an engine with default settings and the process-global random
// source. Repeated unseeded runs are therefore not reproducible; call
// SetRand for determinism.
func New() *Engine {
	return &Engine{
		alpha:      DefaultAlpha,
		resamples:  DefaultResamples,
		rtol:       DefaultRTol,
		atol:       DefaultATol,
		correction: CorrectionBonferroni,
		failMode:   FailModeError,
		log:        internal.DefaultLogger,
	}
}

// SetAlpha configures the nominal significance level.
func (e *Engine) SetAlpha(alpha float64) {
	e.alpha = alpha
}

// SetResamples configures the number of bootstrap resamples.
func (e *Engine) SetResamples(resamples int) {
	e.resamples = resamples
}

// SetTolerance configures the relative and absolute tolerance added to the
// interval bounds before the containment check.
func (e *Engine) SetTolerance(rtol, atol float64) {
	e.rtol = rtol
	e.atol = atol
}

// SetCorrection configures the multiple hypothesis correction method.
func (e *Engine) SetCorrection(method Correction) {
	e.correction = method
}

// SetFailMode configures how a failed decision is surfaced.
func (e *Engine) SetFailMode(mode FailMode) {
	e.failMode = mode
}

// SetRand injects a deterministic random source. A nil value restores the
// process-global source.
func (e *Engine) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// SetSeed is a convenience wrapper around SetRand for a fixed seed.
func (e *Engine) SetSeed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// SetLogger overrides the default logger.
func (e *Engine) SetLogger(log *internal.Logger) {
	e.log = log
}

// TestScalar runs a bootstrap test of a scalar statistic against a scalar
// reference. The returned Result always has per-component fields of length 1
// and Scalar set.
func (e *Engine) TestScalar(sample []float64, statistic bootstrap.ScalarStatistic, reference float64) (*bootstrap.Result, error) {
	if statistic == nil {
		return nil, core.ErrNilStatistic
	}
	evaluate := func(indices []int) []float64 {
		resample := make([]float64, len(indices))
		for i, idx := range indices {
			resample[i] = sample[idx]
		}
		return []float64{statistic(resample)}
	}
	return e.run(len(sample), evaluate, []float64{reference}, true)
}

// TestVector runs a bootstrap test of a fixed-length vector statistic
// against a reference vector of the same length.
func (e *Engine) TestVector(sample []float64, statistic bootstrap.VectorStatistic, reference []float64) (*bootstrap.Result, error) {
	if statistic == nil {
		return nil, core.ErrNilStatistic
	}
	evaluate := func(indices []int) []float64 {
		resample := make([]float64, len(indices))
		for i, idx := range indices {
			resample[i] = sample[idx]
		}
		return statistic(resample)
	}
	return e.run(len(sample), evaluate, reference, false)
}

// TestRows runs a bootstrap test over a sample whose observations are
// fixed-length vectors. Rows are resampled whole; the statistic sees a full
// resampled row set per evaluation.
func (e *Engine) TestRows(rows [][]float64, statistic bootstrap.RowStatistic, reference []float64) (*bootstrap.Result, error) {
	if statistic == nil {
		return nil, core.ErrNilStatistic
	}
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			if len(row) != width {
				return nil, fmt.Errorf("%w: row %d has %d values, expected %d", core.ErrRaggedRows, i, len(row), width)
			}
		}
	}
	evaluate := func(indices []int) []float64 {
		resample := make([][]float64, len(indices))
		for i, idx := range indices {
			resample[i] = rows[idx]
		}
		return statistic(resample)
	}
	return e.run(len(rows), evaluate, reference, false)
}

// run is the shared pipeline: validate, resample, correct, estimate, decide.
func (e *Engine) run(sampleSize int, evaluate func([]int) []float64, reference []float64, scalar bool) (*bootstrap.Result, error) {
	if err := e.validate(sampleSize, reference); err != nil {
		return nil, err
	}

	statistics, err := e.resample(sampleSize, evaluate)
	if err != nil {
		return nil, err
	}

	components := len(statistics[0])
	if len(reference) != components {
		return nil, fmt.Errorf("%w: reference has %d components, statistic produced %d",
			core.ErrReferenceShape, len(reference), components)
	}

	alphaCorrected, err := correctedAlpha(e.alpha, components, e.correction)
	if err != nil {
		return nil, err
	}
	if alphaCorrected < 1/float64(e.resamples) {
		e.log.Warn("cannot estimate tail probabilities smaller than 1/(resamples = %d); corrected alpha is %g",
			e.resamples, alphaCorrected)
	}

	result := &bootstrap.Result{
		Alpha:          e.alpha,
		AlphaCorrected: alphaCorrected,
		Scalar:         scalar,
		Reference:      append([]float64(nil), reference...),
		Lower:          make([]float64, components),
		Upper:          make([]float64, components),
		ZScore:         make([]float64, components),
		Median:         make([]float64, components),
		IQR:            make([]float64, components),
		Tolerance:      make([]float64, components),
		Statistics:     statistics,
		SampleSize:     sampleSize,
		Resamples:      e.resamples,
	}

	column := make([]float64, e.resamples)
	for k := 0; k < components; k++ {
		for b, row := range statistics {
			column[b] = row[k]
		}
		estimate := estimateInterval(column, alphaCorrected)
		result.Lower[k] = estimate.Lower
		result.Upper[k] = estimate.Upper
		result.Median[k] = estimate.Median
		result.IQR[k] = estimate.IQR
		result.ZScore[k] = e.zScore(column, reference[k])
		result.Tolerance[k] = e.atol + e.rtol*abs(reference[k])
	}

	if result.Passed() {
		return result, nil
	}

	testErr := &bootstrap.TestError{Result: result}
	if e.failMode == FailModeWarn {
		e.log.Warn("bootstrap test failed: %v", testErr)
		return result, nil
	}
	return result, testErr
}

// validate rejects caller misuse before any resampling work happens.
func (e *Engine) validate(sampleSize int, reference []float64) error {
	if sampleSize == 0 {
		return core.ErrEmptySample
	}
	if len(reference) == 0 {
		return core.ErrEmptyReference
	}
	if e.resamples <= 0 {
		return fmt.Errorf("%w: got %d", core.ErrInvalidResamples, e.resamples)
	}
	if e.alpha <= 0 || e.alpha >= 1 {
		return fmt.Errorf("%w: got %g", core.ErrInvalidAlpha, e.alpha)
	}
	if e.failMode != FailModeError && e.failMode != FailModeWarn {
		return fmt.Errorf("%w: %q", core.ErrUnknownFailMode, e.failMode)
	}
	if _, err := correctedAlpha(e.alpha, 1, e.correction); err != nil {
		return err
	}
	return nil
}

// zScore normalizes the reference deviation by the population standard
// deviation of the bootstrap distribution. A degenerate distribution
// (zero spread) yields 0; the interval test still catches any deviation.
func (e *Engine) zScore(column []float64, reference float64) float64 {
	mean, _ := stats.Mean(column)
	stdDev, _ := stats.StandardDeviation(column)
	if stdDev == 0 {
		return 0
	}
	return (reference - mean) / stdDev
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
