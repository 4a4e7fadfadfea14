package bootstrap

import (
	"errors"
	"fmt"
)

// ScalarStatistic maps a sample to a single number, e.g. the sample mean.
type ScalarStatistic func(sample []float64) float64

// VectorStatistic maps a sample to a fixed-length vector of numbers. Every
// invocation must return the same length; the engine aborts otherwise.
type VectorStatistic func(sample []float64) []float64

// RowStatistic maps a sample of fixed-length observation rows to a
// fixed-length vector of numbers, one resample row set per call.
type RowStatistic func(rows [][]float64) []float64

// Result captures everything one bootstrap test evaluation produced. It is
// fully populated on both passing and failing runs; a failing run carries it
// inside a TestError. Per-component fields have length 1 for scalar
// statistics and length K for K-vector statistics; Scalar tells the two
// apart.
type Result struct {
	Alpha          float64     `json:"alpha"`
	AlphaCorrected float64     `json:"alpha_corrected"`
	Scalar         bool        `json:"scalar"`
	Reference      []float64   `json:"reference"`
	Lower          []float64   `json:"lower"`
	Upper          []float64   `json:"upper"`
	ZScore         []float64   `json:"z_score"`
	Median         []float64   `json:"median"`
	IQR            []float64   `json:"iqr"`
	Tolerance      []float64   `json:"tolerance"`
	Statistics     [][]float64 `json:"statistics"`
	SampleSize     int         `json:"sample_size"`
	Resamples      int         `json:"resamples"`
}

// Components returns the number of statistic components K (1 for scalars).
func (r *Result) Components() int {
	return len(r.Reference)
}

// Component is the per-component view of a Result.
type Component struct {
	Reference float64 `json:"reference"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Median    float64 `json:"median"`
	IQR       float64 `json:"iqr"`
	ZScore    float64 `json:"z_score"`
	Tolerance float64 `json:"tolerance"`
}

// Component returns one component of the result.
func (r *Result) Component(i int) Component {
	return Component{
		Reference: r.Reference[i],
		Lower:     r.Lower[i],
		Upper:     r.Upper[i],
		Median:    r.Median[i],
		IQR:       r.IQR[i],
		ZScore:    r.ZScore[i],
		Tolerance: r.Tolerance[i],
	}
}

// Within reports whether the component reference lies inside the tolerance
// widened interval. Boundary equality counts as inside.
func (c Component) Within() bool {
	return c.Reference >= c.Lower-c.Tolerance && c.Reference <= c.Upper+c.Tolerance
}

// Passed reports whether every component reference lies inside its interval.
func (r *Result) Passed() bool {
	for i := range r.Reference {
		if !r.Component(i).Within() {
			return false
		}
	}
	return true
}

// Column extracts one component column of the raw bootstrap distribution.
func (r *Result) Column(i int) []float64 {
	column := make([]float64, len(r.Statistics))
	for b, row := range r.Statistics {
		column[b] = row[i]
	}
	return column
}

// TestError signals that the reference fell outside the corrected confidence
// interval for at least one component. It is the designed "test failed"
// outcome, not a bug, and carries the full Result for diagnosis.
type TestError struct {
	Result *Result
}

func (e *TestError) Error() string {
	r := e.Result
	if r.Scalar {
		return fmt.Sprintf("the reference value %g lies outside the 1 - (alpha = %g) interval [%g, %g]",
			r.Reference[0], r.Alpha, r.Lower[0], r.Upper[0])
	}
	return fmt.Sprintf("the reference value %v lies outside the 1 - (alpha = %g) interval [%v, %v]",
		r.Reference, r.Alpha, r.Lower, r.Upper)
}

// AsTestError unwraps err into a TestError if it is one.
func AsTestError(err error) (*TestError, bool) {
	var testErr *TestError
	if errors.As(err, &testErr) {
		return testErr, true
	}
	return nil, false
}

// IsTestError reports whether err signals a failed bootstrap test.
func IsTestError(err error) bool {
	_, ok := AsTestError(err)
	return ok
}
