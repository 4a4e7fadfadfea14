package engine

import (
	"fmt"
	"math/rand"

	"bootstat/domain/core"
)

// resample draws the configured number of bootstrap resamples (indices drawn
// uniformly with replacement, resample size equal to the original sample
// size) and evaluates the statistic on each, producing the B x K matrix of
// statistic values. The first evaluation fixes K; any later evaluation with
// a different length aborts with a shape error.
func (e *Engine) resample(sampleSize int, evaluate func([]int) []float64) ([][]float64, error) {
	intn := rand.Intn
	if e.rng != nil {
		intn = e.rng.Intn
	}

	statistics := make([][]float64, 0, e.resamples)
	indices := make([]int, sampleSize)
	width := -1

	for b := 0; b < e.resamples; b++ {
		for i := range indices {
			indices[i] = intn(sampleSize)
		}
		values := evaluate(indices)
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: resample %d produced no components", core.ErrStatisticShape, b)
		}
		if width == -1 {
			width = len(values)
		} else if len(values) != width {
			return nil, core.NewShapeError(b, width, len(values))
		}
		// The statistic may reuse its output buffer between calls.
		statistics = append(statistics, append([]float64(nil), values...))
	}
	return statistics, nil
}
