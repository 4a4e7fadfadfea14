package engine

import (
	"sort"
)

// intervalEstimate is the per-component percentile summary of one bootstrap
// distribution column.
type intervalEstimate struct {
	Lower  float64
	Upper  float64
	Median float64
	IQR    float64
}

// estimateInterval computes the equal-tailed 1-alpha percentile interval of
// one distribution column plus the diagnostic median and interquartile
// range. A column with fewer than two distinct values collapses the interval
// to a point; that is valid and forces the decision stage to require exact
// agreement with the reference.
func estimateInterval(column []float64, alpha float64) intervalEstimate {
	sorted := append([]float64(nil), column...)
	sort.Float64s(sorted)

	return intervalEstimate{
		Lower:  quantile(sorted, alpha/2),
		Upper:  quantile(sorted, 1-alpha/2),
		Median: quantile(sorted, 0.5),
		IQR:    quantile(sorted, 0.75) - quantile(sorted, 0.25),
	}
}

// quantile evaluates the q-th empirical quantile of sorted data with linear
// interpolation between order statistics. Rank-based percentile helpers
// degrade at the extreme tails a corrected alpha reaches (q below the first
// rank), so interpolation over the full [0, 1] range is done directly here.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	position := q * float64(n-1)
	i := int(position)
	fraction := position - float64(i)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + fraction*(sorted[i+1]-sorted[i])
}
