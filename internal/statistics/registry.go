// Package statistics provides the named built-in statistics available to
// callers that reference a statistic by string (the HTTP API and the CLI).
// Go callers pass closures to the engine directly and never need this
// registry.
package statistics

import (
	"fmt"
	"sort"

	"bootstat/domain/bootstrap"

	"github.com/montanaflynn/stats"
)

// Mean is the sample mean.
func Mean(sample []float64) float64 {
	mean, _ := stats.Mean(sample)
	return mean
}

// Median is the sample median.
func Median(sample []float64) float64 {
	median, _ := stats.Median(sample)
	return median
}

// Variance is the population variance.
func Variance(sample []float64) float64 {
	variance, _ := stats.PopulationVariance(sample)
	return variance
}

// StdDev is the population standard deviation.
func StdDev(sample []float64) float64 {
	stdDev, _ := stats.StandardDeviation(sample)
	return stdDev
}

// Sum is the sample total.
func Sum(sample []float64) float64 {
	sum, _ := stats.Sum(sample)
	return sum
}

// Min is the sample minimum.
func Min(sample []float64) float64 {
	min, _ := stats.Min(sample)
	return min
}

// Max is the sample maximum.
func Max(sample []float64) float64 {
	max, _ := stats.Max(sample)
	return max
}

// ComponentMeans averages each column of a row sample, yielding one mean per
// observation component.
func ComponentMeans(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	means := make([]float64, len(rows[0]))
	for _, row := range rows {
		for k, v := range row {
			means[k] += v
		}
	}
	for k := range means {
		means[k] /= float64(len(rows))
	}
	return means
}

var scalarRegistry = map[string]bootstrap.ScalarStatistic{
	"mean":     Mean,
	"median":   Median,
	"variance": Variance,
	"stddev":   StdDev,
	"sum":      Sum,
	"min":      Min,
	"max":      Max,
}

var rowRegistry = map[string]bootstrap.RowStatistic{
	"componentmeans": ComponentMeans,
}

// Lookup resolves a scalar statistic by name.
func Lookup(name string) (bootstrap.ScalarStatistic, error) {
	statistic, ok := scalarRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown statistic %q (available: %v)", name, Names())
	}
	return statistic, nil
}

// LookupRow resolves a row statistic by name.
func LookupRow(name string) (bootstrap.RowStatistic, error) {
	statistic, ok := rowRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown row statistic %q (available: %v)", name, RowNames())
	}
	return statistic, nil
}

// Names lists the scalar statistic names in stable order.
func Names() []string {
	names := make([]string, 0, len(scalarRegistry))
	for name := range scalarRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RowNames lists the row statistic names in stable order.
func RowNames() []string {
	names := make([]string, 0, len(rowRegistry))
	for name := range rowRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
