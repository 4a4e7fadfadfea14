// Package testkit provides seeded sample generators for exercising the
// bootstrap engine against distributions with known statistics.
package testkit

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws n values from a normal distribution with the given mean and
// standard deviation, deterministically for a fixed seed.
func Normal(seed uint64, mu, sigma float64, n int) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewSource(seed)}
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = dist.Rand()
	}
	return sample
}

// LogNormal draws n values whose logarithm is normal with the given
// parameters. The true mean is exp(mu + sigma^2/2).
func LogNormal(seed uint64, mu, sigma float64, n int) []float64 {
	dist := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: rand.NewSource(seed)}
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = dist.Rand()
	}
	return sample
}

// Constant returns n copies of value. Its bootstrap distribution degenerates
// to a point for any statistic that respects constants.
func Constant(value float64, n int) []float64 {
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = value
	}
	return sample
}

// NormalRows draws n observation rows whose k-th component is normal with
// mean mus[k] and standard deviation sigma.
func NormalRows(seed uint64, mus []float64, sigma float64, n int) [][]float64 {
	src := rand.NewSource(seed)
	dists := make([]distuv.Normal, len(mus))
	for k, mu := range mus {
		dists[k] = distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	}
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, len(mus))
		for k := range mus {
			row[k] = dists[k].Rand()
		}
		rows[i] = row
	}
	return rows
}
