// Package rng derives deterministic random streams from names and seeds so
// that concurrent test cases stay reproducible independent of scheduling.
package rng

import (
	"hash/fnv"
	"math/rand"

	"bootstat/ports"
)

// HashedStreams derives independent rand.Rand streams by folding stream
// names into the base seed with FNV-1a.
type HashedStreams struct{}

// NewHashedStreams creates the default RNG adapter.
func NewHashedStreams() *HashedStreams {
	return &HashedStreams{}
}

// SeededStream returns a generator seeded from the name and seed.
func (h *HashedStreams) SeededStream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(seed, name)))
}

// Stream returns a generator unique to a suite/case pair.
func (h *HashedStreams) Stream(suite, caseName string, baseSeed int64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(baseSeed, suite+"/"+caseName)))
}

func deriveSeed(seed int64, name string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(name))
	return seed ^ int64(hasher.Sum64())
}

var _ ports.RNGPort = (*HashedStreams)(nil)
