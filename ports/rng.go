package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(name string, seed int64) *rand.Rand

	// Stream creates a deterministic RNG stream for a specific suite/case pair.
	// This ensures concurrent cases produce identical results for the same seed
	// regardless of scheduling order.
	Stream(suite, caseName string, baseSeed int64) *rand.Rand
}
