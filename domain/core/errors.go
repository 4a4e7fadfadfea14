package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors: caller misuse, raised before any resampling happens.
	ErrEmptySample       = errors.New("sample must not be empty")
	ErrNilStatistic      = errors.New("statistic must not be nil")
	ErrInvalidAlpha      = errors.New("alpha must lie in the open interval (0, 1)")
	ErrInvalidResamples  = errors.New("resample count must be positive")
	ErrEmptyReference    = errors.New("reference must not be empty")
	ErrReferenceShape    = errors.New("reference length does not match statistic output")
	ErrRaggedRows        = errors.New("row sample must have rows of equal length")
	ErrUnknownCorrection = errors.New("unsupported multiple hypothesis correction")
	ErrUnknownFailMode   = errors.New("unsupported fail mode")

	// Statistic shape errors: the statistic changed output length between resamples.
	ErrStatisticShape = errors.New("statistic returned inconsistent shape")

	// Ledger errors
	ErrRunNotFound = errors.New("run not found")
)

// NewShapeError reports a statistic output whose length changed mid-resampling.
func NewShapeError(resample, want, got int) error {
	return fmt.Errorf("%w: resample %d produced %d components, expected %d",
		ErrStatisticShape, resample, got, want)
}

// IsInputError reports whether err is caller misuse rather than a test outcome.
func IsInputError(err error) bool {
	for _, sentinel := range []error{
		ErrEmptySample, ErrNilStatistic, ErrInvalidAlpha, ErrInvalidResamples,
		ErrEmptyReference, ErrReferenceShape, ErrRaggedRows,
		ErrUnknownCorrection, ErrUnknownFailMode,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsShapeError reports whether err is a statistic shape mismatch.
func IsShapeError(err error) bool {
	return errors.Is(err, ErrStatisticShape)
}
