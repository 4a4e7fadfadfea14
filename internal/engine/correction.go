package engine

import (
	"fmt"

	"bootstat/domain/core"
)

// Correction selects the multiple hypothesis correction applied when the
// statistic is vector-valued.
type Correction string

const (
	// CorrectionBonferroni divides alpha by the number of components so the
	// family-wise error rate stays bounded near the nominal level.
	CorrectionBonferroni Correction = "bonferroni"
	// CorrectionNone tests every component at the nominal level. With K
	// components the overall false-positive rate inflates toward
	// 1 - (1-alpha)^K.
	CorrectionNone Correction = "none"
)

// correctedAlpha applies the correction before interval construction. Scalar
// statistics are left at the nominal level regardless of method.
func correctedAlpha(alpha float64, components int, method Correction) (float64, error) {
	switch method {
	case CorrectionNone:
		return alpha, nil
	case CorrectionBonferroni:
		if components <= 1 {
			return alpha, nil
		}
		return alpha / float64(components), nil
	default:
		return 0, fmt.Errorf("%w: %q", core.ErrUnknownCorrection, method)
	}
}
