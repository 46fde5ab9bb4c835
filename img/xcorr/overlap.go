package xcorr

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/core"
)

// overlapStats summarizes the overlap map for thresholding.
type overlapStats struct {
	// max is the largest overlap count observed, rounded half-to-even.
	max int

	// threshold is the effective minimum overlap: the larger of the
	// absolute requirement and ceil(fraction * max).
	threshold int
}

// accountOverlap derives the maximum overlap and the effective
// threshold from the raw (real-valued) overlap map.
//
// The map is non-negative up to FFT round-off, so the maximum of the
// absolute values rounds to the true integer maximum. Individual pixels
// are rounded half-to-even at threshold time; the raw values are kept
// for the later divisions.
func accountOverlap(overlap []float64, requiredN int, requiredFraction float64) overlapStats {
	maxN := core.RoundHalfToEven(vecmath.MaxAbs(overlap))

	threshold := requiredN
	if requiredFraction > 0 {
		fractional := int(math.Ceil(requiredFraction * float64(maxN)))
		if fractional > threshold {
			threshold = fractional
		}
	}

	return overlapStats{max: maxN, threshold: threshold}
}
