package xcorr

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/core"
)

// machineEps is the float64 machine epsilon, 2^-52.
const machineEps = 0x1p-52

// denominatorRelTol scales the round-off floor below which a residual
// energy counts as computationally zero.
const denominatorRelTol = 1e3 * machineEps

// overflowTol bounds the pre-clamp coefficient magnitude before the
// excursion is counted as a diagnostic. Perfectly correlated two-pixel
// overlaps can exceed it by plain FFT round-off, so the count signals
// numerical pressure rather than certain bugs.
const overflowTol = 10 * machineEps

// guard applies the numerical edge policies of the correlation core.
//
// The residual energies denF and denM are differences of FFT-derived
// sums, so their absolute round-off scales with the largest energy sum
// in the respective image, not with the difference itself. tolF and
// tolM hold that floor; an energy below its floor means the true
// denominator is zero (constant patch, single-pixel overlap) and the
// coefficient is forced to 0 instead of dividing noise by noise.
type guard struct {
	tolF, tolM float64

	// overLimit counts pixels whose pre-clamp |coefficient| exceeded
	// 1 + overflowTol.
	overLimit int
}

// newGuard derives the energy floors from the sliding sums of squares.
func newGuard(sff, smm []float64) guard {
	return guard{
		tolF: denominatorRelTol * vecmath.MaxAbs(sff),
		tolM: denominatorRelTol * vecmath.MaxAbs(smm),
	}
}

// coefficient combines the sliding-window sums at one pixel into the
// final correlation value. rawN must be >= 1 (callers zero the pixel
// before division otherwise).
func (g *guard) coefficient(sf, sm, sff, smm, sfm, rawN float64) float64 {
	num := sfm - sf*sm/rawN

	denF := sff - sf*sf/rawN
	if denF < 0 {
		// A negative residual energy is impossible; this is round-off.
		denF = 0
	}
	denM := smm - sm*sm/rawN
	if denM < 0 {
		denM = 0
	}

	if denF <= g.tolF || denM <= g.tolM {
		return 0
	}

	c := num / math.Sqrt(denF*denM)
	if math.Abs(c) > 1+overflowTol {
		g.overLimit++
	}

	return core.Clamp(c, -1, 1)
}
