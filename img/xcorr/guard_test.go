package xcorr

import (
	"math"
	"testing"
)

func TestGuardCoefficient(t *testing.T) {
	// Floors corresponding to energy sums of order 100.
	g := guard{tolF: 100 * denominatorRelTol, tolM: 100 * denominatorRelTol}

	// Two pixels, fixed {1, 3}, moving {1, 3}: perfectly correlated.
	got := g.coefficient(4, 4, 10, 10, 10, 2)
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("perfect correlation: got %v, expected 1", got)
	}

	// Anti-correlated: moving {3, 1} against fixed {1, 3}.
	got = g.coefficient(4, 4, 10, 10, 6, 2)
	if math.Abs(got+1) > 1e-12 {
		t.Errorf("perfect anti-correlation: got %v, expected -1", got)
	}

	if g.overLimit != 0 {
		t.Errorf("overLimit = %d after exact inputs", g.overLimit)
	}
}

func TestGuardZeroVariance(t *testing.T) {
	g := guard{tolF: 100 * denominatorRelTol, tolM: 100 * denominatorRelTol}

	// Constant fixed patch {2, 2}: denF is exactly 0.
	if got := g.coefficient(4, 4, 8, 10, 8, 2); got != 0 {
		t.Errorf("zero fixed variance: got %v, expected 0", got)
	}

	// Round-off can push the energies slightly negative.
	if got := g.coefficient(4, 4, 8-1e-13, 10, 8, 2); got != 0 {
		t.Errorf("negative round-off energy: got %v, expected 0", got)
	}
}

func TestGuardFloorSuppression(t *testing.T) {
	// A residual energy below the floor is round-off, not signal.
	g := guard{tolF: 1e-18, tolM: 1e-8}

	if got := g.coefficient(0, 0, 1, 1e-9, 0.5, 4); got != 0 {
		t.Errorf("below-floor moving energy: got %v, expected 0", got)
	}
}

func TestGuardClampAndOverflowCount(t *testing.T) {
	g := guard{tolF: 1e-12, tolM: 1e-12}

	// Inconsistent sums that make |c| > 1: must clamp and count.
	got := g.coefficient(0, 0, 1, 1, 2, 4)
	if got != 1 {
		t.Errorf("clamp: got %v, expected 1", got)
	}
	if g.overLimit != 1 {
		t.Errorf("overLimit = %d, expected 1", g.overLimit)
	}
}

func TestNewGuardFloors(t *testing.T) {
	g := newGuard([]float64{1, -4, 2}, []float64{0.5})

	if math.Abs(g.tolF-4*denominatorRelTol) > 1e-30 {
		t.Errorf("tolF = %v, expected %v", g.tolF, 4*denominatorRelTol)
	}
	if math.Abs(g.tolM-0.5*denominatorRelTol) > 1e-30 {
		t.Errorf("tolM = %v, expected %v", g.tolM, 0.5*denominatorRelTol)
	}
}
