package fft2

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// AlgoBackend creates plans backed by algo-fft. Transform lengths must be
// powers of two; FastSize rounds up accordingly.
type AlgoBackend struct{}

// Default is the backend used when the caller does not choose one.
var Default Backend = AlgoBackend{}

// rowPlan is the slice of the algo-fft real-plan API the column/row
// passes need.
type rowPlan interface {
	Forward(dst []complex128, src []float64) error
	Inverse(dst []float64, src []complex128) error
}

type algoPlan struct {
	h, w int
	hw   int // spectrum row width, w/2+1

	row rowPlan
	col *algofft.Plan[complex128]

	colIn  []complex128
	colOut []complex128
	mid    []complex128
}

// FastSize returns the next power of two >= n, at minimum 2.
func (AlgoBackend) FastSize(n int) int {
	p := nextPowerOf2(n)
	if p < 2 {
		return 2
	}
	return p
}

// NewPlan creates an h-by-w plan. Both dimensions must be powers of two
// and at least 2.
func (AlgoBackend) NewPlan(h, w int) (Plan, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrInvalidSize
	}
	if h < 2 || w < 2 || !isPowerOf2(h) || !isPowerOf2(w) {
		return nil, fmt.Errorf("fft2: %dx%d: %w", h, w, ErrUnsupportedDim)
	}

	row, err := algofft.NewPlanReal64WithOptions(w, algofft.PlanOptions{})
	if err != nil {
		return nil, fmt.Errorf("fft2: row plan size %d: %w", w, err)
	}

	col, err := algofft.NewPlan64(h)
	if err != nil {
		return nil, fmt.Errorf("fft2: column plan size %d: %w", h, err)
	}

	hw := w/2 + 1

	return &algoPlan{
		h:      h,
		w:      w,
		hw:     hw,
		row:    row,
		col:    col,
		colIn:  make([]complex128, h),
		colOut: make([]complex128, h),
		mid:    make([]complex128, h*hw),
	}, nil
}

func (p *algoPlan) Size() (int, int) { return p.h, p.w }
func (p *algoPlan) SpectrumLen() int { return p.h * p.hw }

// Forward runs the real row pass followed by a complex FFT down each of
// the w/2+1 spectrum columns.
func (p *algoPlan) Forward(dst []complex128, src []float64) error {
	if err := checkForwardArgs(p, dst, src); err != nil {
		return err
	}

	for y := 0; y < p.h; y++ {
		if err := p.row.Forward(dst[y*p.hw:(y+1)*p.hw], src[y*p.w:(y+1)*p.w]); err != nil {
			return fmt.Errorf("fft2: forward row %d: %w", y, err)
		}
	}

	for x := 0; x < p.hw; x++ {
		for y := 0; y < p.h; y++ {
			p.colIn[y] = dst[y*p.hw+x]
		}
		if err := p.col.Forward(p.colOut, p.colIn); err != nil {
			return fmt.Errorf("fft2: forward column %d: %w", x, err)
		}
		for y := 0; y < p.h; y++ {
			dst[y*p.hw+x] = p.colOut[y]
		}
	}

	return nil
}

// Inverse reverses the passes: complex inverse down each column, then a
// half-spectrum inverse along each row. src is copied to scratch first
// and left untouched.
func (p *algoPlan) Inverse(dst []float64, src []complex128) error {
	if err := checkInverseArgs(p, dst, src); err != nil {
		return err
	}

	for x := 0; x < p.hw; x++ {
		for y := 0; y < p.h; y++ {
			p.colIn[y] = src[y*p.hw+x]
		}
		if err := p.col.Inverse(p.colOut, p.colIn); err != nil {
			return fmt.Errorf("fft2: inverse column %d: %w", x, err)
		}
		for y := 0; y < p.h; y++ {
			p.mid[y*p.hw+x] = p.colOut[y]
		}
	}

	for y := 0; y < p.h; y++ {
		rowSpec := p.mid[y*p.hw : (y+1)*p.hw]
		// DC and Nyquist bins of a real signal's spectrum are real;
		// drop the column-pass round-off before the half-spectrum
		// inverse, which requires them to be exactly real.
		rowSpec[0] = complex(real(rowSpec[0]), 0)
		rowSpec[p.hw-1] = complex(real(rowSpec[p.hw-1]), 0)

		if err := p.row.Inverse(dst[y*p.w:(y+1)*p.w], rowSpec); err != nil {
			return fmt.Errorf("fft2: inverse row %d: %w", y, err)
		}
	}

	return nil
}
