package fft2

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// GonumBackend creates plans backed by gonum's dsp/fourier package.
// Any length works, but 5-smooth sizes (products of 2, 3 and 5) run
// fastest, so FastSize rounds up to those.
type GonumBackend struct{}

type gonumPlan struct {
	h, w int
	hw   int

	row *fourier.FFT
	col *fourier.CmplxFFT

	colIn  []complex128
	colOut []complex128
	mid    []complex128
}

// FastSize returns the smallest even 5-smooth integer >= n, at minimum 2.
// Evenness keeps the half-spectrum width at w/2+1 for every dimension.
func (GonumBackend) FastSize(n int) int {
	if n < 2 {
		return 2
	}
	s := nextSmooth5(n)
	for s%2 != 0 {
		s = nextSmooth5(s + 1)
	}
	return s
}

// NewPlan creates an h-by-w plan. The row length must be even so the
// half-spectrum width matches the w/2+1 layout.
func (GonumBackend) NewPlan(h, w int) (Plan, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrInvalidSize
	}
	if w%2 != 0 {
		return nil, fmt.Errorf("fft2: %dx%d: odd width: %w", h, w, ErrUnsupportedDim)
	}

	hw := w/2 + 1

	return &gonumPlan{
		h:      h,
		w:      w,
		hw:     hw,
		row:    fourier.NewFFT(w),
		col:    fourier.NewCmplxFFT(h),
		colIn:  make([]complex128, h),
		colOut: make([]complex128, h),
		mid:    make([]complex128, h*hw),
	}, nil
}

func (p *gonumPlan) Size() (int, int) { return p.h, p.w }
func (p *gonumPlan) SpectrumLen() int { return p.h * p.hw }

func (p *gonumPlan) Forward(dst []complex128, src []float64) error {
	if err := checkForwardArgs(p, dst, src); err != nil {
		return err
	}

	for y := 0; y < p.h; y++ {
		p.row.Coefficients(dst[y*p.hw:(y+1)*p.hw], src[y*p.w:(y+1)*p.w])
	}

	for x := 0; x < p.hw; x++ {
		for y := 0; y < p.h; y++ {
			p.colIn[y] = dst[y*p.hw+x]
		}
		p.col.Coefficients(p.colOut, p.colIn)
		for y := 0; y < p.h; y++ {
			dst[y*p.hw+x] = p.colOut[y]
		}
	}

	return nil
}

func (p *gonumPlan) Inverse(dst []float64, src []complex128) error {
	if err := checkInverseArgs(p, dst, src); err != nil {
		return err
	}

	for x := 0; x < p.hw; x++ {
		for y := 0; y < p.h; y++ {
			p.colIn[y] = src[y*p.hw+x]
		}
		p.col.Sequence(p.colOut, p.colIn)
		for y := 0; y < p.h; y++ {
			p.mid[y*p.hw+x] = p.colOut[y]
		}
	}

	for y := 0; y < p.h; y++ {
		p.row.Sequence(dst[y*p.w:(y+1)*p.w], p.mid[y*p.hw:(y+1)*p.hw])
	}

	// gonum transforms are unnormalized: a round trip multiplies by h*w.
	vecmath.ScaleBlockInPlace(dst, 1/float64(p.h*p.w))

	return nil
}
