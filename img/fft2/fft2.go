package fft2

import (
	"errors"

	"github.com/cwbudde/algo-image/img/core"
)

// Errors returned by plan construction and execution.
var (
	ErrInvalidSize    = errors.New("fft2: plan dimensions must be positive")
	ErrBufferLength   = errors.New("fft2: buffer length mismatch")
	ErrNilBackend     = errors.New("fft2: nil backend")
	ErrUnsupportedDim = errors.New("fft2: unsupported transform size")
)

// Plan computes forward and inverse 2D real FFTs at a fixed size.
//
// The real plane is h*w float64 samples in row-major order. The spectrum
// is h*(w/2+1) complex128 samples in row-major order: row r of the
// spectrum holds the non-redundant half of the transform of row r after
// the column pass. Inverse is normalized: Inverse(Forward(x)) == x.
type Plan interface {
	// Size returns the real-plane dimensions (h, w).
	Size() (h, w int)

	// SpectrumLen returns the number of complex bins, h*(w/2+1).
	SpectrumLen() int

	// Forward computes the half-spectrum of src into dst.
	// len(src) must be h*w and len(dst) must be SpectrumLen().
	Forward(dst []complex128, src []float64) error

	// Inverse reconstructs the real plane from a half-spectrum.
	// len(dst) must be h*w and len(src) must be SpectrumLen().
	// src is left unmodified.
	Inverse(dst []float64, src []complex128) error
}

// Backend creates plans and reports which sizes it runs fast at.
type Backend interface {
	// NewPlan creates a plan for an h-by-w real plane. Both h and w must
	// already be fast sizes for this backend.
	NewPlan(h, w int) (Plan, error)

	// FastSize returns the smallest supported transform length >= n.
	FastSize(n int) int
}

func checkForwardArgs(p Plan, dst []complex128, src []float64) error {
	h, w := p.Size()
	if len(src) != h*w || len(dst) != p.SpectrumLen() {
		return ErrBufferLength
	}
	return nil
}

func checkInverseArgs(p Plan, dst []float64, src []complex128) error {
	h, w := p.Size()
	if len(dst) != h*w || len(src) != p.SpectrumLen() {
		return ErrBufferLength
	}
	return nil
}

// PlaceInto zero-fills a ph-by-pw padded plane and copies src into its
// top-left corner. dst must have length ph*pw.
func PlaceInto(dst []float64, ph, pw int, src *core.Image) {
	core.Zero(dst)
	for y := 0; y < src.H; y++ {
		copy(dst[y*pw:y*pw+src.W], src.Pix[y*src.W:(y+1)*src.W])
	}
}
