package xcorr

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/fft2"
)

// Errors returned for invalid inputs.
var (
	ErrNilImage        = errors.New("xcorr: nil image")
	ErrEmptyImage      = errors.New("xcorr: empty image")
	ErrMaskSize        = errors.New("xcorr: mask size does not match its image")
	ErrNegativeOverlap = errors.New("xcorr: required overlap must be non-negative")
	ErrFractionRange   = errors.New("xcorr: required overlap fraction must be in [0, 1]")
)

// Result holds the correlation surface and its scalar metadata.
type Result struct {
	// Image is the correlation surface, size (Hf+Hm-1) x (Wf+Wm-1),
	// values in [-1, +1]. Spacing and direction are inherited from the
	// fixed image; the origin is shifted so that index (Hm-1, Wm-1),
	// zero translation, maps to the fixed image's origin.
	Image *core.Image

	// MaxOverlap is the largest number of jointly-valid pixels over all
	// translations.
	MaxOverlap int

	// overLimit counts pixels whose pre-clamp coefficient magnitude
	// exceeded 1 + overflowTol, a debug diagnostic for the clamp rules.
	overLimit int
}

// Correlate computes the masked normalized cross-correlation surface of
// moving over fixed. Inputs are read-only for the duration of the call;
// all scratch is owned by the invocation, so concurrent calls on
// disjoint inputs are safe.
func Correlate(fixed, moving *core.Image, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validate(fixed, moving, &cfg); err != nil {
		return nil, err
	}

	outH := fft2.FullSize(fixed.H, moving.H)
	outW := fft2.FullSize(fixed.W, moving.W)
	ph := cfg.backend.FastSize(outH)
	pw := cfg.backend.FastSize(outW)

	plan, err := cfg.backend.NewPlan(ph, pw)
	if err != nil {
		return nil, fmt.Errorf("xcorr: planning %dx%d transform: %w", ph, pw, err)
	}

	planeLen := ph * pw
	specLen := plan.SpectrumLen()

	// Real input planes: the binarized masks, the masked images, and
	// their pointwise squares, all zero-padded to the transform size.
	maskF := make([]float64, planeLen)
	maskM := make([]float64, planeLen)
	maskPlane(maskF, ph, pw, cfg.fixedMask, fixed.H, fixed.W)
	maskPlane(maskM, ph, pw, cfg.movingMask, moving.H, moving.W)

	f := make([]float64, planeLen)
	m := make([]float64, planeLen)
	fft2.PlaceInto(f, ph, pw, fixed)
	fft2.PlaceInto(m, ph, pw, moving)
	vecmath.MulBlockInPlace(f, maskF)
	vecmath.MulBlockInPlace(m, maskM)

	f2 := make([]float64, planeLen)
	m2 := make([]float64, planeLen)
	vecmath.MulBlock(f2, f, f)
	vecmath.MulBlock(m2, m, m)

	// Six forward transforms: three fixed-side, three moving-side.
	fixedSide := make([][]complex128, 3)
	movingSide := make([][]complex128, 3)
	for i, src := range [][]float64{maskF, f, f2} {
		fixedSide[i] = make([]complex128, specLen)
		if err := plan.Forward(fixedSide[i], src); err != nil {
			return nil, fmt.Errorf("xcorr: forward FFT: %w", err)
		}
	}
	for i, src := range [][]float64{maskM, m, m2} {
		movingSide[i] = make([]complex128, specLen)
		if err := plan.Forward(movingSide[i], src); err != nil {
			return nil, fmt.Errorf("xcorr: forward FFT: %w", err)
		}
	}
	specMaskF, specF, specF2 := fixedSide[0], fixedSide[1], fixedSide[2]
	specMaskM, specM, specM2 := movingSide[0], movingSide[1], movingSide[2]

	// Each sliding-window sum is the inverse transform of a fixed-side
	// spectrum times the conjugated moving-side spectrum; conjugation
	// is the 180-degree rotation that turns convolution into
	// correlation. The forward inputs are dead now, so two of the
	// planes are reused as scratch.
	prod := make([]complex128, specLen)
	inv := f2
	outLen := outH * outW

	combos := []struct {
		fixed, moving []complex128
	}{
		{specMaskF, specMaskM}, // overlap count N
		{specF, specMaskM},     // sum of fixed over overlap
		{specMaskF, specM},     // sum of moving over overlap
		{specF2, specMaskM},    // sum of fixed squared
		{specMaskF, specM2},    // sum of moving squared
		{specF, specM},         // sum of fixed * moving
	}

	sums := make([][]float64, len(combos))
	for i, c := range combos {
		for k := range prod {
			b := c.moving[k]
			prod[k] = c.fixed[k] * complex(real(b), -imag(b))
		}
		if err := plan.Inverse(inv, prod); err != nil {
			return nil, fmt.Errorf("xcorr: inverse FFT: %w", err)
		}
		sums[i] = make([]float64, outLen)
		cropCircular(sums[i], inv, outH, outW, ph, pw, moving.H-1, moving.W-1)
	}
	overlap, sf, sm, sff, smm, sfm := sums[0], sums[1], sums[2], sums[3], sums[4], sums[5]

	stats := accountOverlap(overlap, cfg.requiredOverlap, cfg.requiredFraction)
	minOverlap := stats.threshold
	if minOverlap < 1 {
		// Division by the overlap count is unsafe below one pixel even
		// when no threshold was requested.
		minOverlap = 1
	}

	out, err := core.NewImage(outH, outW)
	if err != nil {
		return nil, err
	}

	g := newGuard(sff, smm)
	for i := range out.Pix {
		if core.RoundHalfToEven(overlap[i]) < minOverlap {
			continue
		}
		out.Pix[i] = g.coefficient(sf[i], sm[i], sff[i], smm[i], sfm[i], overlap[i])
	}

	applyOutputGeometry(out, fixed, moving)

	return &Result{Image: out, MaxOverlap: stats.max, overLimit: g.overLimit}, nil
}

func validate(fixed, moving *core.Image, cfg *config) error {
	for _, im := range []*core.Image{fixed, moving} {
		if im == nil {
			return ErrNilImage
		}
		if im.H <= 0 || im.W <= 0 || len(im.Pix) != im.H*im.W {
			return ErrEmptyImage
		}
	}
	if cfg.fixedMask != nil && !cfg.fixedMask.SameSize(fixed) {
		return fmt.Errorf("%w: fixed mask %dx%d, image %dx%d",
			ErrMaskSize, cfg.fixedMask.H, cfg.fixedMask.W, fixed.H, fixed.W)
	}
	if cfg.movingMask != nil && !cfg.movingMask.SameSize(moving) {
		return fmt.Errorf("%w: moving mask %dx%d, image %dx%d",
			ErrMaskSize, cfg.movingMask.H, cfg.movingMask.W, moving.H, moving.W)
	}
	if cfg.requiredOverlap < 0 {
		return ErrNegativeOverlap
	}
	if math.IsNaN(cfg.requiredFraction) || cfg.requiredFraction < 0 || cfg.requiredFraction > 1 {
		return ErrFractionRange
	}
	return nil
}

// cropCircular extracts the linear correlation grid from the circular
// transform plane. Output index j corresponds to translation
// u = j - shift; negative translations wrap to the top end of the
// padded plane.
func cropCircular(dst, src []float64, outH, outW, ph, pw, shiftY, shiftX int) {
	for j0 := 0; j0 < outH; j0++ {
		s0 := j0 - shiftY
		if s0 < 0 {
			s0 += ph
		}
		srcRow := src[s0*pw:]
		dstRow := dst[j0*outW:]
		for j1 := 0; j1 < outW; j1++ {
			s1 := j1 - shiftX
			if s1 < 0 {
				s1 += pw
			}
			dstRow[j1] = srcRow[s1]
		}
	}
}

// applyOutputGeometry inherits spacing and direction from the fixed
// image and shifts the origin so zero translation lands on the fixed
// origin.
func applyOutputGeometry(out, fixed, moving *core.Image) {
	out.CopyGeometry(fixed)

	dy := fixed.Spacing[0] * float64(moving.H-1)
	dx := fixed.Spacing[1] * float64(moving.W-1)
	out.Origin[0] = fixed.Origin[0] - (fixed.Direction[0][0]*dy + fixed.Direction[0][1]*dx)
	out.Origin[1] = fixed.Origin[1] - (fixed.Direction[1][0]*dy + fixed.Direction[1][1]*dx)
}
