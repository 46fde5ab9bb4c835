package fft2

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-image/img/core"
)

func backends() map[string]Backend {
	return map[string]Backend{
		"algo":  AlgoBackend{},
		"gonum": GonumBackend{},
	}
}

func TestRoundTrip(t *testing.T) {
	sizes := []struct{ h, w int }{
		{2, 4},
		{4, 8},
		{6, 10}, // non-power-of-two, exercises the gonum mixed-radix path
		{8, 8},
		{16, 4},
	}

	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			for _, size := range sizes {
				h := backend.FastSize(size.h)
				w := backend.FastSize(size.w)

				plan, err := backend.NewPlan(h, w)
				if err != nil {
					t.Fatalf("NewPlan(%d, %d): %v", h, w, err)
				}

				rng := rand.New(rand.NewSource(42))
				src := make([]float64, h*w)
				for i := range src {
					src[i] = rng.Float64()*200 - 100
				}

				spec := make([]complex128, plan.SpectrumLen())
				if err := plan.Forward(spec, src); err != nil {
					t.Fatalf("Forward: %v", err)
				}

				got := make([]float64, h*w)
				if err := plan.Inverse(got, spec); err != nil {
					t.Fatalf("Inverse: %v", err)
				}

				for i := range src {
					if math.Abs(got[i]-src[i]) > 1e-9 {
						t.Fatalf("%dx%d round trip: sample %d = %v, expected %v",
							h, w, i, got[i], src[i])
					}
				}
			}
		})
	}
}

func TestForwardDC(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			const h, w = 4, 8

			plan, err := backend.NewPlan(h, w)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			src := make([]float64, h*w)
			for i := range src {
				src[i] = 1
			}

			spec := make([]complex128, plan.SpectrumLen())
			if err := plan.Forward(spec, src); err != nil {
				t.Fatalf("Forward: %v", err)
			}

			// A constant plane concentrates everything in the DC bin.
			if math.Abs(real(spec[0])-float64(h*w)) > 1e-9 || math.Abs(imag(spec[0])) > 1e-9 {
				t.Errorf("DC bin = %v, expected %v", spec[0], complex(float64(h*w), 0))
			}
			for i := 1; i < len(spec); i++ {
				if math.Abs(real(spec[i])) > 1e-9 || math.Abs(imag(spec[i])) > 1e-9 {
					t.Fatalf("bin %d = %v, expected 0", i, spec[i])
				}
			}
		})
	}
}

func TestInversePreservesSpectrum(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			const h, w = 4, 4

			plan, err := backend.NewPlan(h, w)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			rng := rand.New(rand.NewSource(7))
			src := make([]float64, h*w)
			for i := range src {
				src[i] = rng.Float64()
			}

			spec := make([]complex128, plan.SpectrumLen())
			if err := plan.Forward(spec, src); err != nil {
				t.Fatalf("Forward: %v", err)
			}

			keep := make([]complex128, len(spec))
			copy(keep, spec)

			dst := make([]float64, h*w)
			if err := plan.Inverse(dst, spec); err != nil {
				t.Fatalf("Inverse: %v", err)
			}

			for i := range spec {
				if spec[i] != keep[i] {
					t.Fatalf("Inverse modified src spectrum at bin %d", i)
				}
			}
		})
	}
}

func TestBufferLengthErrors(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			plan, err := backend.NewPlan(4, 4)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}

			spec := make([]complex128, plan.SpectrumLen())
			if err := plan.Forward(spec, make([]float64, 3)); !errors.Is(err, ErrBufferLength) {
				t.Errorf("short real input: expected ErrBufferLength, got %v", err)
			}
			if err := plan.Inverse(make([]float64, 16), spec[:2]); !errors.Is(err, ErrBufferLength) {
				t.Errorf("short spectrum: expected ErrBufferLength, got %v", err)
			}
		})
	}
}

func TestNewPlanInvalid(t *testing.T) {
	if _, err := (AlgoBackend{}).NewPlan(0, 8); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero size: expected ErrInvalidSize, got %v", err)
	}
	if _, err := (AlgoBackend{}).NewPlan(3, 8); !errors.Is(err, ErrUnsupportedDim) {
		t.Errorf("non-pow2: expected ErrUnsupportedDim, got %v", err)
	}
	if _, err := (GonumBackend{}).NewPlan(4, 7); !errors.Is(err, ErrUnsupportedDim) {
		t.Errorf("odd width: expected ErrUnsupportedDim, got %v", err)
	}
}

func TestPlaceInto(t *testing.T) {
	src, _ := core.NewImageFrom(2, 2, []float64{1, 2, 3, 4})

	dst := make([]float64, 4*4)
	for i := range dst {
		dst[i] = -1 // PlaceInto must clear the whole plane
	}
	PlaceInto(dst, 4, 4, src)

	expected := []float64{
		1, 2, 0, 0,
		3, 4, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	for i := range expected {
		if dst[i] != expected[i] {
			t.Fatalf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}
