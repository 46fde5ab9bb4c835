package xcorr

import (
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/fft2"
)

// config collects the per-invocation settings.
type config struct {
	fixedMask  *core.Image
	movingMask *core.Image

	requiredOverlap  int
	requiredFraction float64

	backend fft2.Backend
}

// Option mutates the correlation configuration.
type Option func(*config)

func defaultConfig() config {
	return config{backend: fft2.Default}
}

// WithFixedMask marks which pixels of the fixed image are valid.
// Non-zero mask samples are valid; the mask must match the fixed
// image's size. Without this option every fixed pixel is valid.
func WithFixedMask(mask *core.Image) Option {
	return func(cfg *config) {
		cfg.fixedMask = mask
	}
}

// WithMovingMask marks which pixels of the moving image are valid.
func WithMovingMask(mask *core.Image) Option {
	return func(cfg *config) {
		cfg.movingMask = mask
	}
}

// WithRequiredOverlap sets the minimum number of jointly-valid pixels a
// translation needs for its coefficient to be kept; below it the output
// is forced to 0. Default 0.
func WithRequiredOverlap(n int) Option {
	return func(cfg *config) {
		cfg.requiredOverlap = n
	}
}

// WithRequiredOverlapFraction sets the minimum overlap as a fraction of
// the maximum overlap observed, in [0, 1]. The effective threshold is
// the larger of this and the absolute requirement. Default 0.
func WithRequiredOverlapFraction(f float64) Option {
	return func(cfg *config) {
		cfg.requiredFraction = f
	}
}

// WithBackend selects the FFT backend. Default is fft2.Default
// (algo-fft, power-of-two padding).
func WithBackend(b fft2.Backend) Option {
	return func(cfg *config) {
		if b != nil {
			cfg.backend = b
		}
	}
}
