// Package xcorr computes masked, FFT-accelerated normalized
// cross-correlation of 2D images.
//
// Given a fixed image F and a moving image M, each with an optional
// validity mask, Correlate produces the full surface of normalized
// cross-correlation coefficients over every integer translation of M
// relative to F. Only pixels where both masks are valid contribute to a
// given translation's coefficient, so the statistics adapt to the
// overlap region pixel by pixel.
//
// The whole surface costs six forward and six inverse FFTs plus
// pointwise arithmetic, following D. Padfield, "Masked object
// registration in the Fourier domain", IEEE Trans. Image Processing,
// 2012. Output values lie in [-1, +1]; translations whose overlap falls
// below the configured thresholds are forced to exactly 0.
//
// # Usage
//
//	res, err := xcorr.Correlate(fixed, moving,
//		xcorr.WithMovingMask(mask),
//		xcorr.WithRequiredOverlapFraction(0.3))
//	if err != nil {
//		...
//	}
//	surface := res.Image   // size (Hf+Hm-1) x (Wf+Wm-1)
//	_ = res.MaxOverlap     // largest jointly-valid pixel count seen
//
// Output index (Hm-1, Wm-1) corresponds to zero translation.
package xcorr
