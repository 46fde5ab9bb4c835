// Package fft2 provides two-dimensional real-to-complex FFT plans behind a
// narrow backend interface, together with the padded-size planning used for
// linear convolution and correlation.
//
// A Plan transforms a real h-by-w plane (row-major) into its Hermitian
// half-spectrum of shape h x (w/2+1), and back. Both directions are
// normalized so that Inverse(Forward(x)) == x.
//
// Two backends are available:
//
//   - AlgoBackend (default): algo-fft plans; sizes are rounded up to
//     powers of two.
//   - GonumBackend: gonum dsp/fourier; sizes are rounded up to 5-smooth
//     numbers (products of 2, 3 and 5).
//
// Backend selection is per plan; the correlation engine takes a Backend
// option and is otherwise indifferent to the implementation.
package fft2
