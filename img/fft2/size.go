package fft2

// FullSize returns the linear correlation grid length for inputs of
// length a and b: a + b - 1. This is the minimum padded size that avoids
// circular wrap-around.
func FullSize(a, b int) int {
	return a + b - 1
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// nextSmooth5 returns the smallest integer >= n whose prime factors are
// all in {2, 3, 5}.
func nextSmooth5(n int) int {
	if n <= 1 {
		return 1
	}
	for m := n; ; m++ {
		k := m
		for k%2 == 0 {
			k /= 2
		}
		for k%3 == 0 {
			k /= 3
		}
		for k%5 == 0 {
			k /= 5
		}
		if k == 1 {
			return m
		}
	}
}
