package waveform

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// reverseConjugate returns the time-reversed complex conjugate of a
// waveform, the matched-filter kernel for that waveform.
func reverseConjugate(x []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[len(x)-1-i] = cmplx.Conj(v)
	}
	return out
}

// validLength returns the output length of a valid-mode convolution of
// sequences with lengths n and m: max-min+1. Convolution commutes, so
// the formula is symmetric in the two lengths.
func validLength(n, m int) int {
	if n < m {
		n, m = m, n
	}
	return n - m + 1
}

// convolveValidDirect computes the valid-mode linear convolution of x
// and h by direct summation. Only the fully-overlapped region is
// produced; there is no implicit zero padding at the edges. This is the
// correctness reference for the FFT path.
func convolveValidDirect(x, h []complex128) []complex128 {
	if len(h) > len(x) {
		x, h = h, x
	}

	m := len(h)
	out := make([]complex128, len(x)-m+1)
	for i := range out {
		var acc complex128
		for j, hv := range h {
			acc += x[i+m-1-j] * hv
		}
		out[i] = acc
	}
	return out
}

// convolveValidFFT computes the same valid-mode convolution as
// convolveValidDirect by pointwise multiplication in the frequency
// domain. Both inputs are zero padded to at least the full convolution
// length, rounded up to a power of two so the radix-2 transform path is
// taken, and the valid region is sliced out of the inverse transform.
func convolveValidFFT(x, h []complex128) []complex128 {
	if len(h) > len(x) {
		x, h = h, x
	}

	full := len(x) + len(h) - 1
	n := nextPow2(full)

	xPad := make([]complex128, n)
	copy(xPad, x)
	hPad := make([]complex128, n)
	copy(hPad, h)

	xf := fft.FFT(xPad)
	hf := fft.FFT(hPad)
	for i := range xf {
		xf[i] *= hf[i]
	}
	y := fft.IFFT(xf)

	out := make([]complex128, validLength(len(x), len(h)))
	copy(out, y[len(h)-1:len(h)-1+len(out)])
	return out
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
