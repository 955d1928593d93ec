package waveform

import (
	"errors"
	"runtime"
	"sync"
)

// Errors returned by pulse compression.
var (
	ErrNilSignal      = errors.New("waveform: signal must not be nil")
	ErrEmptyReference = errors.New("waveform: reference waveform is empty")
)

// Method selects the convolution strategy used for compression.
type Method int

const (
	// MethodAuto picks the direct path for small products of signal
	// and reference length and the FFT path otherwise.
	MethodAuto Method = iota

	// MethodFFT always uses frequency-domain convolution. This is the
	// throughput choice for realistic pulse and signal sizes.
	MethodFFT

	// MethodDirect always uses time-domain summation. Mainly useful as
	// a correctness reference; it is orders of magnitude slower for
	// long waveforms.
	MethodDirect
)

// autoDirectThreshold is the kernel-length * output-length product
// below which MethodAuto stays in the time domain.
const autoDirectThreshold = 1 << 14

// Compressor performs matched-filter pulse compression: it convolves a
// signal batch with the time-reversed complex conjugate of a reference
// waveform along the fast-time axis, in valid mode, preserving every
// leading batch dimension. Rows are independent, so a compressor can
// fan them out across worker goroutines; the reference kernel is shared
// read-only.
type Compressor struct {
	method   Method
	parallel bool
	workers  int
}

// Option configures a Compressor.
type Option func(*Compressor)

// WithMethod selects the convolution strategy.
func WithMethod(m Method) Option {
	return func(c *Compressor) { c.method = m }
}

// WithParallel enables or disables parallel row processing.
func WithParallel(enabled bool) Option {
	return func(c *Compressor) { c.parallel = enabled }
}

// WithWorkers sets the number of worker goroutines used when parallel
// processing is enabled. Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Compressor) { c.workers = n }
}

// NewCompressor creates a compressor. The default is the FFT method
// with parallel row processing across all CPUs.
func NewCompressor(opts ...Option) *Compressor {
	c := &Compressor{
		method:   MethodFFT,
		parallel: true,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Compress pulse compresses sig against ref. The output batch keeps
// every leading dimension of sig; its fast-time length is
// max(n, m) - min(n, m) + 1 for signal length n and reference length m
// (valid convolution, no implicit padding). The reference may be longer
// than the signal; the roles swap symmetrically as in valid-mode
// convolution.
func (c *Compressor) Compress(sig *SignalBatch, ref []complex128) (*SignalBatch, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}

	if len(ref) == 0 {
		return nil, ErrEmptyReference
	}

	kernel := reverseConjugate(ref)
	outLen := validLength(sig.LastDim(), len(ref))

	outShape := sig.Shape()
	outShape[len(outShape)-1] = outLen
	out, err := NewSignalBatch(outShape...)
	if err != nil {
		return nil, err
	}

	convolve := c.convolveFunc(len(kernel), outLen)
	rows := sig.NumRows()

	if !c.parallel || rows == 1 {
		for i := 0; i < rows; i++ {
			copy(out.Row(i), convolve(sig.Row(i), kernel))
		}
		return out, nil
	}

	rowCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowCh {
				copy(out.Row(i), convolve(sig.Row(i), kernel))
			}
		}()
	}
	for i := 0; i < rows; i++ {
		rowCh <- i
	}
	close(rowCh)
	wg.Wait()

	return out, nil
}

// Compress1D pulse compresses a single signal without the batch
// wrapper.
func (c *Compressor) Compress1D(sig, ref []complex128) ([]complex128, error) {
	batch, err := SignalBatchFromSlice(sig)
	if err != nil {
		return nil, err
	}

	out, err := c.Compress(batch, ref)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

func (c *Compressor) convolveFunc(kernelLen, outLen int) func(x, h []complex128) []complex128 {
	switch c.method {
	case MethodDirect:
		return convolveValidDirect
	case MethodFFT:
		return convolveValidFFT
	default:
		if kernelLen*outLen <= autoDirectThreshold {
			return convolveValidDirect
		}
		return convolveValidFFT
	}
}

// CompressPulses pulse compresses sig against the reference waveform
// using the default compressor (FFT method, parallel rows). This is the
// usual entry point: ref is the transmitted waveform and sig the
// received data with fast time as its last axis.
func CompressPulses(sig *SignalBatch, ref []complex128) (*SignalBatch, error) {
	return NewCompressor().Compress(sig, ref)
}
