package waveform

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSignal(rng *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return out
}

func testChirp(t *testing.T) []complex128 {
	t.Helper()
	_, ref, err := GenLFMChirp(100e3, 64e-5, -20e3, 20e3)
	require.NoError(t, err)
	require.Len(t, ref, 64)
	return ref
}

func TestCompressOutputLength(t *testing.T) {
	ref := testChirp(t)

	sig, err := NewSignalBatch(200)
	require.NoError(t, err)

	out, err := CompressPulses(sig, ref)
	require.NoError(t, err)
	assert.Equal(t, []int{200 - 64 + 1}, out.Shape())
}

func TestCompressReferenceLongerThanSignal(t *testing.T) {
	// Valid-mode convolution is symmetric in the two lengths, so a
	// reference longer than the signal is legal.
	ref := testChirp(t)

	sig, err := NewSignalBatch(16)
	require.NoError(t, err)

	out, err := CompressPulses(sig, ref)
	require.NoError(t, err)
	assert.Equal(t, []int{64 - 16 + 1}, out.Shape())
}

func TestCompressMatchedFilterPeak(t *testing.T) {
	ref := testChirp(t)

	const sigLen = 512
	const offset = 137

	sig, err := NewSignalBatch(sigLen)
	require.NoError(t, err)
	copy(sig.Data()[offset:], ref)

	out, err := CompressPulses(sig, ref)
	require.NoError(t, err)

	data := out.Data()
	require.Len(t, data, sigLen-len(ref)+1)

	peakIdx := 0
	for i, v := range data {
		if cmplx.Abs(v) > cmplx.Abs(data[peakIdx]) {
			peakIdx = i
		}
	}

	// The peak sits at the embedding offset with magnitude equal to
	// the reference energy (the chirp has unit-magnitude samples, so
	// its energy is its length).
	assert.Equal(t, offset, peakIdx)
	assert.InDelta(t, float64(len(ref)), cmplx.Abs(data[peakIdx]), 1e-6)
}

func TestCompressAgainstDirectReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ref := testChirp(t)
	sig := randomSignal(rng, 300)

	direct := convolveValidDirect(sig, reverseConjugate(ref))
	viaFFT := convolveValidFFT(sig, reverseConjugate(ref))

	require.Len(t, viaFFT, len(direct))
	for i := range direct {
		assert.InDelta(t, real(direct[i]), real(viaFFT[i]), 1e-8)
		assert.InDelta(t, imag(direct[i]), imag(viaFFT[i]), 1e-8)
	}
}

func TestCompressMethodsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref := testChirp(t)

	rows := make([][]complex128, 5)
	for i := range rows {
		rows[i] = randomSignal(rng, 256)
	}
	sig, err := SignalBatchFromRows(rows)
	require.NoError(t, err)

	outDirect, err := NewCompressor(WithMethod(MethodDirect)).Compress(sig, ref)
	require.NoError(t, err)
	outFFT, err := NewCompressor(WithMethod(MethodFFT)).Compress(sig, ref)
	require.NoError(t, err)
	outAuto, err := NewCompressor(WithMethod(MethodAuto)).Compress(sig, ref)
	require.NoError(t, err)

	require.Equal(t, outDirect.Shape(), outFFT.Shape())
	require.Equal(t, outDirect.Shape(), outAuto.Shape())

	for i, v := range outDirect.Data() {
		assert.InDelta(t, real(v), real(outFFT.Data()[i]), 1e-8)
		assert.InDelta(t, imag(v), imag(outFFT.Data()[i]), 1e-8)
		assert.InDelta(t, real(v), real(outAuto.Data()[i]), 1e-8)
		assert.InDelta(t, imag(v), imag(outAuto.Data()[i]), 1e-8)
	}
}

func TestCompressBatchInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ref := testChirp(t)
	row := randomSignal(rng, 256)

	single, err := SignalBatchFromSlice(row)
	require.NoError(t, err)
	want, err := CompressPulses(single, ref)
	require.NoError(t, err)

	// Stack the same signal into a 3-D batch; every row of the output
	// must equal the single-signal result exactly.
	const d0, d1 = 2, 3
	batch, err := NewSignalBatch(d0, d1, len(row))
	require.NoError(t, err)
	for i := 0; i < batch.NumRows(); i++ {
		copy(batch.Row(i), row)
	}

	out, err := CompressPulses(batch, ref)
	require.NoError(t, err)
	require.Equal(t, []int{d0, d1, len(want.Data())}, out.Shape())

	for i := 0; i < out.NumRows(); i++ {
		assert.Equal(t, want.Data(), out.Row(i), "row %d", i)
	}
}

func TestCompressParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	ref := testChirp(t)

	rows := make([][]complex128, 16)
	for i := range rows {
		rows[i] = randomSignal(rng, 400)
	}
	sig, err := SignalBatchFromRows(rows)
	require.NoError(t, err)

	seq, err := NewCompressor(WithParallel(false)).Compress(sig, ref)
	require.NoError(t, err)
	par, err := NewCompressor(WithParallel(true), WithWorkers(4)).Compress(sig, ref)
	require.NoError(t, err)

	// Rows are deterministic and independent, so the outputs must be
	// bit-exact.
	assert.Equal(t, seq.Data(), par.Data())
}

func TestCompress1D(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	ref := testChirp(t)
	sig := randomSignal(rng, 200)

	out, err := NewCompressor().Compress1D(sig, ref)
	require.NoError(t, err)
	assert.Len(t, out, 200-64+1)
}

func TestCompressErrors(t *testing.T) {
	ref := testChirp(t)

	_, err := CompressPulses(nil, ref)
	assert.ErrorIs(t, err, ErrNilSignal)

	sig, err := NewSignalBatch(100)
	require.NoError(t, err)
	_, err = CompressPulses(sig, nil)
	assert.ErrorIs(t, err, ErrEmptyReference)
	_, err = CompressPulses(sig, []complex128{})
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestValidLength(t *testing.T) {
	assert.Equal(t, 81, validLength(100, 20))
	assert.Equal(t, 81, validLength(20, 100))
	assert.Equal(t, 1, validLength(64, 64))
}
