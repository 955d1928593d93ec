// Package waveform generates sonar transmit waveforms and recovers them
// from received signals by matched-filter pulse compression.
package waveform

import (
	"errors"
	"math"
	"math/cmplx"
)

// Errors returned by waveform generation.
var (
	ErrInvalidSampleRate = errors.New("waveform: sample rate must be positive")
	ErrInvalidPulseWidth = errors.New("waveform: pulse width must be positive")
	ErrPulseTooShort     = errors.New("waveform: pulse width is shorter than one sample")
)

// LFMChirp describes a complex linear frequency modulated waveform. The
// instantaneous frequency sweeps linearly from StartFreq to StopFreq
// over the pulse; either may be negative and the sweep may cross zero,
// so a down-chirp is just StopFreq < StartFreq.
type LFMChirp struct {
	SampleRate float64 // sample rate in Hz
	PulseWidth float64 // requested pulse width in seconds
	StartFreq  float64 // start frequency in Hz
	StopFreq   float64 // stop frequency in Hz
}

// Validate checks that the chirp parameters are valid.
func (c *LFMChirp) Validate() error {
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if c.PulseWidth <= 0 {
		return ErrInvalidPulseWidth
	}

	return nil
}

// Samples returns the number of samples in the generated pulse,
// floor(PulseWidth * SampleRate). A fractional trailing sample is
// truncated.
func (c *LFMChirp) Samples() int {
	return int(math.Floor(c.PulseWidth * c.SampleRate))
}

// RealizedPulseWidth returns the pulse width actually produced,
// Samples()/SampleRate, which may be slightly shorter than the
// requested PulseWidth.
func (c *LFMChirp) RealizedPulseWidth() float64 {
	return float64(c.Samples()) / c.SampleRate
}

// Generate creates the chirp and its time axis.
//
// The phase follows the standard linear chirp equation: with sweep rate
// alpha = (f1 - f0) / T over the realized pulse width T,
//
//	theta(t) = f0*t + alpha*t²/2
//	x(t) = exp(j * 2π * theta(t))
//
// All samples have unit magnitude. The time axis starts at zero with a
// uniform step of one sample period.
func (c *LFMChirp) Generate() (t []float64, x []complex128, err error) {
	err = c.Validate()
	if err != nil {
		return nil, nil, err
	}

	n := c.Samples()
	if n == 0 {
		return nil, nil, ErrPulseTooShort
	}

	pw := float64(n) / c.SampleRate
	alpha := (c.StopFreq - c.StartFreq) / pw

	t = make([]float64, n)
	x = make([]complex128, n)
	for i := range t {
		ti := float64(i) / c.SampleRate
		t[i] = ti

		theta := c.StartFreq*ti + 0.5*alpha*ti*ti
		x[i] = cmplx.Exp(complex(0, 2*math.Pi*theta))
	}

	return t, x, nil
}

// GenLFMChirp generates a complex LFM chirp from sample rate fs, pulse
// width pw, and a frequency sweep from fstart to fstop, all in SI units.
// It is shorthand for building an LFMChirp and calling Generate.
func GenLFMChirp(fs, pw, fstart, fstop float64) ([]float64, []complex128, error) {
	c := LFMChirp{
		SampleRate: fs,
		PulseWidth: pw,
		StartFreq:  fstart,
		StopFreq:   fstop,
	}
	return c.Generate()
}
