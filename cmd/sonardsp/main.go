// Command sonardsp demonstrates the propagation and waveform APIs: it
// computes an environmental summary and a transmission-loss table for a
// sonar scenario, then pulse compresses a batch of staggered echoes of
// the transmit chirp and reports the detected peaks.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/cmplx"
	"time"

	"github.com/RyanBlaney/sonardsp/propagation"
	"github.com/RyanBlaney/sonardsp/waveform"
)

func main() {
	var (
		temperature = flag.Float64("temperature", 10, "Water temperature in Celsius")
		depth       = flag.Float64("depth", 100, "Depth in meters")
		salinity    = flag.Float64("salinity", propagation.DefaultSalinity, "Salinity in ppt")
		ph          = flag.Float64("ph", propagation.DefaultPH, "Acidity in pH")
		freq        = flag.Float64("freq", 125e3, "Operating frequency in Hz")
		maxRange    = flag.Float64("max-range", 2000, "Far edge of the loss table in meters")
		pulses      = flag.Int("pulses", 100, "Number of pulses in the compression demo")
	)
	flag.Parse()

	cond := propagation.Conditions{
		Temperature: *temperature,
		Depth:       *depth,
		Salinity:    *salinity,
		PH:          *ph,
	}

	speed := propagation.SpeedOfSound(cond)
	alpha := propagation.Absorption(*freq, cond)

	fmt.Printf("Environment at T=%.1f C, z=%.0f m, S=%.1f ppt, pH=%.1f, f=%.1f kHz\n",
		cond.Temperature, cond.Depth, cond.Salinity, cond.PH, *freq/1e3)
	fmt.Printf("  Speed of sound: %.2f m/s (all models invalid: %v)\n", speed.Value, speed.AllInvalid)
	fmt.Printf("  Absorption:     %.3f dB/km (all models invalid: %v)\n", alpha.Value, alpha.AllInvalid)
	for _, m := range alpha.Models {
		fmt.Printf("    %-18s %8.3f dB/km  valid=%v\n", m.Name, m.Value, m.Valid)
	}

	// Transmission loss over a handful of ranges out to max-range.
	distances := make([]float64, 0, 8)
	for d := *maxRange / 8; d <= *maxRange; d += *maxRange / 8 {
		distances = append(distances, d)
	}
	loss := propagation.TransmissionLoss(distances, alpha.Value)

	fmt.Println("\nTransmission loss:")
	fmt.Println("  range (m)   one-way (dB)   two-way (dB)")
	for i, d := range distances {
		fmt.Printf("  %9.0f   %12.2f   %12.2f\n", d, loss.DBOneWay[i], loss.DBTwoWay[i])
	}

	runCompressionDemo(*pulses)
}

// runCompressionDemo builds the transmit chirp, embeds one staggered
// echo of it per pulse in an otherwise empty batch, compresses, and
// reports timing plus a spot check of the recovered delays.
func runCompressionDemo(pulses int) {
	const (
		bandwidth  = 125e3
		sampleRate = bandwidth * 20
		pulseWidth = 8e-3
	)

	_, chirp, err := waveform.GenLFMChirp(sampleRate, pulseWidth, -bandwidth/2, bandwidth/2)
	if err != nil {
		log.Fatalf("chirp generation failed: %v", err)
	}

	samples := int(pulseWidth * 10 * sampleRate)
	sig, err := waveform.NewSignalBatch(pulses, samples)
	if err != nil {
		log.Fatalf("batch allocation failed: %v", err)
	}
	for i := 0; i < pulses; i++ {
		offset := i*100 + 50000
		copy(sig.Row(i)[offset:], chirp)
	}

	start := time.Now()
	pc, err := waveform.CompressPulses(sig, chirp)
	if err != nil {
		log.Fatalf("pulse compression failed: %v", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nCompressed %d pulses of %d samples in %.3f s\n",
		pulses, samples, elapsed.Seconds())

	for _, i := range []int{0, pulses / 2, pulses - 1} {
		row := pc.Row(i)
		peak := 0
		for j, v := range row {
			if cmplx.Abs(v) > cmplx.Abs(row[peak]) {
				peak = j
			}
		}
		fmt.Printf("  pulse %3d: peak at sample %d, magnitude %.1f\n",
			i, peak, cmplx.Abs(row[peak]))
	}
}
