// Command analyze-filter prints the polyphase filter bank the corrector
// would build for a pitch ratio: per-phase DC gain, passband ripple and
// stopband attenuation.
//
// Usage:
//
//	analyze-filter -ratio 1.5
//	analyze-filter -semitones -5 -window kaiser -attenuation 80
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/tphakala/go-audio-pitch/internal/engine"
	"github.com/tphakala/go-audio-pitch/internal/filter"
)

const (
	// Display limits
	maxPhasesToShow = 8
	responsePoints  = 2048

	// Passband is measured up to this fraction of the cutoff.
	passbandEdge = 0.9

	semitonesPerOctave = 12
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ratio := flag.Float64("ratio", 0, "Pitch ratio (overrides -semitones)")
	semitones := flag.Float64("semitones", 7, "Pitch shift in semitones")
	att := flag.Float64("attenuation", filter.DefaultAttenuation, "Stopband attenuation in dB")
	cutoff := flag.Float64("cutoff", filter.DefaultCutoff, "Passband edge as a fraction of Nyquist")
	order := flag.Int("order", filter.DefaultOrder, "Taps per output sample")
	window := flag.String("window", "cosh", "Window: cosh, kaiser")
	flag.Parse()

	r := *ratio
	if r <= 0 {
		r = math.Exp2(*semitones / semitonesPerOctave)
	}

	spec := filter.Spec{Attenuation: *att, Cutoff: *cutoff, Order: *order, Window: filter.WindowCosh}
	switch strings.ToLower(*window) {
	case "cosh":
	case "kaiser":
		spec.Window = filter.WindowKaiser
	default:
		return fmt.Errorf("unknown window %q", *window)
	}

	num, den := engine.RationalApprox(r)
	rs, err := engine.NewResampler[float64](den, num, spec)
	if err != nil {
		return err
	}
	bank := rs.Bank()

	fmt.Println("=== Analyzing Pitch Filter Bank ===")
	fmt.Printf("Requested ratio: %.6f\n", r)
	fmt.Printf("Rational approximation: %d/%d = %.6f (error %.2f cents)\n",
		num, den, float64(num)/float64(den),
		1200*math.Log2(float64(num)/float64(den)/r))
	fmt.Printf("Resampler: up %d, down %d\n\n", rs.Up(), rs.Down())

	fmt.Printf("Filter bank info:\n")
	fmt.Printf("  Window: %s\n", spec.Window)
	fmt.Printf("  Phases: %d\n", len(bank.Phases))
	fmt.Printf("  TapsPerPhase: %d\n", bank.Order)
	fmt.Printf("  TotalTaps: %d\n", bank.TotalTaps())
	fmt.Printf("  Group delay: %.2f input samples\n", rs.GroupDelay())
	fmt.Printf("  SIMD: %s\n\n", rs.SIMDInfo())

	fmt.Println("DC gain per phase:")
	var minGain, maxGain = math.Inf(1), math.Inf(-1)
	for p := range bank.Up {
		g := bank.PhaseGain(p)
		minGain = min(minGain, g)
		maxGain = max(maxGain, g)
		if p < maxPhasesToShow {
			fmt.Printf("  Phase %3d: %.10f\n", p, g)
		}
	}
	if bank.Up > maxPhasesToShow {
		fmt.Printf("  ... (%d more phases)\n", bank.Up-maxPhasesToShow)
	}
	fmt.Printf("  Spread: %.3e\n\n", maxGain-minGain)

	// The prototype runs at Up times the input rate; frequencies below are
	// normalized to that rate (0.5 = Nyquist).
	resp := filter.ComputeFrequencyResponse(bank.Prototype, responsePoints)
	edge := 0.5 * spec.Cutoff / float64(max(bank.Up, bank.Down))
	stop := 0.5 / float64(max(bank.Up, bank.Down))
	dc := resp.Magnitude[0]

	passMin, passMax := math.Inf(1), math.Inf(-1)
	stopMax := math.Inf(-1)
	for k, f := range resp.Frequencies {
		db := filter.MagnitudeDB(resp.Magnitude[k] / dc)
		switch {
		case f <= passbandEdge*edge:
			passMin = min(passMin, db)
			passMax = max(passMax, db)
		case f >= stop:
			stopMax = max(stopMax, db)
		}
	}

	fmt.Println("Frequency response:")
	fmt.Printf("  DC gain: %.6f (expect %d)\n", dc, bank.Up)
	fmt.Printf("  Passband ripple (0 to %.4f): %.3f dB to %.3f dB\n", passbandEdge*edge, passMin, passMax)
	fmt.Printf("  Worst stopband (above %.4f): %.1f dB\n", stop, stopMax)

	return nil
}
