// Command pitch-correct re-pitches a monophonic recording and writes the
// result as 16-bit mono WAV.
//
// Usage:
//
//	pitch-correct -semitones 3 voice.wav voice_up.wav
//	pitch-correct -quantize 100 flat.mp3 tuned.wav          # snap to semitones
//	pitch-correct -scale major -root D voice.ogg tuned.wav  # snap to D major
//	pitch-correct -min E2 -max C6 -overlap 0.5 in.wav out.wav
//
// Input may be WAV, MP3 or Ogg Vorbis; multichannel input is mixed to mono.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	pitch "github.com/tphakala/go-audio-pitch"
	"github.com/tphakala/go-audio-pitch/internal/audiofile"
)

const (
	// Samples fed to the corrector between progress checks.
	chunkSize = 65536

	progressInterval = 10 // Print progress every N%
	percentScale     = 100
	minRequiredArgs  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var opts options
	flag.Float64Var(&opts.semitones, "semitones", 0, "Transpose by a fixed number of semitones")
	flag.Float64Var(&opts.ratio, "ratio", 0, "Transpose by a fixed frequency ratio (overrides -semitones)")
	flag.Float64Var(&opts.quantize, "quantize", 0, "Snap detected notes to a grid of this many cents")
	flag.StringVar(&opts.scale, "scale", "", "Snap detected notes to a scale: major, minor, chromatic")
	flag.StringVar(&opts.root, "root", "C4", "Scale root note")
	flag.StringVar(&opts.minNote, "min", "A2", "Lowest detectable note (name or cents from A4)")
	flag.StringVar(&opts.maxNote, "max", "A6", "Highest detectable note (name or cents from A4)")
	flag.Float64Var(&opts.overlap, "overlap", pitch.DefaultOverlap, "Window overlap fraction, above 1/3")
	flag.Float64Var(&opts.attenuation, "attenuation", pitch.DefaultFilterSpec().Attenuation, "Resampler stopband attenuation in dB")
	flag.IntVar(&opts.order, "order", pitch.DefaultFilterSpec().Order, "Resampler taps per output sample")
	flag.StringVar(&opts.window, "window", "cosh", "Resampler filter window: cosh, kaiser")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -semitones -12 voice.wav low.wav     # Down an octave\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -quantize 100 voice.wav tuned.wav    # Snap to semitones\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -scale minor -root A voice.wav a.wav # Snap to A minor\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	policy, err := buildPolicy(opts)
	if err != nil {
		return err
	}

	input, rate, err := audiofile.ReadMono(inputPath)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(opts, float64(rate))
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Input: %s (%d Hz, %d samples)", inputPath, rate, len(input))
		log.Printf("Output: %s", outputPath)
		log.Printf("Range: %v to %v", cfg.MinNote, cfg.MaxNote)
		log.Printf("Policy: %s", describePolicy(opts))
	}

	start := time.Now()
	output, stats, err := correct(input, cfg, policy, *verbose)
	if err != nil {
		return err
	}

	if err := writeOutput(outputPath, rate, output); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Corrected %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d samples, %d windows (%d voiced)\n",
		rate, len(input), stats.windows, stats.voiced)
	fmt.Printf("  Latency: %d samples, hop %d samples\n", stats.latency, stats.hop)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(len(input))/float64(rate)/elapsed.Seconds())

	return nil
}

type correctStats struct {
	windows int
	voiced  int
	latency int
	hop     int
}

// correct streams input through a corrector in chunks, flushing one window
// of silence so that the output matches the input length.
func correct(input []float64, cfg pitch.Config, policy pitch.Policy, verbose bool) ([]float64, *correctStats, error) {
	stats := &correctStats{}
	counting := pitch.PolicyFunc(func(note pitch.Note, detected bool) float64 {
		stats.windows++
		if detected {
			stats.voiced++
		}
		return policy.Ratio(note, detected)
	})

	c, err := pitch.NewCorrector(cfg, counting)
	if err != nil {
		return nil, nil, err
	}
	stats.latency = c.Latency()
	stats.hop = c.HopSize()

	progress := newProgressTracker(int64(len(input)), verbose)
	output := make([]float64, 0, len(input)+c.Latency())
	for i := 0; i < len(input); i += chunkSize {
		end := min(i+chunkSize, len(input))
		output = c.ProcessBlock(output, input[i:end])
		progress.reportIfNeeded(int64(end))
	}
	output = c.ProcessBlock(output, make([]float64, c.Latency()))

	return output[:len(input)], stats, nil
}

// writeOutput writes 16-bit mono WAV, capturing close errors.
func writeOutput(path string, rate int, samples []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return audiofile.WriteWAV(f, rate, samples)
}
