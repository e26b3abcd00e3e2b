package main

import (
	"fmt"
	"log"
	"strings"

	pitch "github.com/tphakala/go-audio-pitch"
)

// options holds the parsed command line.
type options struct {
	semitones float64
	ratio     float64
	quantize  float64
	scale     string
	root      string

	minNote string
	maxNote string
	overlap float64

	attenuation float64
	order       int
	window      string
}

// buildConfig turns the options into a validated corrector configuration.
func buildConfig(opts options, sampleRate float64) (pitch.Config, error) {
	cfg := pitch.DefaultConfig(sampleRate)

	minNote, err := pitch.ParseNote(opts.minNote)
	if err != nil {
		return cfg, fmt.Errorf("bad -min: %w", err)
	}
	maxNote, err := pitch.ParseNote(opts.maxNote)
	if err != nil {
		return cfg, fmt.Errorf("bad -max: %w", err)
	}
	window, err := parseWindow(opts.window)
	if err != nil {
		return cfg, err
	}

	cfg.MinNote = minNote
	cfg.MaxNote = maxNote
	cfg.Overlap = opts.overlap
	cfg.Filter.Attenuation = opts.attenuation
	cfg.Filter.Order = opts.order
	cfg.Filter.Window = window

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildPolicy picks the correction policy. A scale takes precedence over
// quantization, which takes precedence over a fixed transposition.
func buildPolicy(opts options) (pitch.Policy, error) {
	switch {
	case opts.scale != "":
		degrees, err := parseScale(opts.scale)
		if err != nil {
			return nil, err
		}
		root, err := pitch.ParseNote(normalizeRoot(opts.root))
		if err != nil {
			return nil, fmt.Errorf("bad -root: %w", err)
		}
		return pitch.Scale{Root: root, Degrees: degrees}, nil

	case opts.quantize > 0:
		return pitch.Quantize{Step: opts.quantize}, nil

	case opts.ratio > 0:
		if opts.ratio < pitch.MinRatio || opts.ratio > pitch.MaxRatio {
			log.Printf("Warning: ratio %.3f will be clamped to [%.2f, %.2f]",
				opts.ratio, pitch.MinRatio, pitch.MaxRatio)
		}
		return pitch.FixedRatio(opts.ratio), nil

	case opts.ratio < 0:
		return nil, fmt.Errorf("ratio must be positive, got %g", opts.ratio)

	default:
		return pitch.Semitones(opts.semitones), nil
	}
}

// describePolicy returns a one-line summary for verbose output.
func describePolicy(opts options) string {
	switch {
	case opts.scale != "":
		return fmt.Sprintf("snap to %s scale on %s", strings.ToLower(opts.scale), opts.root)
	case opts.quantize > 0:
		return fmt.Sprintf("quantize to %g cents", opts.quantize)
	case opts.ratio > 0:
		return fmt.Sprintf("fixed ratio %.4f", opts.ratio)
	default:
		return fmt.Sprintf("transpose %+g semitones", opts.semitones)
	}
}

func parseWindow(s string) (pitch.WindowKind, error) {
	switch strings.ToLower(s) {
	case "cosh", "":
		return pitch.WindowCosh, nil
	case "kaiser":
		return pitch.WindowKaiser, nil
	default:
		return pitch.WindowCosh, fmt.Errorf("unknown window %q (want cosh or kaiser)", s)
	}
}

func parseScale(s string) ([]float64, error) {
	switch strings.ToLower(s) {
	case "major":
		return pitch.MajorScale, nil
	case "minor":
		return pitch.MinorScale, nil
	case "chromatic":
		return pitch.ChromaticScale, nil
	default:
		return nil, fmt.Errorf("unknown scale %q (want major, minor or chromatic)", s)
	}
}

// normalizeRoot accepts a bare pitch class such as "D" or "F#" for -root.
func normalizeRoot(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	last := s[len(s)-1]
	if last >= '0' && last <= '9' {
		return s
	}
	return s + "4"
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
