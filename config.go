package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-pitch/internal/filter"
)

// Common errors returned by the detector and corrector.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid pitch configuration")

	// ErrNotReady indicates detection was requested before the first window filled.
	ErrNotReady = errors.New("analysis window not full")

	// ErrInvalidNote indicates a note name could not be parsed.
	ErrInvalidNote = errors.New("invalid note")
)

// WindowKind selects the window used to design resampling filters.
type WindowKind int

const (
	// WindowCosh is a cosh approximation of the Kaiser window (default).
	WindowCosh WindowKind = iota
	// WindowKaiser is the exact Kaiser window.
	WindowKaiser
)

// FilterSpec holds the resampler filter design parameters.
type FilterSpec struct {
	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Cutoff is the passband edge as a fraction of the current Nyquist frequency.
	Cutoff float64

	// Order is the number of FIR taps evaluated per output sample.
	Order int

	// Window selects the prototype window.
	Window WindowKind
}

// DefaultFilterSpec returns 50 dB attenuation, 0.7 cutoff, order 16, cosh window.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Attenuation: filter.DefaultAttenuation,
		Cutoff:      filter.DefaultCutoff,
		Order:       filter.DefaultOrder,
		Window:      WindowCosh,
	}
}

// Validate checks if the filter specification is valid.
func (f *FilterSpec) Validate() error {
	spec := f.design()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// design converts to the internal filter spec. WindowKind values mirror filter.Window.
func (f *FilterSpec) design() filter.Spec {
	return filter.Spec{
		Attenuation: f.Attenuation,
		Cutoff:      f.Cutoff,
		Order:       f.Order,
		Window:      filter.Window(f.Window),
	}
}

// Config holds detector and corrector configuration. It is read once at
// construction.
type Config struct {
	// SampleRate is the input sample rate in Hz.
	SampleRate float64

	// MinNote and MaxNote bound the detectable pitch range, in cents relative
	// to A4. MinNote also sets the analysis window length.
	MinNote Note
	MaxNote Note

	// Overlap is the fraction of each window carried into the next, in [0, 1).
	// The corrector requires more than MinCorrectorOverlap.
	Overlap float64

	// Decimation downsamples the input by an integer factor before analysis.
	// Zero is treated as 1. Only the detector supports values above 1.
	Decimation int

	// Filter configures the corrector's resampler.
	Filter FilterSpec
}

// DefaultConfig returns the default configuration for a sample rate.
func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate: sampleRate,
		MinNote:    DefaultMinNote,
		MaxNote:    DefaultMaxNote,
		Overlap:    DefaultOverlap,
		Decimation: DefaultDecimation,
		Filter:     DefaultFilterSpec(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if !c.MinNote.valid() || !c.MaxNote.valid() {
		return fmt.Errorf("%w: notes must be finite", ErrInvalidConfig)
	}

	if c.MinNote >= c.MaxNote {
		return fmt.Errorf("%w: min note %v must be below max note %v", ErrInvalidConfig, c.MinNote, c.MaxNote)
	}

	if c.Overlap < 0 || c.Overlap >= 1 || math.IsNaN(c.Overlap) {
		return fmt.Errorf("%w: overlap fraction must be in [0, 1)", ErrInvalidConfig)
	}

	if c.Decimation < 0 {
		return fmt.Errorf("%w: decimation must not be negative", ErrInvalidConfig)
	}

	if c.MaxNote.Period(c.analysisRate()) < 2 {
		return fmt.Errorf("%w: max note %v is above the analysis Nyquist frequency", ErrInvalidConfig, c.MaxNote)
	}

	if size := c.windowSize(); size > maxWindowSize {
		return fmt.Errorf("%w: min note %v needs a %d-sample window (max %d)",
			ErrInvalidConfig, c.MinNote, size, maxWindowSize)
	}

	return c.Filter.Validate()
}

func (c *Config) decimation() int {
	return max(1, c.Decimation)
}

// analysisRate is the sample rate the detector analyses at.
func (c *Config) analysisRate() float64 {
	return c.SampleRate / float64(c.decimation())
}

// windowSize is the analysis window length at the analysis rate.
func (c *Config) windowSize() int {
	return int(math.Ceil(c.MinNote.Period(c.analysisRate()) * WindowPeriods))
}
