// Package filter designs the windowed-sinc prototypes and polyphase filter
// banks used by the rational resampler.
package filter

import (
	"fmt"
)

// Window selects the window applied to the sinc prototype.
type Window int

const (
	// WindowCosh is the cheap cosh approximation of the Kaiser window.
	WindowCosh Window = iota
	// WindowKaiser is the exact Kaiser window (Bessel I₀).
	WindowKaiser
)

// String returns the window name.
func (w Window) String() string {
	switch w {
	case WindowCosh:
		return "cosh"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// Filter design limits and defaults.
const (
	minAttenuation = 20.0  // dB, below this the window degenerates to rectangular
	maxAttenuation = 150.0 // dB, outside the cosh polynomial's fitted range

	minOrder = 2
	maxOrder = 512

	// DefaultAttenuation is the default stopband attenuation in dB.
	DefaultAttenuation = 50.0
	// DefaultCutoff is the default cutoff as a fraction of the current Nyquist.
	DefaultCutoff = 0.7
	// DefaultOrder is the default number of taps per sub-filter.
	DefaultOrder = 16
)

// Spec holds the filter design parameters for a resampler.
type Spec struct {
	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Cutoff is the passband edge as a fraction of the current Nyquist
	// frequency, in (0, 1].
	Cutoff float64

	// Order is the number of taps per polyphase sub-filter, which is also
	// the delay line length.
	Order int

	// Window selects the prototype window.
	Window Window
}

// DefaultSpec returns the default design: 50 dB, 0.7 cutoff, 16 taps per phase.
func DefaultSpec() Spec {
	return Spec{
		Attenuation: DefaultAttenuation,
		Cutoff:      DefaultCutoff,
		Order:       DefaultOrder,
		Window:      WindowCosh,
	}
}

// Validate checks if filter parameters are valid.
func (s *Spec) Validate() error {
	if s.Attenuation < minAttenuation || s.Attenuation > maxAttenuation {
		return fmt.Errorf("invalid attenuation: %g dB (must be in [%g, %g])",
			s.Attenuation, minAttenuation, maxAttenuation)
	}

	if s.Cutoff <= 0 || s.Cutoff > 1 {
		return fmt.Errorf("invalid cutoff: %g (must be in (0, 1])", s.Cutoff)
	}

	if s.Order < minOrder || s.Order > maxOrder {
		return fmt.Errorf("invalid order: %d (must be in [%d, %d])", s.Order, minOrder, maxOrder)
	}

	if s.Window != WindowCosh && s.Window != WindowKaiser {
		return fmt.Errorf("unknown window: %v", s.Window)
	}

	return nil
}
