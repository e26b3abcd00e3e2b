package pitch

import (
	"math"
)

// Policy decides the frequency ratio to apply to one analysis window.
// detected reports whether a note cleared the detector's range and clarity
// thresholds; note is meaningless otherwise. A ratio above 1 raises pitch.
//
// The corrector calls Ratio synchronously, once per window.
type Policy interface {
	Ratio(note Note, detected bool) float64
}

// PolicyFunc adapts an ordinary function to the Policy interface.
type PolicyFunc func(note Note, detected bool) float64

// Ratio calls f(note, detected).
func (f PolicyFunc) Ratio(note Note, detected bool) float64 {
	return f(note, detected)
}

// FixedRatio shifts every window by the same ratio, detected or not.
type FixedRatio float64

// Ratio returns r.
func (r FixedRatio) Ratio(Note, bool) float64 {
	return float64(r)
}

// Identity leaves pitch unchanged.
var Identity Policy = FixedRatio(1)

// Semitones returns a FixedRatio that transposes by s semitones.
func Semitones(s float64) FixedRatio {
	return FixedRatio(math.Exp2(s / semitonesPerOctave))
}

// Quantize snaps detected notes to the nearest multiple of Step cents.
// The zero value snaps to equal-tempered semitones.
type Quantize struct {
	Step float64
}

// Ratio returns the ratio that moves note onto the grid, or 1 when nothing was detected.
func (q Quantize) Ratio(note Note, detected bool) float64 {
	if !detected {
		return 1
	}
	step := q.Step
	if step <= 0 {
		step = CentsPerSemitone
	}
	target := math.Round(float64(note)/step) * step
	return ratioBetween(note, Note(target))
}

// Scale snaps detected notes to the nearest degree of a musical scale.
type Scale struct {
	// Root is any note of the scale's tonic; only its pitch class matters.
	Root Note

	// Degrees are the scale's semitone offsets from the root within one
	// octave, in [0, 12).
	Degrees []float64
}

// Common scale degrees.
var (
	MajorScale     = []float64{0, 2, 4, 5, 7, 9, 11}
	MinorScale     = []float64{0, 2, 3, 5, 7, 8, 10}
	ChromaticScale = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
)

// Ratio returns the ratio that moves note onto the nearest scale degree, or
// 1 when nothing was detected or the scale is empty.
func (s Scale) Ratio(note Note, detected bool) float64 {
	if !detected || len(s.Degrees) == 0 {
		return 1
	}

	rel := float64(note - s.Root)
	octave := math.Floor(rel / CentsPerOctave)
	within := rel - octave*CentsPerOctave

	// The next octave's root is also a candidate for notes just below it.
	best := CentsPerOctave
	for _, d := range s.Degrees {
		c := d * CentsPerSemitone
		if math.Abs(c-within) < math.Abs(best-within) {
			best = c
		}
	}

	target := float64(s.Root) + octave*CentsPerOctave + best
	return ratioBetween(note, Note(target))
}

// ratioBetween returns the frequency ratio that moves from onto to.
func ratioBetween(from, to Note) float64 {
	return math.Exp2(float64(to-from) / CentsPerOctave)
}

// sanitizeRatio maps a policy result into [MinRatio, MaxRatio]; non-finite
// or non-positive ratios become 1.
func sanitizeRatio(r float64) float64 {
	if !(r > 0) || math.IsInf(r, 0) {
		return 1
	}
	return min(max(r, MinRatio), MaxRatio)
}
