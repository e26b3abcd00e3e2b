package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Note is a pitch in cents relative to A4 (440 Hz). A2 is -2400, C5 is 300.
type Note float64

var noteNames = [semitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteFromHz converts a frequency to a note. Non-positive frequencies map to -Inf.
func NoteFromHz(hz float64) Note {
	return Note(CentsPerOctave * math.Log2(hz/ReferenceHz))
}

// NoteFromPeriod converts a period in samples at sampleRate to a note.
func NoteFromPeriod(samples, sampleRate float64) Note {
	return NoteFromHz(sampleRate / samples)
}

// Hz returns the note's frequency.
func (n Note) Hz() float64 {
	return ReferenceHz * math.Exp2(float64(n)/CentsPerOctave)
}

// Period returns the note's period in samples at sampleRate.
func (n Note) Period(sampleRate float64) float64 {
	return sampleRate / n.Hz()
}

// Semitones returns the note in semitones relative to A4.
func (n Note) Semitones() float64 {
	return float64(n) / CentsPerSemitone
}

func (n Note) valid() bool {
	return !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
}

// Nearest returns the nearest equal-tempered note as a name and octave
// (scientific pitch notation) plus the deviation from it in cents.
func (n Note) Nearest() (name string, octave int, cents float64) {
	semis := int(math.Round(n.Semitones()))
	fromC := semis + referenceIndex
	idx := ((fromC % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave
	octave = referenceOctave + floorDiv(fromC, semitonesPerOctave)
	return noteNames[idx], octave, float64(n) - float64(semis)*CentsPerSemitone
}

// Name returns the nearest note name with octave, e.g. "C#3".
func (n Note) Name() string {
	if !n.valid() {
		return "?"
	}
	name, octave, _ := n.Nearest()
	return name + strconv.Itoa(octave)
}

// String returns the nearest note name and the deviation, e.g. "A4+12c".
func (n Note) String() string {
	if !n.valid() {
		return fmt.Sprintf("Note(%g)", float64(n))
	}
	name, octave, cents := n.Nearest()
	c := int(math.Round(cents))
	if c == 0 {
		return fmt.Sprintf("%s%d", name, octave)
	}
	return fmt.Sprintf("%s%d%+dc", name, octave, c)
}

// ParseNote parses a note name such as "A4", "C#3" or "Bb2", or a plain
// number of cents relative to A4 such as "-2400".
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidNote)
	}

	if cents, err := strconv.ParseFloat(s, 64); err == nil {
		n := Note(cents)
		if !n.valid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
		}
		return n, nil
	}

	idx := strings.IndexByte("CDEFGAB", strings.ToUpper(s[:1])[0])
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q: unknown note letter", ErrInvalidNote, s)
	}
	semis := [...]int{0, 2, 4, 5, 7, 9, 11}[idx]

	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		semis++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		semis--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: bad octave", ErrInvalidNote, s)
	}

	semis += (octave-referenceOctave)*semitonesPerOctave - referenceIndex
	return Note(float64(semis) * CentsPerSemitone), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
