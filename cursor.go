package pitch

import (
	"math"
)

// loopCursor reads a captured window at arbitrary virtual positions.
//
// Positions inside the window read directly. Positions outside it are
// folded back onto the window by whole periods, so reading past either end
// continues the waveform in phase: v maps to round(v mod period). Without a
// period estimate, positions past the end wrap to the start of the window
// and positions before it are mirrored.
type loopCursor struct {
	buf    []float64
	period float64 // input period in samples, 0 when unknown
}

// index returns the window index read for virtual position v.
func (c loopCursor) index(v int) int {
	n := len(c.buf)
	if v >= 0 && v < n {
		return v
	}

	if c.period > 0 {
		p := float64(v) - c.period*math.Floor(float64(v)/c.period)
		return min(int(math.Round(p)), n-1)
	}

	if v < 0 {
		return min(-v, n-1)
	}
	return v % n
}

// at returns the sample at virtual position v.
func (c loopCursor) at(v int) float64 {
	return c.buf[c.index(v)]
}
