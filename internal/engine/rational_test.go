package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRationalApprox(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		wantNum int
		wantDen int
	}{
		{"unity", 1, 1, 1},
		{"fifth", 1.5, 3, 2},
		{"octave down", 0.5, 1, 2},
		{"pitch up policy", 3.2, 16, 5},
		{"pitch down policy", 1 / 3.2, 5, 16},
		{"CD to DAT", 48000.0 / 44100.0, 160, 147},
		{"pi", math.Pi, 355, 113},
		{"zero", 0, 1, 1},
		{"negative", -2, 1, 1},
		{"NaN", math.NaN(), 1, 1},
		{"infinity", math.Inf(1), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, den := RationalApprox(tt.x)
			assert.Equal(t, tt.wantNum, num, "numerator")
			assert.Equal(t, tt.wantDen, den, "denominator")
		})
	}
}

// TestRationalApprox_Bounds tests the approximation error and denominator bound
// over a sweep of musically relevant ratios.
func TestRationalApprox_Bounds(t *testing.T) {
	for semis := -24; semis <= 24; semis++ {
		x := math.Pow(2, float64(semis)/12)
		num, den := RationalApprox(x)

		assert.GreaterOrEqual(t, num, 1)
		assert.GreaterOrEqual(t, den, 1)
		assert.Less(t, den, maxDenominator)
		assert.InDelta(t, x, float64(num)/float64(den), 1e-3*x, "semitones=%d", semis)
	}
}
