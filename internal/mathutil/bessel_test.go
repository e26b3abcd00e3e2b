package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-audio-pitch/internal/testutil"
)

// TestBesselI0 tests BesselI0 against known values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"Zero", 0.0, 1.0, 1e-15},
		{"Small positive", 0.5, 1.063483371, 1e-8},
		{"One", 1.0, 1.266065878, 1e-8},
		{"Two", 2.0, 2.279585302, 1e-8},
		{"Five", 5.0, 27.23987182, 1e-8},
		{"Ten", 10.0, 2815.716628, 1e-8},
		{"Twenty", 20.0, 4.355828256e7, 1e-8},
		{"Negative one", -1.0, 1.266065878, 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BesselI0(tt.x)
			testutil.AssertRelativeError(t, tt.expected, result, tt.tolerance)
		})
	}
}

// TestBesselI0_Monotonic tests I₀(x) is monotonically increasing for x > 0.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 10.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "BesselI0 not monotonically increasing at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expected    float64
	}{
		{"below threshold", 15, 0},
		{"medium", 40, 0.5842*math.Pow(19, 0.4) + 0.07886*19},
		{"high", 80, 0.1102 * (80 - 8.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, KaiserBeta(tt.attenuation), 1e-12)
		})
	}
}

// TestCoshAlpha tests the cosh window parameter polynomial at the attenuations
// the resampler uses by default.
func TestCoshAlpha(t *testing.T) {
	assert.InDelta(t, -325.1e-6*2500+0.1677*50-3.149, CoshAlpha(50), 1e-12)
	assert.InDelta(t, -325.1e-6*4900+0.1677*70-3.149, CoshAlpha(70), 1e-12)
	assert.Greater(t, CoshAlpha(70), CoshAlpha(50), "wider stopband needs a sharper window")
}

func TestFrac(t *testing.T) {
	tests := []struct {
		x, expected float64
	}{
		{0, 0},
		{0.25, 0.25},
		{3.75, 0.75},
		{-0.25, 0.75},
		{-2, 0},
		{-1e-20, 0},
	}
	for _, tt := range tests {
		got := Frac(tt.x)
		assert.InDelta(t, tt.expected, got, 1e-15, "Frac(%v)", tt.x)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 1.0)
	}
}

func TestSinc(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(0), 0)
	assert.InDelta(t, 0.0, Sinc(math.Pi), 1e-15)
	assert.InDelta(t, 2/math.Pi, Sinc(math.Pi/2), 1e-15)
}

// BenchmarkBesselI0 benchmarks BesselI0 at a typical window argument.
func BenchmarkBesselI0(b *testing.B) {
	x := 7.5
	for b.Loop() {
		_ = BesselI0(x)
	}
}
