package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-pitch/internal/mathutil"
	"github.com/tphakala/go-audio-pitch/internal/testutil"
)

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Spec)
		wantErr bool
	}{
		{"default", func(*Spec) {}, false},
		{"kaiser", func(s *Spec) { s.Window = WindowKaiser }, false},
		{"attenuation too low", func(s *Spec) { s.Attenuation = 10 }, true},
		{"attenuation too high", func(s *Spec) { s.Attenuation = 300 }, true},
		{"zero cutoff", func(s *Spec) { s.Cutoff = 0 }, true},
		{"cutoff above nyquist", func(s *Spec) { s.Cutoff = 1.2 }, true},
		{"cutoff at nyquist", func(s *Spec) { s.Cutoff = 1 }, false},
		{"order too small", func(s *Spec) { s.Order = 1 }, true},
		{"order too large", func(s *Spec) { s.Order = 4096 }, true},
		{"unknown window", func(s *Spec) { s.Window = Window(7) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultSpec()
			tt.modify(&spec)
			err := spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestWindows_Shape tests symmetry and range of both window families.
func TestWindows_Shape(t *testing.T) {
	lengths := []int{1, 2, 15, 16, 64}

	for _, n := range lengths {
		cosh := CoshWindow(n, mathutil.CoshAlpha(DefaultAttenuation))
		kaiser := KaiserWindow(n, mathutil.KaiserBeta(DefaultAttenuation))

		require.Len(t, cosh, n)
		require.Len(t, kaiser, n)
		testutil.AssertSymmetric(t, cosh, testutil.WindowTolerance)
		testutil.AssertSymmetric(t, kaiser, testutil.WindowTolerance)
		testutil.AssertAllInRange(t, cosh, 0, 1)
		testutil.AssertAllInRange(t, kaiser, 0, 1)
	}

	assert.Empty(t, CoshWindow(0, 1))
	assert.Empty(t, KaiserWindow(-3, 1))

	// Odd windows peak at exactly 1 in the middle.
	assert.InDelta(t, 1.0, CoshWindow(15, 4)[7], testutil.WindowTolerance)
	assert.InDelta(t, 1.0, KaiserWindow(15, 4)[7], testutil.WindowTolerance)
}

func TestDesignPrototype(t *testing.T) {
	tests := []struct {
		name     string
		up, down int
		window   Window
	}{
		{"identity", 1, 1, WindowCosh},
		{"upsample", 3, 2, WindowCosh},
		{"downsample", 2, 3, WindowCosh},
		{"decimate", 1, 4, WindowKaiser},
		{"large", 160, 147, WindowKaiser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultSpec()
			spec.Window = tt.window

			proto, err := DesignPrototype(tt.up, tt.down, spec)
			require.NoError(t, err)

			assert.Len(t, proto, spec.Order*tt.up)
			testutil.AssertSymmetric(t, proto, 1e-12)
			testutil.AssertNoNaNOrInf(t, proto)

			var sum float64
			for _, c := range proto {
				sum += c
			}
			assert.InDelta(t, float64(tt.up), sum, 1e-9, "prototype DC gain must equal up")
		})
	}
}

func TestDesignPrototype_InvalidInput(t *testing.T) {
	_, err := DesignPrototype(0, 1, DefaultSpec())
	require.Error(t, err)

	bad := DefaultSpec()
	bad.Order = 0
	_, err = DesignPrototype(1, 1, bad)
	require.Error(t, err)
}

// TestDecompose tests that every prototype tap lands in sub-filter k mod n.
func TestDecompose(t *testing.T) {
	proto := make([]float64, 23)
	for i := range proto {
		proto[i] = float64(i)
	}

	for _, n := range []int{1, 2, 5, 23} {
		phases := Decompose(proto, n)
		require.Len(t, phases, n)

		total := 0
		for p, sub := range phases {
			total += len(sub)
			for j, c := range sub {
				assert.InDelta(t, proto[p+j*n], c, 0, "n=%d phase=%d tap=%d", n, p, j)
			}
		}
		assert.Equal(t, len(proto), total, "sub-filter lengths must sum to the prototype length")
	}
}

func TestDesignBank(t *testing.T) {
	spec := DefaultSpec()
	bank, err := DesignBank(5, 4, spec)
	require.NoError(t, err)

	assert.Equal(t, 5, bank.Up)
	assert.Equal(t, 4, bank.Down)
	assert.Equal(t, spec.Order*5, bank.TotalTaps())
	assert.InDelta(t, float64(spec.Order*5-1)/2, bank.Center(), 0)

	var gain float64
	for p, sub := range bank.Phases {
		assert.Len(t, sub, spec.Order, "phase %d", p)
		gain += bank.PhaseGain(p)
	}
	assert.InDelta(t, 1.0, gain/5, 1e-9, "average sub-filter gain should be unity")
}

// TestPrototype_FrequencyResponse tests passband flatness and stopband rejection.
func TestPrototype_FrequencyResponse(t *testing.T) {
	const up = 4
	spec := DefaultSpec()

	proto, err := DesignPrototype(up, 1, spec)
	require.NoError(t, err)

	resp := ComputeFrequencyResponse(proto, 256)
	dc := resp.Magnitude[0]
	require.InDelta(t, float64(up), dc, 1e-9)

	passEdge := 0.5 * spec.Cutoff / up * 0.5
	stopStart := 0.5 / up * 1.6

	for k, f := range resp.Frequencies {
		rel := MagnitudeDB(resp.Magnitude[k] / dc)
		switch {
		case f <= passEdge:
			assert.InDelta(t, 0, rel, 1.0, "passband ripple at f=%.4f", f)
		case f >= stopStart:
			assert.Less(t, rel, -35.0, "stopband leak at f=%.4f", f)
		}
	}
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0, MagnitudeDB(1), 1e-12)
	assert.InDelta(t, -20, MagnitudeDB(0.1), 1e-12)
	assert.InDelta(t, -200, MagnitudeDB(0), 1e-12)
}

func TestWindow_String(t *testing.T) {
	assert.Equal(t, "cosh", WindowCosh.String())
	assert.Equal(t, "kaiser", WindowKaiser.String())
	assert.Equal(t, "Window(9)", Window(9).String())
}

// BenchmarkDesignBank benchmarks designing a resampler filter bank.
func BenchmarkDesignBank(b *testing.B) {
	spec := DefaultSpec()
	for b.Loop() {
		_, _ = DesignBank(160, 147, spec)
	}
}
