// Package testutil provides reusable test helpers and signal generators for
// pitch tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	WindowTolerance  = 1e-10
	CurveTolerance   = 1e-9
)

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero value", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertSlicesInDelta verifies element-wise closeness of two equal-length slices.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance, "mismatch at index %d", i) {
			return false
		}
	}
	return true
}

// Sine returns n samples of a unit-amplitude sine at freq Hz.
func Sine(n int, freq, sampleRate float64) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = math.Sin(w * float64(i))
	}
	return out
}

// Sawtooth returns n samples of a naive sawtooth in [-1, 1) at freq Hz.
// Its rich harmonic content exercises octave-error handling.
func Sawtooth(n int, freq, sampleRate float64) []float64 {
	out := make([]float64, n)
	step := freq / sampleRate
	phase := 0.0
	for i := range out {
		out[i] = 2*phase - 1
		phase += step
		phase -= math.Floor(phase)
	}
	return out
}

// Noise returns n samples of deterministic white noise in [-1, 1).
func Noise(n int, seed uint32) []float64 {
	out := make([]float64, n)
	s := seed | 1
	for i := range out {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		out[i] = float64(s)/float64(math.MaxUint32)*2 - 1
	}
	return out
}

// SecondDifference returns |x[i-1] - 2x[i] + x[i+1]| at every interior index.
func SecondDifference(x []float64) []float64 {
	if len(x) < 3 {
		return nil
	}
	out := make([]float64, len(x)-2)
	for i := 1; i < len(x)-1; i++ {
		out[i-1] = math.Abs(x[i-1] - 2*x[i] + x[i+1])
	}
	return out
}
