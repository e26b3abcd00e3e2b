package filter

import (
	"math"

	"github.com/tphakala/go-audio-pitch/internal/mathutil"
)

// windowPosition maps tap k of a length-n window to 2(k-mid)/n, where
// mid = (n-1)/2. The end taps land just inside ±1.
func windowPosition(k, n int) float64 {
	mid := float64(n-1) / 2
	return 2 * (float64(k) - mid) / float64(n)
}

// CoshWindow generates a cosh window of the specified length:
//
//	w[k] = cosh(α·sqrt(1 - x²)) / cosh(α),  x = 2(k - mid)/length
//
// It approximates a Kaiser window with β = α without evaluating Bessel
// functions. Use mathutil.CoshAlpha to derive α from a stopband attenuation.
func CoshWindow(length int, alpha float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	norm := math.Cosh(alpha)
	for k := range window {
		x := windowPosition(k, length)
		window[k] = math.Cosh(alpha*math.Sqrt(1-x*x)) / norm
	}
	return window
}

// KaiserWindow generates a Kaiser window of the specified length and β parameter:
//
//	w[k] = I₀(β·sqrt(1 - x²)) / I₀(β),  x = 2(k - mid)/length
//
// The window is symmetric: w[k] = w[length-1-k].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	i0Beta := mathutil.BesselI0(beta)
	for k := range window {
		x := windowPosition(k, length)
		window[k] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}
	return window
}

// makeWindow builds the window selected by spec for a prototype of the given length.
func makeWindow(spec Spec, length int) []float64 {
	if spec.Window == WindowKaiser {
		return KaiserWindow(length, mathutil.KaiserBeta(spec.Attenuation))
	}
	return CoshWindow(length, mathutil.CoshAlpha(spec.Attenuation))
}
