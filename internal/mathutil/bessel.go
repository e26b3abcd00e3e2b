// Package mathutil provides the scalar math used by filter design and pitch
// estimation.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
// This function is used in Kaiser window calculation for filter design.
//
// The power series Σ ((x/2)^k / k!)² converges for every x and the window
// arguments used here stay below ~20, so the series reaches full double
// precision within a few dozen terms.
func BesselI0(x float64) float64 {
	half := math.Abs(x) / halfDivisor
	sum := 1.0
	term := 1.0
	for k := 1; k < besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselTolerance {
			break
		}
	}
	return sum
}

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - For att > 50 dB: β = 0.1102 * (att - 8.7)
//   - For 21 dB ≤ att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - For att < 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	if attenuation > kaiserAttHigh {
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	} else if attenuation >= kaiserAttMedium {
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	}
	return 0.0
}

// CoshAlpha returns the shape parameter of the cosh window for the given
// stopband attenuation in dB: α = -325.1e-6·att² + 0.1677·att - 3.149.
func CoshAlpha(attenuation float64) float64 {
	return coshAlphaQuad*attenuation*attenuation + coshAlphaLinear*attenuation + coshAlphaConst
}

// Sinc returns sin(x)/x with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// Frac returns the fractional part of x in [0, 1), also for negative x.
func Frac(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
