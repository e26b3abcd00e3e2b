package filter

import (
	"math"
	"math/cmplx"
)

const defaultResponsePoints = 512

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	Frequencies []float64 // Normalized frequency, 0 to 0.5 (Nyquist)
	Magnitude   []float64 // Linear magnitude
	Phase       []float64 // Radians
}

// ComputeFrequencyResponse evaluates H(e^jω) = Σ h[n]·e^(-jωn) at numPoints
// frequencies from DC up to (but not including) Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(2*numPoints)
		omega := 2 * math.Pi * freq

		var h complex128
		for n, c := range coeffs {
			h += complex(c, 0) * cmplx.Rect(1, -omega*float64(n))
		}

		response.Frequencies[k] = freq
		response.Magnitude[k] = cmplx.Abs(h)
		response.Phase[k] = cmplx.Phase(h)
	}

	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
