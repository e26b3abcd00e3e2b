package engine

// Rational approximation constants
const (
	// maxDenominator bounds the denominators tried by RationalApprox
	// (exclusive), which also bounds the resampler's phase count.
	maxDenominator = 200
)
