package mathutil

// Bessel series constants
const (
	besselMaxTerms  = 64    // Upper bound on series terms for I₀
	besselTolerance = 1e-17 // Relative size at which a term stops contributing
)

// Kaiser window formula constants
// From Kaiser & Schafer's empirical formulas
const (
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	kaiserBetaHighCoeff1 = 0.1102 // Coefficient for high attenuation
	kaiserBetaHighOffset = 8.7    // Offset for high attenuation

	kaiserBetaMediumCoeff1 = 0.5842  // Primary coefficient for medium attenuation
	kaiserBetaMediumPower  = 0.4     // Power for medium attenuation formula
	kaiserBetaMediumCoeff2 = 0.07886 // Secondary coefficient for medium attenuation
)

// Cosh window shape polynomial, fitted against stopband attenuation in dB.
const (
	coshAlphaQuad   = -325.1e-6
	coshAlphaLinear = 0.1677
	coshAlphaConst  = -3.149
)

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)
