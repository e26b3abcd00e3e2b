package pitch

// Detection constants
const (
	// WindowPeriods is how many periods of the lowest note fit in one analysis window.
	WindowPeriods = 6

	// ClarityThreshold is the NSDF peak value a detection must exceed before
	// its note is reported.
	ClarityThreshold = 0.8

	// PeakThreshold is the fraction of the strongest NSDF peak an earlier
	// peak must exceed to be taken as the fundamental.
	PeakThreshold = 0.9

	// MinCorrectorOverlap is the smallest overlap fraction the corrector
	// accepts: two periods of the lowest note out of WindowPeriods.
	MinCorrectorOverlap = 2.0 / WindowPeriods

	// maxWindowSize bounds the analysis window to keep very low minimum
	// notes from allocating unbounded buffers.
	maxWindowSize = 1 << 20

	// extraLags is how far past the longest period the similarity curve extends,
	// so a peak at the longest period can still be parabola-fit.
	extraLags = 2
)

// Default configuration
const (
	DefaultMinNote    Note = -2400 // A2, 110 Hz
	DefaultMaxNote    Note = 2400  // A6, 1760 Hz
	DefaultOverlap         = 0.35
	DefaultDecimation      = 1
)

// Detector pre-decimation filter
const (
	decimationAttenuation = 70.0
	decimationCutoff      = 0.8
	decimationOrder       = 32
)

// Correction ratio limits
const (
	MinRatio = 0.25 // Two octaves down
	MaxRatio = 4.0  // Two octaves up
)

// Pitch reference
const (
	ReferenceHz      = 440.0 // A4
	CentsPerOctave   = 1200.0
	CentsPerSemitone = 100.0

	semitonesPerOctave = 12
	referenceOctave    = 4
	referenceIndex     = 9 // A within C-based octave
)

// Common sample rates.
const (
	RateCD  = 44100
	RateDAT = 48000
)
