package periodicity

// DefaultPeakThreshold is the fraction of the strongest peak that an
// earlier peak must exceed to be selected.
const DefaultPeakThreshold = 0.9

// Peak is a local maximum of a similarity curve at a fractional lag.
type Peak struct {
	Lag   float64
	Value float64
}

// ParabolicFitPeak fits a parabola through three equally spaced samples and
// returns the vertex offset from the center sample and the vertex value.
// A flat or linear neighbourhood (zero curvature) returns (0, center).
func ParabolicFitPeak(left, center, right float64) (offset, value float64) {
	denom := left - 2*center + right
	if denom == 0 {
		return 0, center
	}
	offset = 0.5 * (left - right) / denom
	value = center - 0.25*offset*(left-right)
	return offset, value
}

// FindPeaks returns one peak per positive region of curve, in increasing lag
// order. A region starts at the first positive value and ends when the curve
// goes negative; a region still open at the end of the curve also counts.
// Interior peaks are refined by ParabolicFitPeak; peaks on the first or last
// index are returned as is.
func FindPeaks(curve []float64) []Peak {
	return AppendPeaks(nil, curve)
}

// AppendPeaks is like FindPeaks but appends to peaks, so a caller can reuse
// one slice across windows.
func AppendPeaks(peaks []Peak, curve []float64) []Peak {
	best := -1

	for i, v := range curve {
		switch {
		case v > 0:
			if best < 0 || v > curve[best] {
				best = i
			}
		case v < 0 && best >= 0:
			peaks = append(peaks, refine(curve, best))
			best = -1
		}
	}
	if best >= 0 {
		peaks = append(peaks, refine(curve, best))
	}

	return peaks
}

func refine(curve []float64, i int) Peak {
	if i == 0 || i == len(curve)-1 {
		return Peak{Lag: float64(i), Value: curve[i]}
	}
	offset, value := ParabolicFitPeak(curve[i-1], curve[i], curve[i+1])
	return Peak{Lag: float64(i) + offset, Value: value}
}

// SelectPeak returns the first peak whose value exceeds threshold times the
// largest peak value. It reports false when peaks is empty or no peak is positive.
func SelectPeak(peaks []Peak, threshold float64) (Peak, bool) {
	if len(peaks) == 0 {
		return Peak{}, false
	}

	peakMax := peaks[0].Value
	for _, p := range peaks[1:] {
		peakMax = max(peakMax, p.Value)
	}
	if peakMax <= 0 {
		return Peak{}, false
	}

	limit := threshold * peakMax
	for _, p := range peaks {
		if p.Value > limit {
			return p, true
		}
	}

	// Only reachable for threshold ≥ 1.
	return Peak{}, false
}
