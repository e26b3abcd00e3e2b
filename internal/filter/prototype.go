package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-pitch/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// DesignPrototype designs the lowpass prototype for an up/down rational
// resampler: a windowed sinc of length spec.Order·up.
//
// The cutoff is spec.Cutoff times the lower of the input and output Nyquist
// frequencies, measured on the upsampled grid: ωc = π·cutoff/max(up, down).
// The taps are scaled so their sum is up, which gives every sub-filter unit
// DC gain on average.
func DesignPrototype(up, down int, spec Spec) ([]float64, error) {
	if up < 1 || down < 1 {
		return nil, fmt.Errorf("invalid ratio %d/%d: factors must be positive", up, down)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	length := spec.Order * up
	wc := math.Pi * spec.Cutoff / float64(max(up, down))
	mid := float64(length-1) / 2

	proto := makeWindow(spec, length)
	for k := range proto {
		proto[k] *= mathutil.Sinc(wc * (float64(k) - mid))
	}

	sum := f64.Sum(proto)
	if sum == 0 {
		return nil, fmt.Errorf("prototype for %d/%d has zero DC gain", up, down)
	}
	f64.Scale(proto, proto, float64(up)/sum)

	return proto, nil
}
