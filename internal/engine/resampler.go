// Package engine implements the streaming rational polyphase resampler.
package engine

import (
	"fmt"

	"github.com/tphakala/go-audio-pitch/internal/filter"
	"github.com/tphakala/go-audio-pitch/internal/simdops"
	"github.com/tphakala/simd/cpu"
)

// Resampler converts a sample stream by the rational factor Up/Down using a
// polyphase filter bank. Conceptually the input is zero-stuffed by Up,
// lowpass filtered, and every Down-th sample is kept; only the sub-filter
// that lands on a kept sample is ever evaluated.
//
// Output i lies at upsampled position i·Down, so it represents input time
// (i·Down - c)/Up where c is the prototype's center (see OutputTime).
//
// Type parameter F must be float32 or float64. A Resampler is not safe for
// concurrent use.
type Resampler[F simdops.Float] struct {
	up    int
	down  int
	order int

	bank   *filter.Bank
	phases [][]F // bank sub-filters converted to F

	// Circular delay line; delay[pos] holds the newest sample and older
	// samples follow at increasing (wrapping) indices.
	delay []F
	pos   int

	// phase is the next output's offset from the newest input on the
	// upsampled grid. Between calls it stays in [0, up).
	phase int

	ops *simdops.Ops[F]

	// Statistics
	samplesIn  int64
	samplesOut int64
}

// NewResampler creates a resampler for the factor up/down with the given
// filter design. Both factors must be positive.
func NewResampler[F simdops.Float](up, down int, spec filter.Spec) (*Resampler[F], error) {
	if up < 1 || down < 1 {
		return nil, fmt.Errorf("resampling factors must be positive: up=%d, down=%d", up, down)
	}

	bank, err := filter.DesignBank(up, down, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to design filter bank: %w", err)
	}

	phases := make([][]F, up)
	for p, sub := range bank.Phases {
		phases[p] = simdops.Convert[F](sub)
	}

	return &Resampler[F]{
		up:     up,
		down:   down,
		order:  spec.Order,
		bank:   bank,
		phases: phases,
		delay:  make([]F, spec.Order),
		ops:    simdops.For[F](),
	}, nil
}

// Resample pushes one input sample and calls emit for every output sample it
// produces, in order: zero or more when Up < Down, at least one otherwise.
// emit runs synchronously and must not call back into the resampler.
func (r *Resampler[F]) Resample(sample F, emit func(F)) {
	r.samplesIn++
	r.delay[r.pos] = sample

	for r.phase < r.up {
		out := r.convolve(r.phases[r.phase])
		r.phase += r.down
		r.samplesOut++
		emit(out)
	}

	r.advance()
}

// ResampleDown pushes one input sample into a resampler with Up ≤ Down, which
// produces at most one output per input. It reports whether an output was produced.
func (r *Resampler[F]) ResampleDown(sample F) (F, bool) {
	if r.up > r.down {
		panic("engine: ResampleDown requires up <= down")
	}

	r.samplesIn++
	r.delay[r.pos] = sample

	var out F
	ok := r.phase < r.up
	if ok {
		out = r.convolve(r.phases[r.phase])
		r.phase += r.down
		r.samplesOut++
	}

	r.advance()
	return out, ok
}

// Process resamples a block and appends the output to dst.
func (r *Resampler[F]) Process(dst, input []F) []F {
	emit := func(y F) { dst = append(dst, y) }
	for _, x := range input {
		r.Resample(x, emit)
	}
	return dst
}

// convolve evaluates one sub-filter against the delay line, walking forward
// from the newest sample with wraparound. The wrap splits the dot product
// into two contiguous SIMD segments.
func (r *Resampler[F]) convolve(filt []F) F {
	head := r.order - r.pos
	out := r.ops.DotProductUnsafe(r.delay[r.pos:], filt[:head])
	if r.pos > 0 {
		out += r.ops.DotProductUnsafe(r.delay[:r.pos], filt[head:])
	}
	return out
}

// advance consumes one input period of phase and moves the write cursor back.
func (r *Resampler[F]) advance() {
	r.phase -= r.up
	if r.pos == 0 {
		r.pos = r.order - 1
	} else {
		r.pos--
	}
}

// Reset clears the delay line, phase and statistics.
func (r *Resampler[F]) Reset() {
	clear(r.delay)
	r.pos = 0
	r.phase = 0
	r.samplesIn = 0
	r.samplesOut = 0
}

// Up returns the interpolation factor.
func (r *Resampler[F]) Up() int { return r.up }

// Down returns the decimation factor.
func (r *Resampler[F]) Down() int { return r.down }

// Order returns the number of taps per sub-filter.
func (r *Resampler[F]) Order() int { return r.order }

// Bank returns the filter bank.
func (r *Resampler[F]) Bank() *filter.Bank { return r.bank }

// Ratio returns the output/input rate ratio Up/Down.
func (r *Resampler[F]) Ratio() float64 {
	return float64(r.up) / float64(r.down)
}

// GroupDelay returns the filter's delay in input samples.
func (r *Resampler[F]) GroupDelay() float64 {
	return r.bank.Center() / float64(r.up)
}

// Latency returns the filter's delay in output samples.
func (r *Resampler[F]) Latency() float64 {
	return r.bank.Center() / float64(r.down)
}

// OutputTime returns the input time, in input samples since the first
// sample after construction or Reset, that output i represents.
func (r *Resampler[F]) OutputTime(i int) float64 {
	return (float64(i*r.down) - r.bank.Center()) / float64(r.up)
}

// Statistics returns processing statistics.
func (r *Resampler[F]) Statistics() map[string]int64 {
	return map[string]int64{
		"samplesIn":  r.samplesIn,
		"samplesOut": r.samplesOut,
	}
}

// SIMDInfo returns the SIMD features used by the dot product kernels.
func (r *Resampler[F]) SIMDInfo() string {
	return cpu.Info()
}
