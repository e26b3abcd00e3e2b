// Package periodicity estimates how periodic a block of samples is at each
// candidate lag, and locates the peaks of the resulting curve.
package periodicity

import (
	"fmt"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// degenerateEnergy is the fraction of the window energy below which the
// running square-sum M(d) is treated as zero. The incremental update
// accumulates rounding error of roughly this order.
const degenerateEnergy = 1e-12

// Estimator computes autocorrelation, square-difference (SDF) and normalized
// square-difference (NSDF) curves of n-sample blocks for lags 0..k-1 via FFT.
//
// All scratch buffers are allocated once at construction; the slices returned
// by Autocorrelation and Process alias internal storage and are overwritten by
// the next call. An Estimator is not safe for concurrent use.
type Estimator struct {
	n, k int

	fft *fourier.FFT

	padded []float64    // input zero-padded to n+k
	spec   []complex128 // forward transform
	conj   []complex128 // conjugate spectrum
	power  []complex128 // power spectrum
	seq    []float64    // inverse transform
	acf    []float64    // normalized autocorrelation, length k
	curve  []float64    // SDF or NSDF output, length k

	energyScale float64 // converts x² into normalized autocorrelation units
}

// NewEstimator creates an estimator for blocks of n samples and k lags (1 ≤ k ≤ n).
func NewEstimator(n, k int) (*Estimator, error) {
	if n < 1 || k < 1 || k > n {
		return nil, fmt.Errorf("invalid estimator size: n=%d, k=%d (need 1 <= k <= n)", n, k)
	}

	size := n + k
	bins := size/2 + 1

	return &Estimator{
		n:      n,
		k:      k,
		fft:    fourier.NewFFT(size),
		padded: make([]float64, size),
		spec:   make([]complex128, bins),
		conj:   make([]complex128, bins),
		power:  make([]complex128, bins),
		seq:    make([]float64, size),
		acf:    make([]float64, k),
		curve:  make([]float64, k),
	}, nil
}

// Size returns the block length n.
func (e *Estimator) Size() int { return e.n }

// Lags returns the number of lags k.
func (e *Estimator) Lags() int { return e.k }

// Autocorrelation returns r(d)/r(0) for d in [0, k). Blocks shorter than n are
// zero-padded; longer blocks are truncated. An all-zero block yields an
// all-zero curve.
//
// Padding to n+k keeps the circular correlation from wrapping for every lag
// that is returned.
func (e *Estimator) Autocorrelation(x []float64) []float64 {
	clear(e.padded)
	copy(e.padded[:e.n], x)

	e.spec = e.fft.Coefficients(e.spec, e.padded)
	for i, v := range e.spec {
		e.conj[i] = cmplx.Conj(v)
	}
	c128.Mul(e.power, e.spec, e.conj)
	e.seq = e.fft.Sequence(e.seq, e.power)

	// The inverse transform is unnormalized (scaled by n+k). Dividing by lag 0
	// removes that factor along with the signal energy.
	r0 := e.seq[0]
	if r0 == 0 {
		copy(e.acf, e.seq[:e.k])
		e.energyScale = 1
		return e.acf
	}

	f64.Scale(e.acf, e.seq[:e.k], 1/r0)
	e.energyScale = float64(len(e.seq)) / r0
	return e.acf
}

// Process computes the square-difference function of x over lags [0, k):
//
//	SDF(d) = Σ (x[j] - x[j+d])² = M(d) - 2·r(d),  M(d) = Σ (x[j]² + x[j+d]²)
//
// in units normalized by r(0). When normalize is true it returns the NSDF,
// 1 - SDF(d)/M(d) = 2·r(d)/M(d), which lies in [-1, 1] regardless of signal
// level and is 0 wherever M(d) vanishes.
func (e *Estimator) Process(x []float64, normalize bool) []float64 {
	r := e.Autocorrelation(x)
	data := e.padded[:e.n]

	m := 2 * r[0]
	floor := m * degenerateEnergy
	for d := range e.k {
		if d > 0 {
			m -= (data[d-1]*data[d-1] + data[e.n-d]*data[e.n-d]) * e.energyScale
		}

		switch {
		case !normalize:
			e.curve[d] = m - 2*r[d]
		case m <= floor:
			e.curve[d] = 0
		default:
			e.curve[d] = 2 * r[d] / m
		}
	}

	return e.curve
}
