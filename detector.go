package pitch

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-pitch/internal/engine"
	"github.com/tphakala/go-audio-pitch/internal/filter"
	"github.com/tphakala/go-audio-pitch/internal/periodicity"
)

// Detection is the result of analysing one window.
type Detection struct {
	// Note is the detected pitch. Valid only when HasNote is set.
	Note Note

	// HasNote reports whether the pitch was inside the configured range and
	// clear enough to report.
	HasNote bool

	// Period is the best period estimate in input samples, or 0 when there
	// is none. A period is kept for in-range pitches even when the clarity
	// is too low to report a note.
	Period float64

	// Clarity is the NSDF value of the selected peak, 0 when no peak was selected.
	Clarity float64
}

// HasPeriod reports whether a period estimate is available.
func (d Detection) HasPeriod() bool {
	return d.Period > 0
}

// Detector tracks the fundamental period of a monophonic sample stream over
// overlapping windows.
//
// Samples accumulate until the window is full; each full window can be
// analysed with Detect, after which the oldest samples are dropped so that
// only the newest overlap remain. A Detector is not safe for concurrent use.
type Detector struct {
	cfg Config

	rate       float64 // analysis sample rate
	decimation int
	decimator  *engine.Resampler[float64]

	size    int
	overlap int
	maxLag  int

	buf   []float64
	est   *periodicity.Estimator
	peaks []periodicity.Peak
	curve []float64

	last    Detection
	windows int64
}

// NewDetector creates a detector. The window holds WindowPeriods periods of
// cfg.MinNote; the overlap is cfg.Overlap of the window, rounded down.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rate := cfg.analysisRate()
	longest := cfg.MinNote.Period(rate)
	size := cfg.windowSize()
	overlap := int(math.Floor(float64(size) * cfg.Overlap))
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than window %d", ErrInvalidConfig, overlap, size)
	}
	maxLag := min(size, int(math.Ceil(longest))+extraLags)

	est, err := periodicity.NewEstimator(size, maxLag)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	d := &Detector{
		cfg:        cfg,
		rate:       rate,
		decimation: cfg.decimation(),
		size:       size,
		overlap:    overlap,
		maxLag:     maxLag,
		buf:        make([]float64, 0, size),
		est:        est,
	}

	if d.decimation > 1 {
		spec := filter.Spec{
			Attenuation: decimationAttenuation,
			Cutoff:      decimationCutoff,
			Order:       decimationOrder,
			Window:      filter.WindowCosh,
		}
		d.decimator, err = engine.NewResampler[float64](1, d.decimation, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to create decimator: %w", err)
		}
	}

	return d, nil
}

// AddSample appends one input sample and reports whether it completed a
// window. When the window was already full, the oldest WindowSize-OverlapSize
// samples are discarded first. With decimation, only every Decimation-th
// input reaches the window.
func (d *Detector) AddSample(x float64) bool {
	if d.decimator != nil {
		y, ok := d.decimator.ResampleDown(x)
		if !ok {
			return false
		}
		x = y
	}

	if len(d.buf) == d.size {
		copy(d.buf, d.buf[d.size-d.overlap:])
		d.buf = d.buf[:d.overlap]
	}
	d.buf = append(d.buf, x)

	return len(d.buf) == d.size
}

// Ready reports whether the window is full.
func (d *Detector) Ready() bool {
	return len(d.buf) == d.size
}

// Detect analyses the current window. It returns ErrNotReady until the
// first window has filled.
//
// The NSDF of the window is peak-picked, ignoring the lobe at lag 0. Fewer
// than two candidate peaks means no detection. Otherwise the first peak
// within PeakThreshold of the strongest one is the period, kept if its note
// lies in [MinNote, MaxNote] and reported as a note if its clarity also
// exceeds ClarityThreshold.
func (d *Detector) Detect() (Detection, error) {
	if !d.Ready() {
		return Detection{}, ErrNotReady
	}

	d.curve = d.est.Process(d.buf, true)
	d.peaks = periodicity.AppendPeaks(d.peaks[:0], d.curve)
	d.windows++

	var det Detection
	if len(d.peaks) >= 2 {
		candidates := d.peaks
		if candidates[0].Lag == 0 {
			candidates = candidates[1:]
		}

		if p, ok := periodicity.SelectPeak(candidates, PeakThreshold); ok && p.Lag > 0 {
			det.Clarity = p.Value
			note := NoteFromPeriod(p.Lag, d.rate)
			if note >= d.cfg.MinNote && note <= d.cfg.MaxNote {
				det.Period = p.Lag * float64(d.decimation)
				if p.Value > ClarityThreshold {
					det.Note = note
					det.HasNote = true
				}
			}
		}
	}

	d.last = det
	return det, nil
}

// Process adds a sample and, when it completes a window, runs Detect.
// It reports whether a new detection was produced.
func (d *Detector) Process(x float64) (Detection, bool) {
	if !d.AddSample(x) {
		return Detection{}, false
	}
	det, err := d.Detect()
	return det, err == nil
}

// Reset clears the window and the last detection.
func (d *Detector) Reset() {
	d.buf = d.buf[:0]
	d.curve = nil
	d.last = Detection{}
	d.windows = 0
	if d.decimator != nil {
		d.decimator.Reset()
	}
}

// Last returns the most recent detection.
func (d *Detector) Last() Detection { return d.last }

// Curve returns the NSDF of the most recent window, indexed by lag at the
// analysis rate. It is overwritten by the next Detect.
func (d *Detector) Curve() []float64 { return d.curve }

// Buffer returns the samples currently in the window.
func (d *Detector) Buffer() []float64 { return d.buf }

// WindowSize returns the window length in analysis samples.
func (d *Detector) WindowSize() int { return d.size }

// OverlapSize returns how many samples carry over between windows.
func (d *Detector) OverlapSize() int { return d.overlap }

// HopSize returns how many new samples each window adds.
func (d *Detector) HopSize() int { return d.size - d.overlap }

// MaxLag returns the length of the similarity curve.
func (d *Detector) MaxLag() int { return d.maxLag }

// SampleRate returns the analysis sample rate.
func (d *Detector) SampleRate() float64 { return d.rate }

// Windows returns how many windows have been analysed.
func (d *Detector) Windows() int64 { return d.windows }

// Config returns the detector's configuration.
func (d *Detector) Config() Config { return d.cfg }
