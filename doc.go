// Package pitch provides real-time monophonic pitch tracking and pitch
// correction in pure Go.
//
// The detector estimates the fundamental period of a sample stream from
// overlapping windows using the normalized square-difference function (NSDF)
// computed by FFT autocorrelation, with parabolic peak refinement. The
// corrector resamples every window by a ratio chosen by a pluggable Policy
// through a rational polyphase resampler, and cross-fades consecutive
// windows with phase alignment so the output stays continuous.
//
// # Quick Start
//
// Detect the pitch of a buffer:
//
//	frames, err := pitch.TrackMono(samples, pitch.DefaultConfig(48000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range frames {
//	    if f.HasNote {
//	        fmt.Println(f.Note)
//	    }
//	}
//
// Snap a voice to the nearest semitone, sample by sample:
//
//	c, err := pitch.NewCorrector(pitch.DefaultConfig(48000), pitch.Quantize{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, x := range input {
//	    if chunk, ok := c.Process(x); ok {
//	        play(chunk)
//	    }
//	}
//
// # Notes
//
// Pitches are expressed as [Note] values in cents relative to A4 (440 Hz),
// so A2 is -2400 and C5 is +300. [ParseNote] accepts names like "C#3".
//
// # Policies
//
// A [Policy] maps each window's detection to a frequency ratio:
//
//   - [Identity] and [FixedRatio]: constant transposition.
//   - [Quantize]: snap to a grid of cents (semitones by default).
//   - [Scale]: snap to the degrees of a musical scale.
//   - [PolicyFunc]: any function.
//
// Ratios are clamped to [MinRatio, MaxRatio] and realized as the closest
// fraction with a denominator below 200.
//
// # Latency and Cost
//
// Output lags input by one analysis window (six periods of the lowest
// configured note). All work for a window happens on the sample that
// completes it, so real-time hosts should budget a burst of O(n log n) work
// once per hop rather than evenly per sample.
//
// # Thread Safety
//
// Detector and Corrector instances are not safe for concurrent use. Use one
// instance per stream.
package pitch
