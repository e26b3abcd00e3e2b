package pitch

// Frame is a detection together with the input position of its window.
type Frame struct {
	// Offset is the index of the window's first input sample.
	Offset int

	Detection
}

// Time returns the window start in seconds.
func (f Frame) Time(sampleRate float64) float64 {
	return float64(f.Offset) / sampleRate
}

// TrackMono runs a detector over a whole buffer and returns one frame per window.
func TrackMono(input []float64, cfg Config) ([]Frame, error) {
	d, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}

	hop := d.HopSize() * d.decimation

	var frames []Frame
	for _, x := range input {
		if det, ok := d.Process(x); ok {
			frames = append(frames, Frame{Offset: len(frames) * hop, Detection: det})
		}
	}
	return frames, nil
}

// CorrectMono re-pitches a whole buffer and returns output of the same
// length. The stream is flushed with one window of silence so the final
// input samples reach the output.
func CorrectMono(input []float64, cfg Config, policy Policy) ([]float64, error) {
	c, err := NewCorrector(cfg, policy)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(input)+c.Latency())
	out = c.ProcessBlock(out, input)
	out = c.ProcessBlock(out, make([]float64, c.Latency()))

	return out[:len(input)], nil
}
