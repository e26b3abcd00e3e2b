package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type wavSource struct {
	dec      *wav.Decoder
	rate     int
	channels int
	scale    float64
	offset   int // unsigned 8-bit PCM is centered on 128
	buf      *audio.IntBuffer
}

func newWAVSource(r io.ReadSeeker) (*wavSource, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("%w: missing format chunk", ErrInvalidWAV)
	}

	s := &wavSource{
		dec:      dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		buf:      &audio.IntBuffer{Format: format},
	}

	switch int(dec.BitDepth) {
	case bitsPerSample8:
		s.scale, s.offset = maxInt8, 128
	case bitsPerSample16:
		s.scale = maxInt16
	case bitsPerSample24:
		s.scale = maxInt24
	case bitsPerSample32:
		s.scale = maxInt32
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, dec.BitDepth)
	}

	return s, nil
}

func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to decode WAV data: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	inv := 1 / s.scale
	for i, v := range s.buf.Data[:n] {
		dst[i] = float64(v-s.offset) * inv
	}
	return n, nil
}

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1] are clipped.
func WriteWAV(w io.WriteSeeker, sampleRate int, samples []float64) error {
	enc := wav.NewEncoder(w, sampleRate, bitsPerSample16, 1, wavPCMFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           FloatToInt16(nil, samples),
		SourceBitDepth: bitsPerSample16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}

// FloatToInt16 appends samples converted to clipped 16-bit integers to dst.
func FloatToInt16(dst []int, samples []float64) []int {
	for _, v := range samples {
		v = min(max(v, -1), 1)
		dst = append(dst, int(min(v*maxInt16, maxInt16-1)))
	}
	return dst
}
