package audiofile

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the subset of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec oggReader
	buf []float32
}

func newVorbisSource(r io.Reader) (*vorbisSource, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Ogg Vorbis: %w", err)
	}
	return &vorbisSource{dec: dec}, nil
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) Close() error    { return nil }

// ReadSamples reads whole frames only.
func (s *vorbisSource) ReadSamples(dst []float64) (int, error) {
	channels := s.dec.Channels()
	want := len(dst) - len(dst)%channels
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf)
	n = min(n, want)
	for i, v := range s.buf[:n] {
		dst[i] = float64(v)
	}

	if n == 0 && err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("failed to decode Ogg Vorbis data: %w", err)
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}
