package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the subset of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec  mp3Reader
	rate int
	buf  []byte
}

func newMP3Source(r io.Reader) (*mp3Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	return &mp3Source{dec: dec, rate: dec.SampleRate()}, nil
}

func (s *mp3Source) SampleRate() int { return s.rate }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) ReadSamples(dst []float64) (int, error) {
	need := len(dst) * mp3BytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	samples := decodeInt16LE(dst, s.buf[:n-n%mp3BytesPerSample])
	if samples == 0 && err != nil {
		return 0, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	return samples, err
}

// decodeInt16LE converts little-endian int16 PCM bytes into dst and returns
// the number of samples written.
func decodeInt16LE(dst []float64, b []byte) int {
	n := len(b) / mp3BytesPerSample
	for i := range n {
		dst[i] = float64(int16(binary.LittleEndian.Uint16(b[2*i:]))) / maxInt16
	}
	return n
}
