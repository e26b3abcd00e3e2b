// Package audiofile decodes audio files into mono sample streams and writes
// 16-bit WAV output.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by the decoders.
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidWAV        = errors.New("invalid WAV file")
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int

	// Channels count (1 = mono, 2 = stereo).
	Channels() int

	// ReadSamples fills dst with interleaved samples in [-1, 1] and returns
	// the number of values written, not frames. It returns 0 and io.EOF
	// once the stream is exhausted.
	ReadSamples(dst []float64) (int, error)

	// Close releases the underlying file.
	Close() error
}

// Format is a container format key.
type Format string

// Supported formats.
const (
	FormatWAV    Format = "wav"
	FormatMP3    Format = "mp3"
	FormatVorbis Format = "ogg"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	case ".ogg", ".oga":
		return FormatVorbis, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Open opens and decodes a file, choosing the decoder by extension.
// The returned Source owns the file.
func Open(path string) (Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	src, err := Decode(f, format)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileSource{Source: src, file: f}, nil
}

// Decode wraps r in a decoder for format.
func Decode(r io.ReadSeeker, format Format) (Source, error) {
	var (
		src Source
		err error
	)
	switch format {
	case FormatWAV:
		src, err = newWAVSource(r)
	case FormatMP3:
		src, err = newMP3Source(r)
	case FormatVorbis:
		src, err = newVorbisSource(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ReadMono decodes the whole file at path, mixed down to mono.
func ReadMono(path string) (samples []float64, sampleRate int, err error) {
	src, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if closeErr := src.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	samples, err = ReadAll(NewMonoMixer(src))
	if err != nil {
		return nil, 0, err
	}
	return samples, src.SampleRate(), nil
}

// ReadAll drains src.
func ReadAll(src Source) ([]float64, error) {
	var out []float64
	buf := make([]float64, readChunk*src.Channels())

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}

// fileSource closes the file along with the decoder.
type fileSource struct {
	Source
	file *os.File
}

func (s *fileSource) Close() error {
	srcErr := s.Source.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return srcErr
}
