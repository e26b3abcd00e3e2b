package audiofile

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testRate   = 44100
	quantError = 1.0 / maxInt16
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"voice.wav", FormatWAV, false},
		{"VOICE.WAV", FormatWAV, false},
		{"take.wave", FormatWAV, false},
		{"song.mp3", FormatMP3, false},
		{"song.ogg", FormatVorbis, false},
		{"song.oga", FormatVorbis, false},
		{"song.flac", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteWAV_RoundTrip(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/testRate)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, testRate, samples))
	require.NoError(t, f.Close())

	got, rate, err := ReadMono(path)
	require.NoError(t, err)
	assert.Equal(t, testRate, rate)
	require.Len(t, got, len(samples))
	for i := range samples {
		require.InDelta(t, samples[i], got[i], 2*quantError, "sample %d", i)
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "audio.flac"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(filepath.Join(dir, "missing.wav"))
	require.Error(t, err)

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not a RIFF file"), 0o600))
	_, err = Open(bogus)
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestDecode_UnknownFormat(t *testing.T) {
	src, err := Decode(bytes.NewReader(nil), Format("flac"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, src)
}

func TestFloatToInt16(t *testing.T) {
	got := FloatToInt16(nil, []float64{0, 0.5, -0.5, 1, -1, 2, -2})
	assert.Equal(t, []int{0, 16384, -16384, 32767, -32768, 32767, -32768}, got)
}

func TestDecodeInt16LE(t *testing.T) {
	b := make([]byte, 8)
	for i, v := range []int16{0, 16384, -16384, math.MinInt16} {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}

	dst := make([]float64, 4)
	n := decodeInt16LE(dst, b)
	assert.Equal(t, 4, n)
	assert.Equal(t, []float64{0, 0.5, -0.5, -1}, dst)
}

// fakeMP3 serves a fixed PCM byte stream.
type fakeMP3 struct {
	r    *bytes.Reader
	rate int
}

func (f *fakeMP3) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *fakeMP3) SampleRate() int            { return f.rate }

func TestMP3Source_ReadSamples(t *testing.T) {
	pcm := make([]byte, 6*mp3BytesPerSample)
	for i := range 6 {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(i*1000)))
	}
	src := &mp3Source{dec: &fakeMP3{r: bytes.NewReader(pcm), rate: testRate}, rate: testRate}
	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, testRate, src.SampleRate())

	dst := make([]float64, 4)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.InDelta(t, 3000/maxInt16, dst[3], 1e-12)

	n, err = src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = src.ReadSamples(dst)
	assert.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)
}

// fakeSource serves interleaved samples in fixed-size reads.
type fakeSource struct {
	data     []float64
	channels int
	closed   bool
}

func (f *fakeSource) SampleRate() int { return testRate }
func (f *fakeSource) Channels() int   { return f.channels }
func (f *fakeSource) Close() error    { f.closed = true; return nil }

func (f *fakeSource) ReadSamples(dst []float64) (int, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestMonoMixer(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		data     []float64
		want     []float64
	}{
		{"mono passthrough", 1, []float64{0.1, 0.2, 0.3}, []float64{0.1, 0.2, 0.3}},
		{"stereo", 2, []float64{1, 0, 0.5, 0.5, -1, 1}, []float64{0.5, 0.5, 0}},
		{"three channels", 3, []float64{0.3, 0.3, 0.3, 1, -1, 0.6}, []float64{0.3, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{data: tt.data, channels: tt.channels}
			m := NewMonoMixer(src)
			assert.Equal(t, 1, m.Channels())
			assert.Equal(t, testRate, m.SampleRate())

			got, err := ReadAll(m)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)

			require.NoError(t, m.Close())
			assert.True(t, src.closed)
		})
	}
}
