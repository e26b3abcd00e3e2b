package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-pitch/internal/testutil"
)

func TestTrackMono(t *testing.T) {
	cfg := DefaultConfig(testRate)
	input := testutil.Sine(int(testRate)/2, testToneHz, testRate)

	frames, err := TrackMono(input, cfg)
	require.NoError(t, err)

	// (24000 - 2619) / 1703 + 1
	require.Len(t, frames, 13)
	for i, f := range frames {
		assert.Equal(t, i*1703, f.Offset)
		assert.True(t, f.HasNote, "frame %d", i)
		assert.InDelta(t, float64(NoteFromHz(testToneHz)), float64(f.Note), centsTol, "frame %d", i)
	}
	assert.InDelta(t, 1703/testRate, frames[1].Time(testRate), 1e-12)
}

func TestTrackMono_Decimated(t *testing.T) {
	cfg := DefaultConfig(testRate)
	cfg.Decimation = 4

	frames, err := TrackMono(testutil.Sine(int(testRate), testToneHz, testRate), cfg)
	require.NoError(t, err)
	require.Greater(t, len(frames), 2)

	hop := 655 - 229
	assert.Equal(t, 4*hop, frames[1].Offset)
}

func TestTrackMono_InvalidConfig(t *testing.T) {
	frames, err := TrackMono([]float64{1, 2, 3}, Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, frames)
}

func TestTrackMono_ShortInput(t *testing.T) {
	frames, err := TrackMono(make([]float64, 100), DefaultConfig(testRate))
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestCorrectMono(t *testing.T) {
	input := testutil.Sine(int(testRate), 200, testRate)

	out, err := CorrectMono(input, DefaultConfig(testRate), Semitones(12))
	require.NoError(t, err)
	require.Len(t, out, len(input))
	testutil.AssertNoNaNOrInf(t, out)

	skip := 2 * 2619
	testutil.AssertRelativeError(t, 400, medianNote(t, out[skip:]).Hz(), 0.03)
}

func TestCorrectMono_Empty(t *testing.T) {
	out, err := CorrectMono(nil, DefaultConfig(testRate), Identity)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCorrectMono_Errors(t *testing.T) {
	_, err := CorrectMono([]float64{0}, DefaultConfig(testRate), nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
