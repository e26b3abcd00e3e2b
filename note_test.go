package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_Hz(t *testing.T) {
	tests := []struct {
		note Note
		hz   float64
	}{
		{0, 440},
		{-2400, 110},
		{1200, 880},
		{300, 523.2511306011972},
		{-900, 261.6255653005986},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.hz, tt.note.Hz(), 1e-9, "note %v", float64(tt.note))
		assert.InDelta(t, float64(tt.note), float64(NoteFromHz(tt.hz)), 1e-9)
	}
}

func TestNote_Period(t *testing.T) {
	assert.InDelta(t, 100.0, Note(-2400).Period(11000), 1e-12)
	assert.InDelta(t, 0.0, float64(NoteFromPeriod(100, 44000)), 1e-9)
	assert.True(t, math.IsInf(float64(NoteFromHz(0)), -1))
}

func TestNote_Nearest(t *testing.T) {
	tests := []struct {
		note   Note
		name   string
		octave int
		cents  float64
	}{
		{0, "A", 4, 0},
		{-2400, "A", 2, 0},
		{300, "C", 5, 0},
		{-900, "C", 4, 0},
		{-1000, "B", 3, 0},
		{112, "A#", 4, 12},
		{-5700, "C", 0, 0},
		{-5800, "B", -1, 0},
		{-4849, "A", 0, -49},
	}

	for _, tt := range tests {
		name, octave, cents := tt.note.Nearest()
		assert.Equal(t, tt.name, name, "note %v", float64(tt.note))
		assert.Equal(t, tt.octave, octave, "note %v", float64(tt.note))
		assert.InDelta(t, tt.cents, cents, 1e-9, "note %v", float64(tt.note))
	}
}

func TestNote_String(t *testing.T) {
	assert.Equal(t, "A4", Note(0).String())
	assert.Equal(t, "C#3", Note(-2000).Name())
	assert.Equal(t, "A4+12c", Note(12).String())
	assert.Equal(t, "A2-30c", Note(-2430).String())
	assert.Equal(t, "?", Note(math.NaN()).Name())
	assert.Contains(t, Note(math.Inf(1)).String(), "Note(")
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in      string
		want    Note
		wantErr bool
	}{
		{"A4", 0, false},
		{"a4", 0, false},
		{"A2", -2400, false},
		{"C5", 300, false},
		{"C#3", -2000, false},
		{"Db3", -2000, false},
		{"bb2", -2300, false},
		{"B-1", -5800, false},
		{" E4 ", -500, false},
		{"-2400", -2400, false},
		{"150.5", 150.5, false},
		{"", 0, true},
		{"H4", 0, true},
		{"C", 0, true},
		{"C#x", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNote(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidNote)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.want), float64(got), 1e-12)
		})
	}
}

// TestParseNote_RoundTrip tests that every note name parses back to itself.
func TestParseNote_RoundTrip(t *testing.T) {
	for semis := -48; semis <= 36; semis++ {
		n := Note(semis * 100)
		parsed, err := ParseNote(n.Name())
		require.NoError(t, err)
		assert.InDelta(t, float64(n), float64(parsed), 1e-12, "name %s", n.Name())
	}
}
