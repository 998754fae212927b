package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartNotation(t *testing.T) {
	b, side, err := ParseBoard(StartNotation)
	require.NoError(t, err)
	assert.Equal(t, NewBoard(), b)
	assert.Equal(t, Black, side)
	assert.Equal(t, StartNotation, NewBoard().Notation(Black))
}

func TestNotationRoundTrip(t *testing.T) {
	s := NewStartState()
	for _, m := range []Square{F5, D6, C3, D3, C4} {
		require.NoError(t, s.Play(m))
	}

	b, side, err := ParseBoard(s.Notation())
	require.NoError(t, err)
	assert.Equal(t, s.Board(), b)
	assert.Equal(t, s.Side(), side)
}

func TestParseBoardLenient(t *testing.T) {
	// Rows on separate lines, alternative cell characters.
	var rows []string
	for i := 0; i < 8; i++ {
		rows = append(rows, StartNotation[i*8:i*8+8])
	}
	grid := strings.Join(rows, "\n")
	grid = strings.ReplaceAll(grid, "-", ".")
	grid = strings.ReplaceAll(grid, "X", "b")
	grid = strings.ReplaceAll(grid, "O", "w")

	b, side, err := ParseBoard(grid + "\nO")
	require.NoError(t, err)
	assert.Equal(t, NewBoard(), b)
	assert.Equal(t, White, side)
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short", StartNotation[:40]},
		{"bad cell", "?" + StartNotation[1:]},
		{"bad side", StartNotation[:64] + "Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseBoard(tc.in)
			assert.ErrorIs(t, err, ErrInvalidNotation)
		})
	}
}
