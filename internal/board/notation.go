package board

import (
	"fmt"
	"strings"
	"unicode"
)

// StartNotation is the notation of the initial position with black to move.
const StartNotation = "---------------------------OX------XO--------------------------- X"

// ParseBoard parses a board in 64-cell notation followed by the side to move.
// Cells are read row by row from a1: 'X' or 'B' black, 'O' or 'W' white, '-' or '.' empty.
// Whitespace anywhere in the string is ignored.
func ParseBoard(s string) (Board, Color, error) {
	cells := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if len(cells) != 65 {
		return Board{}, NoColor, fmt.Errorf("%w: need 64 cells and a side, got %d characters", ErrInvalidNotation, len(cells))
	}

	var black, white Bitboard
	for i := 0; i < 64; i++ {
		switch cells[i] {
		case 'X', 'x', 'B', 'b', '*':
			black |= Square(i).Bit()
		case 'O', 'o', 'W', 'w':
			white |= Square(i).Bit()
		case '-', '.':
		default:
			return Board{}, NoColor, fmt.Errorf("%w: unexpected cell %q at %s", ErrInvalidNotation, cells[i], Square(i))
		}
	}

	var side Color
	switch cells[64] {
	case 'X', 'x', 'B', 'b', '*':
		side = Black
	case 'O', 'o', 'W', 'w':
		side = White
	default:
		return Board{}, NoColor, fmt.Errorf("%w: unexpected side %q", ErrInvalidNotation, cells[64])
	}

	b, err := FromBits(black, white)
	if err != nil {
		return Board{}, NoColor, err
	}
	return b, side, nil
}

// Notation returns the 64-cell notation of the board followed by the side to move.
func (b Board) Notation(side Color) string {
	var sb strings.Builder
	sb.Grow(66)
	for sq := A1; sq <= H8; sq++ {
		sb.WriteString(b.At(sq).String())
	}
	sb.WriteByte(' ')
	sb.WriteByte(side.Char())
	return sb.String()
}
