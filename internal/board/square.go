// Package board implements the Othello board representation using bitboards.
package board

import (
	"fmt"
	"strings"
)

// Square represents a cell on the Othello board (0-63), or the Pass sentinel.
// Cells are numbered row by row starting at the top-left corner: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 cells.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// Pass is played when the side to move has no legal placement.
	Pass Square = 64
)

// Col returns the column of the square (0-7, where 0=a, 7=h).
func (sq Square) Col() int {
	return int(sq) & 7
}

// Row returns the row of the square (0-7, where 0=1, 7=8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Bit returns the single-bit mask of the square. Pass maps to the empty mask.
func (sq Square) Bit() Bitboard {
	if sq >= Pass {
		return Empty
	}
	return 1 << sq
}

// String returns the coordinate of the square (e.g., "d3"), or "pass".
func (sq Square) String() string {
	if sq == Pass {
		return "pass"
	}
	if sq > Pass {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '1'+sq.Row())
}

// NewSquare creates a square from column and row (0-indexed).
func NewSquare(col, row int) Square {
	return Square(row*8 + col)
}

// ParseSquare parses a coordinate (e.g., "d3" or "D3") into a Square.
// "pass" and "ps" parse to Pass.
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" || s == "ps" {
		return Pass, nil
	}
	if len(s) != 2 {
		return Pass, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}

	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'

	if col < 0 || col > 7 || row < 0 || row > 7 {
		return Pass, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}

	return NewSquare(col, row), nil
}

// IsValid returns true if the square is a board cell (not Pass).
func (sq Square) IsValid() bool {
	return sq < Pass
}
