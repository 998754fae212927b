package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a cell.
// Bit 0 = A1 (top-left), Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type Bitboard uint64

// Column masks
const (
	ColA Bitboard = 0x0101010101010101
	ColH Bitboard = 0x8080808080808080
)

// Row masks
const (
	Row1 Bitboard = 0x00000000000000FF
	Row2 Bitboard = 0x000000000000FF00
	Row8 Bitboard = 0xFF00000000000000
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotColA Bitboard = ^ColA
	NotColH Bitboard = ^ColH
)

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&sq.Bit() != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return Pass
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Shift operations used by move generation. "North" is toward row 1.

// North shifts the bitboard one row up (toward row 1).
func (b Bitboard) North() Bitboard {
	return b >> 8
}

// South shifts the bitboard one row down (toward row 8).
func (b Bitboard) South() Bitboard {
	return b << 8
}

// East shifts the bitboard one column right (toward column h).
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotColA
}

// West shifts the bitboard one column left (toward column a).
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotColH
}

// NorthEast shifts the bitboard one cell toward the h1 corner.
func (b Bitboard) NorthEast() Bitboard {
	return (b >> 7) & NotColA
}

// NorthWest shifts the bitboard one cell toward the a1 corner.
func (b Bitboard) NorthWest() Bitboard {
	return (b >> 9) & NotColH
}

// SouthEast shifts the bitboard one cell toward the h8 corner.
func (b Bitboard) SouthEast() Bitboard {
	return (b << 9) & NotColA
}

// SouthWest shifts the bitboard one cell toward the a8 corner.
func (b Bitboard) SouthWest() Bitboard {
	return (b << 7) & NotColH
}

// directions lists the eight shift operations.
var directions = [8]func(Bitboard) Bitboard{
	Bitboard.North,
	Bitboard.South,
	Bitboard.East,
	Bitboard.West,
	Bitboard.NorthEast,
	Bitboard.NorthWest,
	Bitboard.SouthEast,
	Bitboard.SouthWest,
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < 8; row++ {
		sb.WriteByte(byte('1' + row))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			if b.IsSet(NewSquare(col, row)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Squares returns a slice of all squares that are set, in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}
