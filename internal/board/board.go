package board

import (
	"fmt"
	"strings"
)

// Board is an Othello position: one occupancy mask per color.
// The masks never overlap; empty cells are the complement of their union.
// Board is a small value type and is copied freely.
type Board struct {
	stones [2]Bitboard
	hash   uint64
}

// NewBoard creates the initial position (d4/e5 white, d5/e4 black).
func NewBoard() Board {
	b, _ := FromBits(D5.Bit()|E4.Bit(), D4.Bit()|E5.Bit())
	return b
}

// FromBits creates a board from the black and white occupancy masks.
func FromBits(black, white Bitboard) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("%w: %016x", ErrOverlap, uint64(black&white))
	}
	return Board{
		stones: [2]Bitboard{black, white},
		hash:   computeHash(black, white),
	}, nil
}

// Bits returns the black and white occupancy masks.
func (b Board) Bits() (black, white Bitboard) {
	return b.stones[Black], b.stones[White]
}

// Stones returns the occupancy mask of color c.
func (b Board) Stones(c Color) Bitboard {
	return b.stones[c]
}

// Occupied returns all cells holding a stone.
func (b Board) Occupied() Bitboard {
	return b.stones[Black] | b.stones[White]
}

// Empties returns all empty cells.
func (b Board) Empties() Bitboard {
	return ^b.Occupied()
}

// EmptyCount returns the number of empty cells.
func (b Board) EmptyCount() int {
	return 64 - b.Occupied().PopCount()
}

// At returns the content of a cell.
func (b Board) At(sq Square) Cell {
	switch {
	case b.stones[Black].IsSet(sq):
		return CellBlack
	case b.stones[White].IsSet(sq):
		return CellWhite
	default:
		return CellEmpty
	}
}

// CountStones returns the number of black and white stones.
func (b Board) CountStones() (black, white int) {
	return b.stones[Black].PopCount(), b.stones[White].PopCount()
}

// Hash returns the Zobrist hash of both occupancy masks.
// It does not include the side to move; see State.Hash.
func (b Board) Hash() uint64 {
	return b.hash
}

// MovesMask returns the cells where color c can legally place a stone.
// It is empty when c is not a valid color.
func (b Board) MovesMask(c Color) Bitboard {
	if !c.IsValid() {
		return Empty
	}
	own, opp := b.stones[c], b.stones[c.Other()]
	empty := ^(own | opp)

	var moves Bitboard
	for _, shift := range directions {
		// A run of opponent stones is at most six cells long.
		t := shift(own) & opp
		t |= shift(t) & opp
		t |= shift(t) & opp
		t |= shift(t) & opp
		t |= shift(t) & opp
		t |= shift(t) & opp
		moves |= shift(t) & empty
	}
	return moves
}

// LegalMoves returns the legal placements for color c in ascending square order.
// The result is empty when c must pass.
func (b Board) LegalMoves(c Color) []Square {
	return b.MovesMask(c).Squares()
}

// HasMoves returns true if color c has at least one legal placement.
func (b Board) HasMoves(c Color) bool {
	return b.MovesMask(c) != 0
}

// Mobility returns the number of legal placements for color c.
func (b Board) Mobility(c Color) int {
	return b.MovesMask(c).PopCount()
}

// IsTerminal returns true if neither side has a legal move.
func (b Board) IsTerminal() bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Flips returns the opponent stones that a stone of color c placed on sq would flip.
// The result is empty for occupied cells, Pass, invalid colors and placements
// that flip nothing.
func (b Board) Flips(sq Square, c Color) Bitboard {
	placed := sq.Bit()
	if placed == 0 || !c.IsValid() || b.Occupied()&placed != 0 {
		return Empty
	}
	own, opp := b.stones[c], b.stones[c.Other()]

	var flips Bitboard
	for _, shift := range directions {
		var run Bitboard
		m := shift(placed)
		for m&opp != 0 {
			run |= m
			m = shift(m)
		}
		if m&own != 0 {
			flips |= run
		}
	}
	return flips
}

// ApplyMove places a stone of color c on sq and flips every bracketed opponent run.
// The board is unchanged when the move is rejected.
func (b *Board) ApplyMove(sq Square, c Color) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, c)
	}
	if !sq.IsValid() {
		return &IllegalMoveError{Square: sq, Side: c, Reason: "not a board cell"}
	}
	if b.Occupied().IsSet(sq) {
		return &IllegalMoveError{Square: sq, Side: c, Reason: "cell is occupied"}
	}
	flips := b.Flips(sq, c)
	if flips == 0 {
		return &IllegalMoveError{Square: sq, Side: c, Reason: "no stones to flip"}
	}
	b.place(sq, c, flips)
	return nil
}

// place updates masks and hash. flips must be Flips(sq, c).
func (b *Board) place(sq Square, c Color, flips Bitboard) {
	o := c.Other()
	b.stones[c] |= sq.Bit() | flips
	b.stones[o] &^= flips

	b.hash ^= zobristStone[c][sq]
	for f := flips; f != 0; {
		b.hash ^= zobristFlip[f.PopLSB()]
	}
}

// String returns a visual representation of the board.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < 8; col++ {
			switch b.At(NewSquare(col, row)) {
			case CellBlack:
				sb.WriteString("X ")
			case CellWhite:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	black, white := b.CountStones()
	fmt.Fprintf(&sb, "Black: %d  White: %d\n", black, white)
	return sb.String()
}
