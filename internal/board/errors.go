package board

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned when a placement is occupied or flips no stone.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidNotation is returned for malformed board or square notation.
	ErrInvalidNotation = errors.New("invalid notation")
	// ErrInvalidColor is returned when a stone is neither black nor white.
	ErrInvalidColor = errors.New("invalid color")
	// ErrOverlap is returned when the two occupancy masks share a cell.
	ErrOverlap = errors.New("black and white masks overlap")
	// ErrGameNotOver is returned when asking for the winner of a running game.
	ErrGameNotOver = errors.New("game is not over")
)

// IllegalMoveError describes a rejected placement.
type IllegalMoveError struct {
	Square Square
	Side   Color
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s: %s", e.Square, e.Side, e.Reason)
}

// Unwrap lets errors.Is match ErrIllegalMove.
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
