package board

// Color represents the side owning a stone or the side to move.
type Color uint8

const (
	Black Color = iota
	White
	NoColor Color = 2
)

// Other returns the opposite color. Other is an involution: c.Other().Other() == c.
func (c Color) Other() Color {
	return c ^ 1
}

// IsValid reports whether c is Black or White.
func (c Color) IsValid() bool {
	return c <= White
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoColor"
	}
}

// Char returns the notation character for the color ('X' for black, 'O' for white).
func (c Color) Char() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '-'
	}
}

// Cell is the content of a single board cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Color returns the owner of the cell, or NoColor if it is empty.
func (c Cell) Color() Color {
	switch c {
	case CellBlack:
		return Black
	case CellWhite:
		return White
	default:
		return NoColor
	}
}

// String returns the notation character for the cell.
func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "X"
	case CellWhite:
		return "O"
	default:
		return "-"
	}
}
