package eval

import "github.com/hailam/othelloplay/internal/board"

// DefaultCellWeights rewards corners and edges and punishes the cells that
// give corners away. Indexed by square, a1 first.
var DefaultCellWeights = [64]int{
	100, -20, 10, 5, 5, 10, -20, 100, // Row 1
	-20, -50, -2, -2, -2, -2, -50, -20, // Row 2
	10, -2, 3, 2, 2, 3, -2, 10, // Row 3
	5, -2, 2, 0, 0, 2, -2, 5, // Row 4
	5, -2, 2, 0, 0, 2, -2, 5, // Row 5
	10, -2, 3, 2, 2, 3, -2, 10, // Row 6
	-20, -50, -2, -2, -2, -2, -50, -20, // Row 7
	100, -20, 10, 5, 5, 10, -20, 100, // Row 8
}

// Positional scores the weighted sum of occupied cells.
type Positional struct {
	Weights [64]int
}

// NewPositional creates a positional evaluator with DefaultCellWeights.
func NewPositional() *Positional {
	return &Positional{Weights: DefaultCellWeights}
}

// Score returns the weight of own cells minus the weight of opponent cells.
func (p *Positional) Score(b board.Board, c board.Color) int {
	score := 0
	own, opp := b.Stones(c), b.Stones(c.Other())
	for own != 0 {
		score += p.Weights[own.PopLSB()]
	}
	for opp != 0 {
		score -= p.Weights[opp.PopLSB()]
	}
	return score
}

// Evaluate implements Evaluator.
func (p *Positional) Evaluate(s *board.State) (int, error) {
	return p.Score(s.Board(), s.Side()), nil
}
