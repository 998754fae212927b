package eval

import "github.com/hailam/othelloplay/internal/board"

// DefaultBlendThreshold is the empty-cell count at which Blend switches to
// counting stones.
const DefaultBlendThreshold = 10

// Blend scores mobility plus a quarter of the positional score while more
// than Threshold cells are empty, and the stone differential after that.
type Blend struct {
	Threshold int

	positional *Positional
}

// NewBlend creates a Blend evaluator with DefaultBlendThreshold.
func NewBlend() *Blend {
	return &Blend{Threshold: DefaultBlendThreshold, positional: NewPositional()}
}

// Score evaluates b for side c.
func (e *Blend) Score(b board.Board, c board.Color) int {
	if b.EmptyCount() > e.Threshold {
		return Mobility{}.Score(b, c) + e.positional.Score(b, c)/4
	}
	return Simple{}.Score(b, c)
}

// Evaluate implements Evaluator.
func (e *Blend) Evaluate(s *board.State) (int, error) {
	return e.Score(s.Board(), s.Side()), nil
}
