package eval

import "github.com/hailam/othelloplay/internal/board"

// Simple scores the stone differential.
type Simple struct{}

// Score returns own stones minus opponent stones for side c.
func (Simple) Score(b board.Board, c board.Color) int {
	return b.Stones(c).PopCount() - b.Stones(c.Other()).PopCount()
}

// Evaluate implements Evaluator.
func (e Simple) Evaluate(s *board.State) (int, error) {
	return e.Score(s.Board(), s.Side()), nil
}

// Mobility scores the legal move count differential.
type Mobility struct{}

// Score returns own mobility minus opponent mobility for side c.
func (Mobility) Score(b board.Board, c board.Color) int {
	return b.Mobility(c) - b.Mobility(c.Other())
}

// Evaluate implements Evaluator.
func (e Mobility) Evaluate(s *board.State) (int, error) {
	return e.Score(s.Board(), s.Side()), nil
}
