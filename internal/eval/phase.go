package eval

import "github.com/hailam/othelloplay/internal/board"

// PhaseWeights weigh the three terms of PhaseAware.
type PhaseWeights struct {
	Mobility   int `json:"mobility"`
	Positional int `json:"positional"`
	Stones     int `json:"stones"`
}

// PhaseAware mixes mobility, position and stones with weights that depend on
// the game phase, measured by the number of stones on the board.
type PhaseAware struct {
	// Stone counts closing the early and middle phases (inclusive).
	EarlyEnd, MidEnd int

	Early, Mid, Late PhaseWeights

	positional *Positional
}

// NewPhaseAware creates the evaluator with phase boundaries at 30 and 60
// stones.
func NewPhaseAware() *PhaseAware {
	return &PhaseAware{
		EarlyEnd:   30,
		MidEnd:     60,
		Early:      PhaseWeights{Mobility: 2, Positional: 1, Stones: 0},
		Mid:        PhaseWeights{Mobility: 4, Positional: 1, Stones: 2},
		Late:       PhaseWeights{Mobility: 1, Positional: 1, Stones: 2},
		positional: NewPositional(),
	}
}

// WeightsFor returns the weights used for a board holding stones stones.
func (p *PhaseAware) WeightsFor(stones int) PhaseWeights {
	switch {
	case stones <= p.EarlyEnd:
		return p.Early
	case stones <= p.MidEnd:
		return p.Mid
	default:
		return p.Late
	}
}

// Score evaluates b for side c.
func (p *PhaseAware) Score(b board.Board, c board.Color) int {
	w := p.WeightsFor(b.Occupied().PopCount())
	return w.Mobility*Mobility{}.Score(b, c) +
		w.Positional*p.positional.Score(b, c) +
		w.Stones*Simple{}.Score(b, c)
}

// Evaluate implements Evaluator.
func (p *PhaseAware) Evaluate(s *board.State) (int, error) {
	return p.Score(s.Board(), s.Side()), nil
}
