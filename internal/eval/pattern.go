package eval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hailam/othelloplay/internal/board"
)

// NumPhases is the number of weight tables per pattern, one per stone count
// from 5 to 64. Boards with fewer stones use the first table.
const NumPhases = 60

// ErrWeights is returned for weight tables that do not match the patterns.
var ErrWeights = errors.New("pattern weights do not match patterns")

// Pattern is a group of cells evaluated together in all four rotations.
// Each rotation maps its cells to a base-3 index: empty 0, black 1, white 2,
// with the first cell as the least significant digit. Rotations keep the
// cell order, so the same local shape has the same index in every rotation.
type Pattern struct {
	Name      string
	rotations [4][]board.Square
}

// NewPattern creates a pattern from its cells in the unrotated orientation.
func NewPattern(name string, cells ...board.Square) Pattern {
	p := Pattern{Name: name}
	rotated := append([]board.Square(nil), cells...)
	for r := range p.rotations {
		p.rotations[r] = append([]board.Square(nil), rotated...)
		for i, sq := range rotated {
			rotated[i] = rotate90(sq)
		}
	}
	return p
}

// rotate90 maps (col, row) to (row, 7-col).
func rotate90(sq board.Square) board.Square {
	return board.NewSquare(sq.Row(), 7-sq.Col())
}

// Cells returns the cells of rotation r in digit order.
func (p Pattern) Cells(r int) []board.Square {
	return append([]board.Square(nil), p.rotations[r]...)
}

// States returns the number of distinct indices, 3^cells.
func (p Pattern) States() int {
	n := 1
	for range p.rotations[0] {
		n *= 3
	}
	return n
}

// Indices returns the ternary index of each rotation.
func (p Pattern) Indices(b board.Board) [4]int {
	var out [4]int
	black, white := b.Bits()
	for r, cells := range p.rotations {
		idx, pow := 0, 1
		for _, sq := range cells {
			switch {
			case black.IsSet(sq):
				idx += pow
			case white.IsSet(sq):
				idx += 2 * pow
			}
			pow *= 3
		}
		out[r] = idx
	}
	return out
}

// DefaultPatterns returns the edge, corner block and main diagonal patterns.
func DefaultPatterns() []Pattern {
	return []Pattern{
		NewPattern("edge", board.A1, board.B1, board.C1, board.D1, board.E1, board.F1, board.G1, board.H1),
		NewPattern("corner", board.A1, board.B1, board.C1, board.A2, board.B2, board.C2, board.A3, board.B3, board.C3),
		NewPattern("diagonal", board.A1, board.B2, board.C3, board.D4, board.E5, board.F6, board.G7, board.H8),
	}
}

// PatternWeights hold one table per pattern and phase, indexed by pattern
// index. Scores are from black's point of view.
type PatternWeights struct {
	Tables [][][]float32 `json:"tables"`
}

// LoadPatternWeights decodes weights from JSON.
func LoadPatternWeights(r io.Reader) (*PatternWeights, error) {
	var w PatternWeights
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode pattern weights: %w", err)
	}
	return &w, nil
}

// ZeroWeights allocates all-zero tables for the patterns.
func ZeroWeights(patterns []Pattern) *PatternWeights {
	w := &PatternWeights{Tables: make([][][]float32, len(patterns))}
	for i, p := range patterns {
		w.Tables[i] = make([][]float32, NumPhases)
		for ph := range w.Tables[i] {
			w.Tables[i][ph] = make([]float32, p.States())
		}
	}
	return w
}

// PatternEval sums pattern weights over all rotations of all patterns.
// Without weights it scores every position 0.
type PatternEval struct {
	patterns []Pattern
	weights  *PatternWeights
}

// NewPatternEval creates a pattern evaluator. weights may be nil.
func NewPatternEval(patterns []Pattern, weights *PatternWeights) (*PatternEval, error) {
	if weights != nil {
		if len(weights.Tables) != len(patterns) {
			return nil, fmt.Errorf("%w: %d tables for %d patterns", ErrWeights, len(weights.Tables), len(patterns))
		}
		for i, p := range patterns {
			if len(weights.Tables[i]) != NumPhases {
				return nil, fmt.Errorf("%w: pattern %s has %d phases", ErrWeights, p.Name, len(weights.Tables[i]))
			}
			for ph, table := range weights.Tables[i] {
				if len(table) != p.States() {
					return nil, fmt.Errorf("%w: pattern %s phase %d has %d states, want %d",
						ErrWeights, p.Name, ph, len(table), p.States())
				}
			}
		}
	}
	return &PatternEval{patterns: patterns, weights: weights}, nil
}

// Phase returns the weight table used for b.
func Phase(b board.Board) int {
	phase := b.Occupied().PopCount() - 5
	if phase < 0 {
		return 0
	}
	if phase >= NumPhases {
		return NumPhases - 1
	}
	return phase
}

// Score evaluates b for side c.
func (e *PatternEval) Score(b board.Board, c board.Color) int {
	if e.weights == nil {
		return 0
	}
	phase := Phase(b)
	var sum float32
	for i, p := range e.patterns {
		table := e.weights.Tables[i][phase]
		for _, idx := range p.Indices(b) {
			sum += table[idx]
		}
	}
	if c == board.White {
		sum = -sum
	}
	return int(sum)
}

// Evaluate implements Evaluator.
func (e *PatternEval) Evaluate(s *board.State) (int, error) {
	return e.Score(s.Board(), s.Side()), nil
}
