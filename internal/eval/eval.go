// Package eval implements Othello position evaluators.
//
// Every evaluator scores a position for the side to move: positive values
// favour the player about to move.
package eval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/othelloplay/internal/board"
)

// Evaluator scores a state for its side to move.
type Evaluator interface {
	Evaluate(s *board.State) (int, error)
}

// Kind names an evaluation strategy.
type Kind uint8

const (
	KindSimple Kind = iota
	KindMobility
	KindPositional
	KindPhaseAware
	KindBlend
	KindPattern
)

var kindNames = [...]string{
	KindSimple:     "simple",
	KindMobility:   "mobility",
	KindPositional: "positional",
	KindPhaseAware: "phase",
	KindBlend:      "blend",
	KindPattern:    "pattern",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ErrUnknownKind is returned when parsing an unknown evaluator name.
var ErrUnknownKind = errors.New("unknown evaluator")

// ParseKind parses an evaluator name such as "blend".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	if s == "test" {
		return KindBlend, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Options tune the evaluators built by New.
type Options struct {
	// BlendThreshold is the empty-cell count above which Blend uses
	// mobility and position, and at or below which it counts stones.
	BlendThreshold int
	// Weights feeds the pattern evaluator. Nil means all-zero weights.
	Weights *PatternWeights
	// Noise adds a uniform perturbation in [-Noise, Noise] when positive.
	Noise int
	// Seed seeds the perturbation.
	Seed uint64
}

// New creates the evaluator of the given kind.
func New(kind Kind, opts Options) (Evaluator, error) {
	var ev Evaluator
	switch kind {
	case KindSimple:
		ev = Simple{}
	case KindMobility:
		ev = Mobility{}
	case KindPositional:
		ev = NewPositional()
	case KindPhaseAware:
		ev = NewPhaseAware()
	case KindBlend:
		b := NewBlend()
		if opts.BlendThreshold > 0 {
			b.Threshold = opts.BlendThreshold
		}
		ev = b
	case KindPattern:
		p, err := NewPatternEval(DefaultPatterns(), opts.Weights)
		if err != nil {
			return nil, err
		}
		ev = p
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	if opts.Noise > 0 {
		ev = NewNoisy(ev, opts.Noise, opts.Seed)
	}
	return ev, nil
}
