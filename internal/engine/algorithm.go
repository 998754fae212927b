package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/othelloplay/internal/board"
	"github.com/hailam/othelloplay/internal/eval"
	"github.com/hailam/othelloplay/internal/search"
)

// Searcher is a search algorithm instantiated for Othello.
type Searcher = search.Searcher[*board.State, board.Square]

// SearchOption configures an Othello searcher.
type SearchOption = search.Option[*board.State, board.Square]

// Table is a transposition table of Othello moves.
type Table = search.Table[board.Square]

// Algorithm selects a search algorithm.
type Algorithm uint8

const (
	NegaMax Algorithm = iota
	NegaAlpha
	NegaAlphaTT
	NegaScout
	NegaScoutMPC
)

var algorithmNames = [...]string{
	NegaMax:      "negamax",
	NegaAlpha:    "negaalpha",
	NegaAlphaTT:  "negaalpha-tt",
	NegaScout:    "negascout",
	NegaScoutMPC: "negascout-mpc",
}

// ErrUnknownAlgorithm is returned when parsing an unknown algorithm name.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists every algorithm from slowest to fastest.
func Algorithms() []Algorithm {
	return []Algorithm{NegaMax, NegaAlpha, NegaAlphaTT, NegaScout, NegaScoutMPC}
}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", a)
}

// UsesTable reports whether the algorithm probes a transposition table.
func (a Algorithm) UsesTable() bool {
	return a >= NegaAlphaTT && a <= NegaScoutMPC
}

// ParseAlgorithm parses an algorithm name. Underscores and a missing dash
// are accepted ("negaalpha_tt", "negascoutmpc").
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	for a, name := range algorithmNames {
		if norm == name || norm == strings.ReplaceAll(name, "-", "") {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// NewSearcher builds a searcher of the given algorithm.
func NewSearcher(a Algorithm, ev eval.Evaluator, opts ...SearchOption) (Searcher, error) {
	switch a {
	case NegaMax:
		return search.NewNegaMax[*board.State, board.Square](ev, opts...), nil
	case NegaAlpha:
		return search.NewNegaAlpha[*board.State, board.Square](ev, opts...), nil
	case NegaAlphaTT:
		return search.NewNegaAlphaTT[*board.State, board.Square](ev, opts...), nil
	case NegaScout:
		return search.NewNegaScout[*board.State, board.Square](ev, opts...), nil
	case NegaScoutMPC:
		return search.NewNegaScoutMPC[*board.State, board.Square](ev, opts...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
}
