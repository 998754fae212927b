package eval

import (
	"golang.org/x/exp/rand"

	"github.com/hailam/othelloplay/internal/board"
)

// Noisy adds a seeded uniform perturbation in [-Amplitude, Amplitude] to
// another evaluator, for varied self-play. Equal seeds give equal sequences.
// A Noisy is not safe for concurrent use.
type Noisy struct {
	inner     Evaluator
	amplitude int
	rng       *rand.Rand
}

// NewNoisy wraps inner.
func NewNoisy(inner Evaluator, amplitude int, seed uint64) *Noisy {
	if amplitude < 0 {
		amplitude = -amplitude
	}
	return &Noisy{
		inner:     inner,
		amplitude: amplitude,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Evaluate implements Evaluator.
func (n *Noisy) Evaluate(s *board.State) (int, error) {
	v, err := n.inner.Evaluate(s)
	if err != nil || n.amplitude == 0 {
		return v, err
	}
	return v + n.rng.Intn(2*n.amplitude+1) - n.amplitude, nil
}
