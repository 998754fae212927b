package search

import (
	"errors"

	"golang.org/x/exp/rand"
)

// treeState is a toy game over an explicit tree. Node values are scored for
// the side to move at that node. A node without children passes to its pass
// child, or is terminal when it has none.
type treeState struct {
	nodes []treeNode
	cur   int
	path  []int
}

type treeNode struct {
	children []int
	pass     int // -1 when terminal
	value    int
}

const treePass = -1

func newTree() *treeState {
	return &treeState{nodes: []treeNode{{pass: -1}}}
}

// add appends a child of parent holding value and returns its index.
func (t *treeState) add(parent, value int) int {
	t.nodes = append(t.nodes, treeNode{pass: -1, value: value})
	id := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// addPass makes parent a forced pass into a new node holding value.
func (t *treeState) addPass(parent, value int) int {
	t.nodes = append(t.nodes, treeNode{pass: -1, value: value})
	id := len(t.nodes) - 1
	t.nodes[parent].pass = id
	return id
}

func (t *treeState) LegalMoves() []int {
	return append([]int(nil), t.nodes[t.cur].children...)
}

func (t *treeState) Play(m int) error {
	n := t.nodes[t.cur]
	next := -1
	if m == treePass {
		if len(n.children) > 0 || n.pass < 0 {
			return errors.New("illegal pass")
		}
		next = n.pass
	} else {
		for _, c := range n.children {
			if c == m {
				next = c
			}
		}
	}
	if next < 0 {
		return errors.New("illegal move")
	}
	t.path = append(t.path, t.cur)
	t.cur = next
	return nil
}

func (t *treeState) Undo() {
	t.cur = t.path[len(t.path)-1]
	t.path = t.path[:len(t.path)-1]
}

func (t *treeState) PassMove() int { return treePass }

func (t *treeState) IsTerminal() bool {
	n := t.nodes[t.cur]
	return len(n.children) == 0 && n.pass < 0
}

func (t *treeState) Hash() uint64 {
	x := uint64(t.cur) + 0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	return x
}

func (t *treeState) Key() [2]uint64 { return [2]uint64{uint64(t.cur), 0} }

// treeEval returns the stored value of the current node.
var treeEval = EvaluatorFunc[*treeState](func(t *treeState) (int, error) {
	return t.nodes[t.cur].value, nil
})

// randomTree builds a full tree of the given depth and branching factor
// with random node values.
func randomTree(seed uint64, depth, branching int) *treeState {
	rng := rand.New(rand.NewSource(seed))
	t := newTree()
	t.nodes[0].value = rng.Intn(201) - 100

	level := []int{0}
	for d := 0; d < depth; d++ {
		var next []int
		for _, p := range level {
			for i := 0; i < branching; i++ {
				next = append(next, t.add(p, rng.Intn(201)-100))
			}
		}
		level = next
	}
	return t
}

// minimax computes the reference value of the node below t.cur.
func minimax(t *treeState, depth int) int {
	n := t.nodes[t.cur]
	if depth == 0 || (len(n.children) == 0 && n.pass < 0) {
		return n.value
	}
	if len(n.children) == 0 {
		saved := t.cur
		t.cur = n.pass
		v := -minimax(t, depth-1)
		t.cur = saved
		return v
	}
	best := -Infinity
	for _, c := range n.children {
		saved := t.cur
		t.cur = c
		if v := -minimax(t, depth-1); v > best {
			best = v
		}
		t.cur = saved
	}
	return best
}

type searcherFactory struct {
	name string
	make func(eval Evaluator[*treeState]) Searcher[*treeState, int]
}

var treeSearchers = []searcherFactory{
	{"negamax", func(e Evaluator[*treeState]) Searcher[*treeState, int] {
		return NewNegaMax[*treeState, int](e)
	}},
	{"negaalpha", func(e Evaluator[*treeState]) Searcher[*treeState, int] {
		return NewNegaAlpha[*treeState, int](e)
	}},
	{"negaalpha-tt", func(e Evaluator[*treeState]) Searcher[*treeState, int] {
		return NewNegaAlphaTT[*treeState, int](e, WithTableSize[*treeState, int](1))
	}},
	{"negascout", func(e Evaluator[*treeState]) Searcher[*treeState, int] {
		return NewNegaScout[*treeState, int](e, WithTableSize[*treeState, int](1))
	}},
	{"negascout-mpc", func(e Evaluator[*treeState]) Searcher[*treeState, int] {
		return NewNegaScoutMPC[*treeState, int](e,
			WithTableSize[*treeState, int](1),
			WithProbes[*treeState, int](Probe{MinDepth: 2, Reduction: 1, Margin: Infinity}))
	}},
}
