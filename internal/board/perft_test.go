package board

import "testing"

// perft counts the leaf nodes at the given depth. A pass consumes one depth
// unit and a second consecutive pass ends the game.
func perft(s *State, depth int, passed bool) int64 {
	if depth == 0 {
		return 1
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		if passed {
			return 1
		}
		if err := s.Play(Pass); err != nil {
			panic(err)
		}
		n := perft(s, depth-1, true)
		s.Undo()
		return n
	}
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		if err := s.Play(m); err != nil {
			panic(err)
		}
		nodes += perft(s, depth-1, false)
		s.Undo()
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	s := NewStartState()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 4},
		{2, 12},
		{3, 56},
		{4, 244},
		{5, 1396},
		{6, 8200},
		{7, 55092},
		// Depth 8 takes longer, enable for thorough testing:
		// {8, 390216},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(s, tc.depth, false)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}

	if s.Notation() != StartNotation {
		t.Errorf("state changed after perft: %s", s.Notation())
	}
}

// TestPerftForcedPass covers a position where the side to move must pass.
func TestPerftForcedPass(t *testing.T) {
	b, err := FromBits(A1.Bit(), B1.Bit())
	if err != nil {
		t.Fatal(err)
	}
	s := NewState(b, White)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 1}, // white passes
		{2, 1}, // black c1 ends the game
		{3, 1},
	}

	for _, tc := range tests {
		got := perft(s, tc.depth, false)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}
