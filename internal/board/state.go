package board

import "fmt"

// State is a board with its side to move and an undo stack. It is the
// searchable game state of the engine: Play and Undo mutate it in place.
type State struct {
	board Board
	side  Color
	undo  []undoInfo
}

type undoInfo struct {
	board Board
	move  Square
}

// NewState creates a state with the given side to move.
func NewState(b Board, side Color) *State {
	return &State{board: b, side: side, undo: make([]undoInfo, 0, 64)}
}

// NewStartState creates the initial position with black to move.
func NewStartState() *State {
	return NewState(NewBoard(), Black)
}

// ParseState parses board notation into a state.
func ParseState(s string) (*State, error) {
	b, side, err := ParseBoard(s)
	if err != nil {
		return nil, err
	}
	return NewState(b, side), nil
}

// Board returns the current board.
func (s *State) Board() Board {
	return s.board
}

// Side returns the side to move.
func (s *State) Side() Color {
	return s.side
}

// LegalMoves returns the placements of the side to move.
func (s *State) LegalMoves() []Square {
	return s.board.LegalMoves(s.side)
}

// Play places a stone for the side to move, or passes when m is Pass, then
// hands the turn over. Passing is only legal without placements.
func (s *State) Play(m Square) error {
	prev := s.board
	if m == Pass {
		if s.board.HasMoves(s.side) {
			return &IllegalMoveError{Square: m, Side: s.side, Reason: "pass with legal moves"}
		}
	} else if err := s.board.ApplyMove(m, s.side); err != nil {
		return err
	}
	s.undo = append(s.undo, undoInfo{board: prev, move: m})
	s.side = s.side.Other()
	return nil
}

// Undo reverts the last Play. It does nothing on a fresh state.
func (s *State) Undo() {
	n := len(s.undo)
	if n == 0 {
		return
	}
	s.board = s.undo[n-1].board
	s.undo = s.undo[:n-1]
	s.side = s.side.Other()
}

// PassMove returns Pass.
func (s *State) PassMove() Square {
	return Pass
}

// IsTerminal reports whether neither side can move.
func (s *State) IsTerminal() bool {
	return s.board.IsTerminal()
}

// Hash returns the Zobrist hash of the board and the side to move.
func (s *State) Hash() uint64 {
	if s.side == White {
		return s.board.Hash() ^ zobristSideToMove
	}
	return s.board.Hash()
}

// Key returns the black and white masks. Together with Hash, which carries
// the side to move, it identifies the position exactly.
func (s *State) Key() [2]uint64 {
	black, white := s.board.Bits()
	return [2]uint64{uint64(black), uint64(white)}
}

// Ply returns the number of moves played since the state was created.
func (s *State) Ply() int {
	return len(s.undo)
}

// Moves returns the moves played since the state was created.
func (s *State) Moves() []Square {
	moves := make([]Square, len(s.undo))
	for i, u := range s.undo {
		moves[i] = u.move
	}
	return moves
}

// Clone returns an independent copy, undo history included.
func (s *State) Clone() *State {
	c := &State{board: s.board, side: s.side, undo: make([]undoInfo, len(s.undo), cap(s.undo))}
	copy(c.undo, s.undo)
	return c
}

// Notation returns the board notation of the state.
func (s *State) Notation() string {
	return s.board.Notation(s.side)
}

// String returns the board followed by the side to move.
func (s *State) String() string {
	return fmt.Sprintf("%s%s to move\n", s.board, s.side)
}
