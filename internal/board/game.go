package board

// Outcome is the result of a finished game.
type Outcome uint8

const (
	BlackWins Outcome = iota
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black wins"
	case WhiteWins:
		return "white wins"
	default:
		return "draw"
	}
}

// Game drives a game between two players. Unlike State it never asks a
// player to pass: when the side to move has no placement after a move the
// turn goes straight back to the other side.
type Game struct {
	state   *State
	history []Square
}

// NewGame creates a game from the initial position.
func NewGame() *Game {
	return NewGameFrom(NewStartState())
}

// NewGameFrom creates a game continuing from s. A forced pass at s is
// played immediately.
func NewGameFrom(s *State) *Game {
	g := &Game{state: s.Clone()}
	g.autoPass()
	return g
}

// State returns a copy of the current state.
func (g *Game) State() *State {
	return g.state.Clone()
}

// Board returns the current board.
func (g *Game) Board() Board {
	return g.state.board
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.state.side
}

// Play places a stone for the side to move. Passes are recorded in the
// history as Pass.
func (g *Game) Play(sq Square) error {
	if err := g.state.Play(sq); err != nil {
		return err
	}
	g.history = append(g.history, sq)
	g.autoPass()
	return nil
}

func (g *Game) autoPass() {
	if !g.state.board.HasMoves(g.state.side) && !g.state.IsTerminal() {
		_ = g.state.Play(Pass)
		g.history = append(g.history, Pass)
	}
}

// IsOver reports whether neither side can move.
func (g *Game) IsOver() bool {
	return g.state.IsTerminal()
}

// Score returns the stone counts.
func (g *Game) Score() (black, white int) {
	return g.state.board.CountStones()
}

// Winner returns the outcome of a finished game.
func (g *Game) Winner() (Outcome, error) {
	if !g.IsOver() {
		return Draw, ErrGameNotOver
	}
	black, white := g.Score()
	switch {
	case black > white:
		return BlackWins, nil
	case white > black:
		return WhiteWins, nil
	default:
		return Draw, nil
	}
}

// History returns the moves played, passes included.
func (g *Game) History() []Square {
	return append([]Square(nil), g.history...)
}
