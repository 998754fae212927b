package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/othelloplay/internal/board"
	"github.com/hailam/othelloplay/internal/storage"
)

// Player is one side of a match.
type Player struct {
	Name   string // defaults to Config.Name()
	Config Config
}

// MatchOptions control a self-play match.
type MatchOptions struct {
	Games        int
	Parallel     int // games played at once, 0 meaning one per CPU
	OpeningMoves int // random moves played before the engines take over
	Seed         uint64
	Limits       Limits
	Store        *storage.Storage // records the games when set
}

// MatchResult holds the finished games of a match in game order.
type MatchResult struct {
	Records []storage.GameRecord
}

// Wins counts the games won by a player.
func (r MatchResult) Wins(name string) int {
	return lo.CountBy(r.Records, func(rec storage.GameRecord) bool {
		return winnerName(rec) == name
	})
}

// Draws counts the drawn games.
func (r MatchResult) Draws() int {
	return lo.CountBy(r.Records, func(rec storage.GameRecord) bool {
		return rec.Winner == "draw"
	})
}

// Score returns the match points of a player, a draw counting half.
func (r MatchResult) Score(name string) float64 {
	return float64(r.Wins(name)) + float64(r.Draws())/2
}

func winnerName(rec storage.GameRecord) string {
	switch rec.Winner {
	case "black":
		return rec.Black
	case "white":
		return rec.White
	}
	return ""
}

// Match plays games between two players. Colors alternate, and each pair of
// consecutive games starts from the same random opening. Every game gets its
// own engines, so games run concurrently without sharing tables.
func Match(ctx context.Context, a, b Player, opts MatchOptions) (MatchResult, error) {
	if opts.Games <= 0 {
		return MatchResult{}, fmt.Errorf("%w: %d games", ErrInvalidConfig, opts.Games)
	}
	if a.Name == "" {
		a.Name = a.Config.Name()
	}
	if b.Name == "" {
		b.Name = b.Config.Name()
	}
	if a.Name == b.Name {
		a.Name += "#1"
		b.Name += "#2"
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	records := make([]storage.GameRecord, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range opts.Games {
		black, white := a, b
		if i%2 == 1 {
			black, white = b, a
		}
		g.Go(func() error {
			rec, err := playGame(ctx, i, black, white, opts)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MatchResult{}, err
	}
	return MatchResult{Records: records}, nil
}

func playGame(ctx context.Context, i int, black, white Player, opts MatchOptions) (storage.GameRecord, error) {
	start := time.Now()

	var engines [2]*Engine
	for c, p := range []Player{black, white} {
		cfg := p.Config
		cfg.Seed += uint64(i)
		cfg.DBDir = ""
		e, err := New(cfg)
		if err != nil {
			return storage.GameRecord{}, err
		}
		engines[c] = e
	}

	game := board.NewGame()
	rng := rand.New(rand.NewSource(opts.Seed + uint64(i/2)))
	for range opts.OpeningMoves {
		if game.IsOver() {
			break
		}
		moves := game.Board().LegalMoves(game.Turn())
		if err := game.Play(moves[rng.Intn(len(moves))]); err != nil {
			return storage.GameRecord{}, err
		}
	}
	opening := len(game.History())

	for !game.IsOver() {
		res, err := engines[game.Turn()].Think(ctx, game.State(), opts.Limits)
		if err != nil {
			return storage.GameRecord{}, err
		}
		if !res.HasMove {
			return storage.GameRecord{}, fmt.Errorf("no move for %s in a running game", game.Turn())
		}
		if err := game.Play(res.Move); err != nil {
			return storage.GameRecord{}, err
		}
	}

	outcome, err := game.Winner()
	if err != nil {
		return storage.GameRecord{}, err
	}
	blackStones, whiteStones := game.Score()
	history := lo.Map(game.History(), func(sq board.Square, _ int) string { return sq.String() })
	rec := storage.GameRecord{
		Black:       black.Name,
		White:       white.Name,
		Opening:     history[:opening],
		Moves:       history,
		BlackStones: blackStones,
		WhiteStones: whiteStones,
		Winner:      outcomeName(outcome),
		Duration:    time.Since(start),
	}
	if opts.Store != nil {
		if rec, err = opts.Store.RecordGame(rec); err != nil {
			return storage.GameRecord{}, err
		}
	}

	log.Info().
		Int("game", i+1).
		Str("black", rec.Black).
		Str("white", rec.White).
		Int("black_stones", blackStones).
		Int("white_stones", whiteStones).
		Str("result", outcome.String()).
		Msg("game finished")
	return rec, nil
}

func outcomeName(o board.Outcome) string {
	switch o {
	case board.BlackWins:
		return "black"
	case board.WhiteWins:
		return "white"
	}
	return "draw"
}
