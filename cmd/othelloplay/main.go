// Command othelloplay runs the Othello engine over the text protocol on
// stdin/stdout, or plays a self-play match with -match.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/othelloplay/internal/engine"
	"github.com/hailam/othelloplay/internal/protocol"
	"github.com/hailam/othelloplay/internal/storage"
)

var (
	configPath   = flag.String("config", "", "engine config file (JSON)")
	hashMB       = flag.Int("hash", 0, "transposition table size in MB")
	dbDir        = flag.String("db", "", `analysis database directory, "default" for the data directory`)
	logLevel     = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	matchGames   = flag.Int("match", 0, "play a self-play match of N games and exit")
	opponentPath = flag.String("opponent", "", "config file of the match opponent (default: the built-in defaults)")
	parallel     = flag.Int("parallel", 0, "match games played at once (0: one per CPU)")
	openingMoves = flag.Int("openings", 4, "random opening moves per match game")
	seed         = flag.Uint64("seed", 1, "seed of the match openings")
	moveTime     = flag.Duration("movetime", 0, "time per move in match games")
)

func main() {
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("othelloplay failed")
	}
}

func run() error {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *hashMB > 0 {
		cfg.HashMB = *hashMB
	}
	if *dbDir != "" {
		cfg.DBDir = *dbDir
	}

	var store *storage.Storage
	if cfg.DBDir != "" {
		dir := cfg.DBDir
		if dir == "default" {
			dir = ""
		}
		if store, err = storage.Open(dir); err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *matchGames > 0 {
		return runMatch(ctx, cfg, store)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		eng.SetStorage(store)
	}
	log.Info().Str("engine", eng.Name()).Int("depth", cfg.Depth).Msg("ready")
	return protocol.New(eng, os.Stdout).Run(ctx, os.Stdin)
}

func loadConfig(path string) (engine.Config, error) {
	if path == "" {
		return engine.DefaultConfig(), nil
	}
	return engine.LoadConfig(path)
}

func runMatch(ctx context.Context, cfg engine.Config, store *storage.Storage) error {
	opp, err := loadConfig(*opponentPath)
	if err != nil {
		return err
	}
	a := engine.Player{Config: cfg}
	b := engine.Player{Config: opp}

	start := time.Now()
	res, err := engine.Match(ctx, a, b, engine.MatchOptions{
		Games:        *matchGames,
		Parallel:     *parallel,
		OpeningMoves: *openingMoves,
		Seed:         *seed,
		Limits:       engine.Limits{MoveTime: *moveTime},
		Store:        store,
	})
	if err != nil {
		return err
	}

	// Match renames players with equal names; read them back from a record.
	first := res.Records[0]
	nameA, nameB := first.Black, first.White
	fmt.Printf("%s vs %s: %.1f - %.1f (%d draws) in %v\n",
		nameA, nameB, res.Score(nameA), res.Score(nameB), res.Draws(), time.Since(start).Round(time.Millisecond))
	return nil
}
