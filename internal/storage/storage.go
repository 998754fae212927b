package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Storage keys
const (
	keyStats       = "stats"
	prefixAnalysis = "analysis/"
	prefixGame     = "game/"
)

// ErrNotFound is returned when no stored value matches a lookup.
var ErrNotFound = errors.New("not found")

// Analysis is a cached search result for one position. Settings
// fingerprints the engine settings the result was computed with; results
// are shared only between equal fingerprints.
type Analysis struct {
	Notation  string    `json:"notation"`
	Settings  string    `json:"settings"`
	Algorithm string    `json:"algorithm"`
	Evaluator string    `json:"evaluator"`
	Depth     int       `json:"depth"`
	Move      string    `json:"move"`
	HasMove   bool      `json:"has_move"`
	Score     int       `json:"score"`
	Nodes     uint64    `json:"nodes"`
	PV        []string  `json:"pv"`
	SavedAt   time.Time `json:"saved_at"`
}

// GameRecord is a finished game.
type GameRecord struct {
	ID          uint64        `json:"id"`
	Black       string        `json:"black"`
	White       string        `json:"white"`
	Opening     []string      `json:"opening"`
	Moves       []string      `json:"moves"`
	BlackStones int           `json:"black_stones"`
	WhiteStones int           `json:"white_stones"`
	Winner      string        `json:"winner"` // "black", "white" or "draw"
	Duration    time.Duration `json:"duration"`
	PlayedAt    time.Time     `json:"played_at"`
}

// PlayerStats are the results of one player name.
type PlayerStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed int                     `json:"games_played"`
	BlackWins   int                     `json:"black_wins"`
	WhiteWins   int                     `json:"white_wins"`
	Draws       int                     `json:"draws"`
	ByPlayer    map[string]*PlayerStats `json:"by_player"`
	TotalTime   time.Duration           `json:"total_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{ByPlayer: make(map[string]*PlayerStats)}
}

func (s *GameStats) player(name string) *PlayerStats {
	p, ok := s.ByPlayer[name]
	if !ok {
		p = &PlayerStats{}
		s.ByPlayer[name] = p
	}
	return p
}

// Score returns the match points of a player, a draw counting half.
func (s *GameStats) Score(name string) float64 {
	p, ok := s.ByPlayer[name]
	if !ok {
		return 0
	}
	return float64(p.Wins) + float64(p.Draws)/2
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
	mu sync.Mutex // serialises read-modify-write of the stats key
}

// Open opens the database in dir, or in the default database directory
// when dir is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{log.With().Str("component", "badger").Logger().Level(zerolog.WarnLevel)}
	return open(opts)
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info().Str("dir", opts.Dir).Bool("in_memory", opts.InMemory).Msg("storage opened")
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		log.Info().Msg("storage closed")
		return s.db.Close()
	}
	return nil
}

func analysisKey(notation, settings string) []byte {
	return []byte(prefixAnalysis + settings + "/" + notation)
}

// SaveAnalysis stores a search result. A stored result of greater depth for
// the same position and settings is kept.
func (s *Storage) SaveAnalysis(a Analysis) error {
	if a.SavedAt.IsZero() {
		a.SavedAt = time.Now()
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	key := analysisKey(a.Notation, a.Settings)

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			var old Analysis
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &old) }); err != nil {
				return err
			}
			if old.Depth > a.Depth {
				return nil
			}
		}
		return txn.Set(key, data)
	})
}

// LoadAnalysis returns the stored result of at least minDepth for a position
// searched with the given settings.
func (s *Storage) LoadAnalysis(notation, settings string, minDepth int) (Analysis, error) {
	var a Analysis
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(notation, settings))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &a)
		})
	})
	if err != nil {
		return Analysis{}, err
	}
	if a.Depth < minDepth {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	var stats *GameStats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*GameStats, error) {
	stats := NewGameStats()
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.ByPlayer == nil {
		stats.ByPlayer = make(map[string]*PlayerStats)
	}
	return stats, err
}

// RecordGame stores a finished game and updates the statistics in one
// transaction. It returns the record with its assigned ID.
func (s *Storage) RecordGame(rec GameRecord) (GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.TotalTime += rec.Duration
		rec.ID = uint64(stats.GamesPlayed)

		black, white := stats.player(rec.Black), stats.player(rec.White)
		switch rec.Winner {
		case "black":
			stats.BlackWins++
			black.Wins++
			white.Losses++
		case "white":
			stats.WhiteWins++
			white.Wins++
			black.Losses++
		default:
			stats.Draws++
			black.Draws++
			white.Draws++
		}

		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		recData, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), statsData); err != nil {
			return err
		}
		return txn.Set(gameKey(rec.ID), recData)
	})
	return rec, err
}

func gameKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%012d", prefixGame, id))
}

// Games returns up to limit stored games in the order they were recorded.
// A limit of 0 returns all games.
func (s *Storage) Games(limit int) ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
			if limit > 0 && len(games) >= limit {
				break
			}
		}
		return nil
	})
	return games, err
}

// badgerLogger forwards badger's log output to zerolog.
type badgerLogger struct {
	zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Info().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug().Msgf(format, args...)
}
