package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/hailam/othelloplay/internal/eval"
	"github.com/hailam/othelloplay/internal/search"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid engine config")

// Replacement policy names used in config files.
const (
	ReplaceDeeper = "deeper"
	ReplaceAlways = "always"
)

// Config holds the engine settings. The zero value of every field except
// Algorithm and Evaluator means "use the default".
type Config struct {
	Algorithm Algorithm `json:"algorithm"`
	Evaluator eval.Kind `json:"evaluator"`
	// OrderEvaluator ranks children for move ordering. Nil means the leaf
	// evaluator.
	OrderEvaluator *eval.Kind `json:"order_evaluator,omitempty"`

	Depth      int `json:"depth"`
	MoveTimeMS int `json:"move_time_ms"`

	HashMB      int    `json:"hash_mb"`
	Replacement string `json:"replacement"`
	Verify      bool   `json:"verify"`

	BlendThreshold int    `json:"blend_threshold"`
	Noise          int    `json:"noise"`
	Seed           uint64 `json:"seed"`
	WeightsFile    string `json:"weights_file,omitempty"`

	Probes []search.Probe `json:"probes,omitempty"`

	// DBDir enables the analysis cache in the given directory. "default"
	// selects the platform data directory.
	DBDir string `json:"db_dir,omitempty"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Algorithm:      NegaScout,
		Evaluator:      eval.KindBlend,
		Depth:          8,
		HashMB:         16,
		Replacement:    ReplaceDeeper,
		Verify:         true,
		BlendThreshold: eval.DefaultBlendThreshold,
		Probes: []search.Probe{
			{MinDepth: 4, Reduction: 2, Margin: 8},
			{MinDepth: 8, Reduction: 4, Margin: 12},
		},
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of the numeric settings.
func (c Config) Validate() error {
	switch {
	case c.Depth < 0 || c.Depth > search.MaxDepth:
		return fmt.Errorf("%w: depth %d outside [0, %d]", ErrInvalidConfig, c.Depth, search.MaxDepth)
	case c.MoveTimeMS < 0:
		return fmt.Errorf("%w: negative move time", ErrInvalidConfig)
	case c.HashMB < 0:
		return fmt.Errorf("%w: negative hash size", ErrInvalidConfig)
	case c.BlendThreshold < 0 || c.BlendThreshold > 64:
		return fmt.Errorf("%w: blend threshold %d outside [0, 64]", ErrInvalidConfig, c.BlendThreshold)
	case c.Noise < 0:
		return fmt.Errorf("%w: negative noise", ErrInvalidConfig)
	}
	if _, err := c.replacement(); err != nil {
		return err
	}
	return nil
}

// MoveTime returns the per-move time limit, zero meaning none.
func (c Config) MoveTime() time.Duration {
	return time.Duration(c.MoveTimeMS) * time.Millisecond
}

// Name identifies the player configured by c, e.g. "negascout/blend".
func (c Config) Name() string {
	return c.Algorithm.String() + "/" + c.Evaluator.String()
}

// CacheKey fingerprints the settings that change search results, e.g.
// "negascout/blend/1f0c9a4e5b7d2c38". Cached analyses are shared only
// between configs with equal keys. The weights file is hashed by content.
func (c Config) CacheKey() (string, error) {
	def := DefaultConfig()
	h := xxhash.New()

	threshold := c.BlendThreshold
	if threshold == 0 {
		threshold = def.BlendThreshold
	}
	fmt.Fprintf(h, "threshold=%d noise=%d seed=%d\n", threshold, c.Noise, c.Seed)
	if c.OrderEvaluator != nil {
		fmt.Fprintf(h, "order=%s\n", *c.OrderEvaluator)
	}
	if c.Algorithm.UsesTable() {
		hashMB := c.HashMB
		if hashMB == 0 {
			hashMB = def.HashMB
		}
		policy, err := c.replacement()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "hash=%d replacement=%d verify=%t\n", hashMB, policy, c.Verify)
	}
	if c.Algorithm == NegaScoutMPC {
		for _, p := range c.Probes {
			fmt.Fprintf(h, "probe=%d,%d,%d\n", p.MinDepth, p.Reduction, p.Margin)
		}
	}
	if c.WeightsFile != "" {
		raw, err := os.ReadFile(c.WeightsFile)
		if err != nil {
			return "", err
		}
		h.WriteString("weights=")
		h.Write(raw)
	}
	return fmt.Sprintf("%s/%s/%016x", c.Algorithm, c.Evaluator, h.Sum64()), nil
}

func (c Config) replacement() (search.Replacement, error) {
	switch c.Replacement {
	case "", ReplaceDeeper:
		return search.ReplaceDeeper, nil
	case ReplaceAlways:
		return search.ReplaceAlways, nil
	}
	return 0, fmt.Errorf("%w: replacement %q", ErrInvalidConfig, c.Replacement)
}

func (c Config) evalOptions() (eval.Options, error) {
	opts := eval.Options{
		BlendThreshold: c.BlendThreshold,
		Noise:          c.Noise,
		Seed:           c.Seed,
	}
	if c.WeightsFile == "" {
		return opts, nil
	}
	f, err := os.Open(c.WeightsFile)
	if err != nil {
		return opts, err
	}
	defer f.Close()
	w, err := eval.LoadPatternWeights(f)
	if err != nil {
		return opts, fmt.Errorf("load %s: %w", c.WeightsFile, err)
	}
	opts.Weights = w
	return opts, nil
}
