// Package config holds the sweep configuration and loads it from defaults,
// an optional .env file, SIGNALSIM_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is everything a sweep needs.
type Config struct {
	PopSize    int     // Agents per run
	Rounds     int     // Rounds per run
	WeightGrid int     // Weights 1..WeightGrid
	InitGrid   int     // PropPlayingA1 values InitStep*1..InitStep*InitGrid
	InitStep   float64
	PropType1  float64 // Share of Type1 agents
	InitialB1  float64 // Initial probability of B1, both kinds

	Seed     int64 // 0 draws a fresh seed
	Workers  int   // Grid cells run concurrently
	FullScan bool  // Include the last agent in aggregation

	OutputDir string // One series file per cell; empty disables
	DBPath    string // SQLite run store; empty disables
	LogLevel  string
}

// Default returns the configuration of the reference experiment.
func Default() Config {
	return Config{
		PopSize:    1000,
		Rounds:     1000,
		WeightGrid: 1,
		InitGrid:   1,
		InitStep:   0.05,
		PropType1:  0.5,
		InitialB1:  0.5,
		Workers:    1,
		OutputDir:  ".",
		LogLevel:   "info",
	}
}

// ValidationError reports a configuration value that cannot start a run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	switch {
	case c.PopSize <= 0:
		return invalid("PopSize", "must be positive, got %d", c.PopSize)
	case c.Rounds <= 0:
		return invalid("Rounds", "must be positive, got %d", c.Rounds)
	case c.WeightGrid <= 0:
		return invalid("WeightGrid", "must be positive, got %d", c.WeightGrid)
	case c.InitGrid <= 0:
		return invalid("InitGrid", "must be positive, got %d", c.InitGrid)
	case c.InitStep <= 0:
		return invalid("InitStep", "must be positive, got %g", c.InitStep)
	case c.InitialA1(c.InitGrid) > 1+1e-9:
		return invalid("InitStep", "%d steps of %g exceed 1", c.InitGrid, c.InitStep)
	case c.PropType1 < 0 || c.PropType1 > 1:
		return invalid("PropType1", "must lie in [0,1], got %g", c.PropType1)
	case c.InitialB1 < 0 || c.InitialB1 > 1:
		return invalid("InitialB1", "must lie in [0,1], got %g", c.InitialB1)
	case c.Workers < 1:
		return invalid("Workers", "must be at least 1, got %d", c.Workers)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return invalid("LogLevel", "%v", err)
	}
	return nil
}

// InitialA1 returns the initial A1 frequency of grid column u (1-based).
func (c Config) InitialA1(u int) float64 {
	return float64(u) * c.InitStep
}

// Cells returns the number of grid cells.
func (c Config) Cells() int {
	return c.WeightGrid * c.InitGrid
}

// SlogLevel returns the configured log level, or Info if it does not parse.
func (c Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// Load builds a Config from defaults, the .env file named by
// SIGNALSIM_ENV_FILE (default ".env"), the environment and args.
func Load(args []string) (Config, error) {
	cfg := Default()

	envFile := envOrDefault("SIGNALSIM_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.applyFlags(args); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"SIGNALSIM_POP_SIZE", &c.PopSize},
		{"SIGNALSIM_ROUNDS", &c.Rounds},
		{"SIGNALSIM_WEIGHT_GRID", &c.WeightGrid},
		{"SIGNALSIM_INIT_GRID", &c.InitGrid},
		{"SIGNALSIM_WORKERS", &c.Workers},
	}
	for _, e := range ints {
		if v, ok := os.LookupEnv(e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"SIGNALSIM_INIT_STEP", &c.InitStep},
		{"SIGNALSIM_PROP_TYPE1", &c.PropType1},
		{"SIGNALSIM_INITIAL_B1", &c.InitialB1},
	}
	for _, e := range floats {
		if v, ok := os.LookupEnv(e.key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = f
		}
	}

	if v, ok := os.LookupEnv("SIGNALSIM_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SIGNALSIM_SEED: %w", err)
		}
		c.Seed = n
	}
	if v, ok := os.LookupEnv("SIGNALSIM_FULL_SCAN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SIGNALSIM_FULL_SCAN: %w", err)
		}
		c.FullScan = b
	}

	c.OutputDir = envOrDefault("SIGNALSIM_OUTPUT_DIR", c.OutputDir)
	c.DBPath = envOrDefault("SIGNALSIM_DB_PATH", c.DBPath)
	c.LogLevel = envOrDefault("SIGNALSIM_LOG_LEVEL", c.LogLevel)
	return nil
}

func (c *Config) applyFlags(args []string) error {
	set := flag.NewFlagSet("signalsim", flag.ContinueOnError)
	set.IntVar(&c.PopSize, "pop", c.PopSize, "number of agents per run")
	set.IntVar(&c.Rounds, "rounds", c.Rounds, "rounds per run")
	set.IntVar(&c.WeightGrid, "weights", c.WeightGrid, "number of Game B weights (1..n)")
	set.IntVar(&c.InitGrid, "inits", c.InitGrid, "number of initial PropPlayingA1 values")
	set.Float64Var(&c.InitStep, "init-step", c.InitStep, "step between initial PropPlayingA1 values")
	set.Float64Var(&c.PropType1, "prop-type1", c.PropType1, "share of Type1 agents")
	set.Float64Var(&c.InitialB1, "initial-b1", c.InitialB1, "initial probability of playing B1")
	set.Int64Var(&c.Seed, "seed", c.Seed, "base random seed (0 draws one)")
	set.IntVar(&c.Workers, "workers", c.Workers, "grid cells run concurrently")
	set.BoolVar(&c.FullScan, "full-scan", c.FullScan, "include the last agent in aggregation")
	set.StringVar(&c.OutputDir, "out", c.OutputDir, "directory for per-cell series files (empty disables)")
	set.StringVar(&c.DBPath, "db", c.DBPath, "SQLite run store path (empty disables)")
	set.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	return set.Parse(args)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
