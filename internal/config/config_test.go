package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at a missing .env so the working directory
// cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("SIGNALSIM_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.PopSize)
	assert.Equal(t, 1000, cfg.Rounds)
	assert.Equal(t, 0.5, cfg.PropType1)
	assert.InDelta(t, 0.05, cfg.InitialA1(1), 1e-12)
	assert.Equal(t, 1, cfg.Cells())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"PopSize":    func(c *Config) { c.PopSize = 0 },
		"Rounds":     func(c *Config) { c.Rounds = -1 },
		"WeightGrid": func(c *Config) { c.WeightGrid = 0 },
		"InitGrid":   func(c *Config) { c.InitGrid = 0 },
		"PropType1":  func(c *Config) { c.PropType1 = 1.2 },
		"InitialB1":  func(c *Config) { c.InitialB1 = -0.1 },
		"Workers":    func(c *Config) { c.Workers = 0 },
		"LogLevel":   func(c *Config) { c.LogLevel = "loud" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			err := cfg.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestValidateRejectsGridPastOne(t *testing.T) {
	cfg := Default()
	cfg.InitGrid = 21
	cfg.InitStep = 0.05

	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	assert.Equal(t, "InitStep", verr.Field)

	cfg.InitGrid = 20
	assert.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("SIGNALSIM_POP_SIZE", "200")
	t.Setenv("SIGNALSIM_ROUNDS", "50")
	t.Setenv("SIGNALSIM_FULL_SCAN", "true")

	cfg, err := Load([]string{"-rounds", "75", "-seed", "9"})
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.PopSize)
	assert.Equal(t, 75, cfg.Rounds)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.True(t, cfg.FullScan)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.env")
	require.NoError(t, os.WriteFile(path, []byte("SIGNALSIM_WEIGHT_GRID=4\nSIGNALSIM_PROP_TYPE1=0.25\n"), 0o644))
	t.Setenv("SIGNALSIM_ENV_FILE", path)
	// godotenv does not override variables that are already set.
	t.Setenv("SIGNALSIM_WEIGHT_GRID", "")
	os.Unsetenv("SIGNALSIM_WEIGHT_GRID")
	t.Setenv("SIGNALSIM_PROP_TYPE1", "")
	os.Unsetenv("SIGNALSIM_PROP_TYPE1")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WeightGrid)
	assert.Equal(t, 0.25, cfg.PropType1)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SIGNALSIM_ROUNDS", "many")

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"-pop", "-5"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "PopSize", verr.Field)
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	cfg.LogLevel = "nope"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
