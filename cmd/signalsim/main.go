// Command signalsim sweeps the evolutionary signaling game over a grid of
// Game B weights and initial PropPlayingA1 values, writing one series per
// grid cell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/signal-norms/internal/config"
	"github.com/talgya/signal-norms/internal/entropy"
	"github.com/talgya/signal-norms/internal/persistence"
	"github.com/talgya/signal-norms/internal/sweep"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	cfg.Seed = entropy.Resolve(cfg.Seed)

	// ── Sinks ────────────────────────────────────────────────────────
	var sinks []sweep.Sink
	if cfg.OutputDir != "" {
		sinks = append(sinks, persistence.FileSink{Dir: cfg.OutputDir})
	}
	if cfg.DBPath != "" {
		db, err := persistence.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.DBPath)

		if err := saveSweepMeta(db, cfg); err != nil {
			slog.Error("failed to save sweep metadata", "error", err)
		}
		sinks = append(sinks, db)
	}
	if len(sinks) == 0 {
		slog.Warn("no output directory or database configured, results will only be logged")
	}

	// ── Signals ──────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	// ── Sweep ────────────────────────────────────────────────────────
	results, err := sweep.Run(ctx, cfg, sinks...)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("PROCESS COMPLETE: %d runs of %d agents × %d rounds (seed %d)\n",
		len(results), cfg.PopSize, cfg.Rounds, cfg.Seed)
}

func saveSweepMeta(db *persistence.DB, cfg config.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := db.SaveMeta("config", string(data)); err != nil {
		return err
	}
	return db.SaveMeta("seed", strconv.FormatInt(cfg.Seed, 10))
}
