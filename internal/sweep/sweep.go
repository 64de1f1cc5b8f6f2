// Package sweep runs the simulator over the weight × PropPlayingA1 grid and
// hands every finished cell to the configured sinks.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/config"
	"github.com/talgya/signal-norms/internal/engine"
	"github.com/talgya/signal-norms/internal/entropy"
	"github.com/talgya/signal-norms/internal/game"
	"github.com/talgya/signal-norms/internal/persistence"
)

// Sink receives each finished run.
type Sink interface {
	SaveRun(rec persistence.RunRecord, series *engine.Series) error
}

// CellResult summarizes one finished grid cell.
type CellResult struct {
	Record  persistence.RunRecord
	Final   beliefs.Beliefs // Snapshot after the last round
	Elapsed time.Duration
}

// Run plays every grid cell, up to cfg.Workers at a time, and returns the
// results ordered by weight index, then PropPlayingA1 index. The first error
// cancels the remaining cells.
func Run(ctx context.Context, cfg config.Config, sinks ...Sink) ([]CellResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := entropy.Resolve(cfg.Seed)

	slog.Info("sweep starting",
		"cells", cfg.Cells(),
		"pop_size", humanize.Comma(int64(cfg.PopSize)),
		"rounds", humanize.Comma(int64(cfg.Rounds)),
		"workers", cfg.Workers,
		"seed", seed,
	)
	start := time.Now()

	results := make([]CellResult, cfg.Cells())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for w := 1; w <= cfg.WeightGrid; w++ {
		for u := 1; u <= cfg.InitGrid; u++ {
			idx := (w-1)*cfg.InitGrid + (u - 1)
			g.Go(func() error {
				res, series, err := RunCell(gctx, cfg, seed, w, u)
				if err != nil {
					return err
				}
				for _, s := range sinks {
					if err := s.SaveRun(res.Record, series); err != nil {
						return fmt.Errorf("save %s: %w", persistence.FileName(w, u), err)
					}
				}
				results[idx] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	interactions := int64(cfg.Cells()) * int64(cfg.Rounds) * int64(engine.InteractionsPerRound(cfg.PopSize))
	slog.Info("sweep complete",
		"cells", cfg.Cells(),
		"interactions", humanize.Comma(interactions),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return results, nil
}

// RunCell plays the single run of grid cell (w, u) on its own random stream.
func RunCell(ctx context.Context, cfg config.Config, baseSeed int64, w, u int) (CellResult, *engine.Series, error) {
	start := time.Now()
	cellSeed := entropy.CellSeed(baseSeed, w, u, cfg.InitGrid)

	params := engine.Params{
		PopSize:  cfg.PopSize,
		Rounds:   cfg.Rounds,
		Mix:      game.NewMix(cfg.PropType1),
		Payoffs:  game.Standard(w),
		InitA1:   cfg.InitialA1(u),
		InitB1:   cfg.InitialB1,
		FullScan: cfg.FullScan,
	}
	sim, err := engine.New(params, entropy.Stream(cellSeed))
	if err != nil {
		return CellResult{}, nil, fmt.Errorf("cell w=%d u=%d: %w", w, u, err)
	}
	series, err := sim.Run(ctx)
	if err != nil {
		return CellResult{}, nil, fmt.Errorf("cell w=%d u=%d: %w", w, u, err)
	}

	res := CellResult{
		Record: persistence.RunRecord{
			ID:          uuid.NewString(),
			WeightIndex: w,
			InitIndex:   u,
			Weight:      w,
			InitialA1:   params.InitA1,
			PopSize:     cfg.PopSize,
			Rounds:      cfg.Rounds,
			PropType1:   cfg.PropType1,
			Seed:        cellSeed,
			FullScan:    cfg.FullScan,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Final:   series.Last(),
		Elapsed: time.Since(start),
	}

	slog.Info("game complete",
		"weight", w,
		"prop_playing_a1", fmt.Sprintf("%.2f", params.InitA1),
		"run_id", res.Record.ID,
		"final_a1", fmt.Sprintf("%.3f", res.Final.PropPlayingA1),
		"final_b1", fmt.Sprintf("%.3f", res.Final.PropPlayingB1),
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return res, series, nil
}
