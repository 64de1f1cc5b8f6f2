// Simulation ties together the population, the belief snapshot and the
// round scheduler for one run.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/signal-norms/internal/agents"
	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/game"
)

// ErrInvalidParams is wrapped by New when run parameters are unusable.
var ErrInvalidParams = errors.New("invalid run parameters")

// Params configures one run.
type Params struct {
	PopSize int
	Rounds  int
	Mix     game.Mix
	Payoffs game.Payoffs
	InitA1  float64 // Initial probability of A1, both kinds
	InitB1  float64 // Initial probability of B1, both kinds

	// FullScan includes the last agent in aggregation. Off by default: the
	// scan covers agents 1..N-1.
	FullScan bool
}

// State is the lifecycle stage of a run.
type State uint8

const (
	StateInit State = iota
	StatePlaying
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePlaying:
		return "playing"
	default:
		return "finished"
	}
}

// Simulation holds the complete state of one run.
type Simulation struct {
	Params  Params
	Pop     *agents.Population
	Beliefs beliefs.Beliefs // Snapshot read by the next round's decisions
	Round   int             // Most recent round completed
	State   State

	rng    *rand.Rand
	series *Series
}

// New builds a population from params and returns a run ready to play.
func New(p Params, rng *rand.Rand) (*Simulation, error) {
	if p.PopSize <= 0 {
		return nil, fmt.Errorf("%w: population size %d", ErrInvalidParams, p.PopSize)
	}
	initial := beliefs.Initial(p.Mix, p.InitA1, p.InitB1)
	pop := agents.NewSpawner(rng).SpawnPopulation(p.PopSize, p.Mix, &initial, p.Payoffs)
	return NewFromPopulation(p, pop, rng)
}

// NewFromPopulation starts a run over an existing population. The initial
// snapshot still comes from params.
func NewFromPopulation(p Params, pop *agents.Population, rng *rand.Rand) (*Simulation, error) {
	if pop == nil || pop.Size() == 0 {
		return nil, fmt.Errorf("%w: empty population", ErrInvalidParams)
	}
	if p.Rounds < 0 {
		return nil, fmt.Errorf("%w: rounds %d", ErrInvalidParams, p.Rounds)
	}
	p.PopSize = pop.Size()

	for _, k := range game.Kinds {
		if pop.Count(k) == 0 {
			slog.Warn("population has no agents of kind", "kind", k, "pop_size", pop.Size())
		}
	}

	s := &Simulation{
		Params:  p,
		Pop:     pop,
		Beliefs: beliefs.Initial(p.Mix, p.InitA1, p.InitB1),
		rng:     rng,
	}
	s.series = NewSeries(p.Rounds + 1)
	s.series.Append(s.Beliefs)
	return s, nil
}

// Step plays one round, then replaces the snapshot with a fresh aggregate.
func (s *Simulation) Step() {
	s.State = StatePlaying
	s.PlayRound()
	s.Beliefs = Aggregate(s.Pop, s.Params.Mix, s.Params.FullScan)
	s.Round++
	s.series.Append(s.Beliefs)

	slog.Debug("round complete",
		"round", s.Round,
		"prop_a1", fmt.Sprintf("%.3f", s.Beliefs.PropPlayingA1),
		"prop_b1", fmt.Sprintf("%.3f", s.Beliefs.PropPlayingB1),
	)
}

// Run plays every remaining round and returns the series, which holds the
// initial snapshot plus one per round. ctx is checked between rounds.
func (s *Simulation) Run(ctx context.Context) (*Series, error) {
	for s.Round < s.Params.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("round %d: %w", s.Round+1, err)
		}
		s.Step()
	}
	s.State = StateFinished
	return s.series, nil
}

// Series returns the snapshots recorded so far.
func (s *Simulation) Series() *Series {
	return s.series
}
