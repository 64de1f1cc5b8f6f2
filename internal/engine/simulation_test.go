package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/signal-norms/internal/agents"
	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/game"
)

func testParams(popSize, rounds, weight int) Params {
	return Params{
		PopSize: popSize,
		Rounds:  rounds,
		Mix:     game.NewMix(0.5),
		Payoffs: game.Standard(weight),
		InitA1:  0.05,
		InitB1:  0.5,
	}
}

func newSim(t *testing.T, p Params, seed int64) *Simulation {
	t.Helper()
	sim, err := New(p, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return sim
}

func assertFrequencies(t *testing.T, b beliefs.Beliefs) {
	t.Helper()
	for _, st := range b.Stats() {
		assert.GreaterOrEqual(t, st.Value, 0.0, st.Name)
		assert.LessOrEqual(t, st.Value, 1.0+1e-12, st.Name)
	}
}

func TestInteractionsPerRound(t *testing.T) {
	assert.Equal(t, 49, InteractionsPerRound(1000))
	assert.Equal(t, 1, InteractionsPerRound(40))
	assert.Equal(t, 0, InteractionsPerRound(20))
	assert.Equal(t, 0, InteractionsPerRound(4))
	assert.Equal(t, 0, InteractionsPerRound(0))
}

func TestNewRejectsEmptyPopulation(t *testing.T) {
	_, err := New(testParams(0, 10, 1), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewFromPopulation(testParams(4, -1, 1), agents.NewPopulation([]*agents.Agent{{ID: 1, Kind: game.Type1}}), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestRunRecordsInitialPlusEveryRound(t *testing.T) {
	sim := newSim(t, testParams(200, 25, 1), 3)
	assert.Equal(t, StateInit, sim.State)

	series, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 26, series.Len())
	assert.Equal(t, 25, sim.Round)
	assert.Equal(t, StateFinished, sim.State)
	assert.Equal(t, beliefs.Initial(game.NewMix(0.5), 0.05, 0.5), series.Snapshots[0])
	assert.Equal(t, sim.Beliefs, series.Last())
	for _, snap := range series.Snapshots {
		assertFrequencies(t, snap)
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	run := func() *Series {
		s, err := newSim(t, testParams(300, 40, 2), 99).Run(context.Background())
		require.NoError(t, err)
		return s
	}

	a, b := run(), run()
	assert.Equal(t, a.Snapshots, b.Snapshots)
	assert.Equal(t, a.Columns(), b.Columns())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	sim := newSim(t, testParams(100, 10, 1), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sim.Round)
}

func TestTypeFrequenciesNeverExceedOne(t *testing.T) {
	sim := newSim(t, testParams(400, 60, 3), 17)
	for range 60 {
		sim.Step()
		b := sim.Beliefs
		assert.LessOrEqual(t, b.Type1PlayingA1+b.Type1PlayingA2, 1.0+1e-12)
		assert.LessOrEqual(t, b.Type2PlayingA1+b.Type2PlayingA2, 1.0+1e-12)
		assert.LessOrEqual(t, b.Type1PlayingB1+b.Type1PlayingB2, 1.0+1e-12)
		assert.LessOrEqual(t, b.Type2PlayingB1+b.Type2PlayingB2, 1.0+1e-12)
	}
}

func TestZeroWeightFreezesExperiencedGameBActions(t *testing.T) {
	sim := newSim(t, testParams(500, 80, 0), 5)

	before := make([]game.Action, sim.Pop.Size())
	for i, a := range sim.Pop.Agents {
		a.GamesB = 1
		assert.Zero(t, a.PayoffB)
		before[i] = a.ActionB
	}

	_, err := sim.Run(context.Background())
	require.NoError(t, err)

	for i, a := range sim.Pop.Agents {
		assert.Equal(t, before[i], a.ActionB, "agent %d", a.ID)
	}
}

func TestSmallPopulationEndToEnd(t *testing.T) {
	pop := agents.NewPopulation([]*agents.Agent{
		{ID: 1, Kind: game.Type1, ActionA: game.Action1, ActionB: game.Action1, LastOpponentBActionA: game.Action1},
		{ID: 2, Kind: game.Type1, ActionA: game.Action2, ActionB: game.Action2, LastOpponentBActionA: game.Action2},
		{ID: 3, Kind: game.Type2, ActionA: game.Action2, ActionB: game.Action1, LastOpponentBActionA: game.Action1},
		{ID: 4, Kind: game.Type2, ActionA: game.Action1, ActionB: game.Action2, LastOpponentBActionA: game.Action2},
	})
	sim, err := NewFromPopulation(testParams(4, 1, 1), pop, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	series, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())

	cols := series.Columns()
	require.Len(t, cols, len(beliefs.Names()))
	for _, name := range beliefs.Names() {
		require.Len(t, cols[name], 2, name)
		for _, v := range cols[name] {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	}

	// Agent 4 is outside the default scan.
	last := series.Last()
	assert.Equal(t, 0.5, last.Type1PlayingA1)
	assert.Equal(t, 0.5, last.Type2PlayingA2)
	assert.Equal(t, 0.0, last.Type2PlayingA1)
}

func TestSelfPlayIsResolved(t *testing.T) {
	a := &agents.Agent{ID: 1, Kind: game.Type1, ActionA: game.Action1, ActionB: game.Action1, LastOpponentBActionA: game.Action2}
	pop := agents.NewPopulation([]*agents.Agent{a})
	b := beliefs.Initial(game.NewMix(0.5), 0.05, 0.5)
	env := &agents.Env{Beliefs: &b, Payoffs: game.Standard(1), Mix: game.NewMix(0.5), Pop: pop, Rng: rand.New(rand.NewSource(1))}

	playA(a, a, env)
	assert.Equal(t, 2, a.GamesA)
	assert.Equal(t, agents.AgentID(1), a.LastOpponentA)

	playB(a, a, env)
	assert.Equal(t, 2, a.GamesB)
	assert.Equal(t, a.ActionA, a.LastOpponentBActionA)
}

func TestPlayBRecordsPartnerSignal(t *testing.T) {
	p1 := &agents.Agent{ID: 1, Kind: game.Type1, ActionA: game.Action1, ActionB: game.Action2}
	p2 := &agents.Agent{ID: 2, Kind: game.Type2, ActionA: game.Action2, ActionB: game.Action2}
	pop := agents.NewPopulation([]*agents.Agent{p1, p2})
	b := beliefs.Initial(game.NewMix(0.5), 0.5, 0.5)
	env := &agents.Env{Beliefs: &b, Payoffs: game.Standard(1), Mix: game.NewMix(0.5), Pop: pop, Rng: rand.New(rand.NewSource(1))}

	playB(p1, p2, env)

	assert.Equal(t, game.Action2, p1.LastOpponentBActionA)
	assert.Equal(t, game.Action1, p2.LastOpponentBActionA)
	assert.Equal(t, agents.AgentID(2), p1.LastOpponentB)
	assert.Equal(t, agents.AgentID(1), p2.LastOpponentB)
	// Uniform beliefs tie every Game B comparison.
	assert.Equal(t, game.Action1, p1.ActionB)
	assert.Equal(t, game.Action1, p2.ActionB)
	// Game A state is untouched.
	assert.Equal(t, 0, p1.GamesA)
	assert.Equal(t, agents.AgentID(0), p1.LastOpponentA)
}
