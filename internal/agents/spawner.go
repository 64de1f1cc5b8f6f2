// Agent spawning: creates the initial population with kinds, starting
// actions and seeded history.
package agents

import (
	"math/rand"

	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/game"
)

// Spawner creates agents for one run from that run's random stream.
type Spawner struct {
	rng    *rand.Rand
	nextID AgentID
}

// NewSpawner creates an agent spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{
		rng:    rng,
		nextID: 1,
	}
}

// SpawnPopulation creates count agents. Kinds follow mix; starting actions
// follow the per-kind frequencies in initial.
func (s *Spawner) SpawnPopulation(count int, mix game.Mix, initial *beliefs.Beliefs, payoffs game.Payoffs) *Population {
	agents := make([]*Agent, 0, count)
	for range count {
		agents = append(agents, s.spawnOne(count, mix, initial, payoffs))
	}
	return NewPopulation(agents)
}

func (s *Spawner) spawnOne(count int, mix game.Mix, initial *beliefs.Beliefs, payoffs game.Payoffs) *Agent {
	id := s.nextID
	s.nextID++

	kind := game.Type2
	if s.rng.Float64() < mix.Type1 {
		kind = game.Type1
	}

	actionA := game.Action2
	if s.rng.Float64() < initial.PlayingA(kind, game.Action1) {
		actionA = game.Action1
	}
	actionB := game.Action2
	if s.rng.Float64() < initial.PlayingB(kind, game.Action1) {
		actionB = game.Action1
	}

	// History is filled with draws from the runtime ranges only so that no
	// field is undefined; none of it matters before the first interaction.
	return &Agent{
		ID:                   id,
		Kind:                 kind,
		ActionA:              actionA,
		ActionB:              actionB,
		PayoffA:              s.rng.Float64() * payoffs.A.Max(),
		PayoffB:              s.rng.Float64() * payoffs.B(kind).Max(),
		LastOpponentA:        AgentID(s.rng.Intn(count) + 1),
		LastOpponentB:        AgentID(s.rng.Intn(count) + 1),
		LastOpponentBActionA: game.Action(s.rng.Intn(2) + 1),
	}
}
