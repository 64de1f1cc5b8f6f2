// Package agents provides the agent data model, population partitions and
// the per-game decision procedures.
package agents

import (
	"math/rand"

	"github.com/talgya/signal-norms/internal/game"
)

// AgentID is a unique, stable index in 1..population size.
type AgentID uint64

// Agent is one member of the population.
type Agent struct {
	ID   AgentID   `json:"id"`
	Kind game.Kind `json:"kind"` // Immutable after spawning

	// Current action in each game, always 1 or 2.
	ActionA game.Action `json:"action_a"`
	ActionB game.Action `json:"action_b"`

	// Expected payoff of the last chosen action. Baseline for revision.
	PayoffA float64 `json:"payoff_a"`
	PayoffB float64 `json:"payoff_b"`

	// Number of times the agent has been asked to move in each game.
	GamesA int `json:"games_a"`
	GamesB int `json:"games_b"`

	LastOpponentA AgentID `json:"last_opponent_a"`
	LastOpponentB AgentID `json:"last_opponent_b"`

	// Game A action of the last Game B partner, recorded when that game ended.
	LastOpponentBActionA game.Action `json:"last_opponent_b_action_a"`
}

// Population is the full agent collection of one run, partitioned by kind.
type Population struct {
	Agents []*Agent // Agents[i].ID == i+1

	byKind [2][]*Agent
}

// NewPopulation indexes agents by kind. Agents must be ordered by ID.
func NewPopulation(agents []*Agent) *Population {
	p := &Population{Agents: agents}
	for _, a := range agents {
		p.byKind[a.Kind-1] = append(p.byKind[a.Kind-1], a)
	}
	return p
}

// Size returns the number of agents.
func (p *Population) Size() int {
	return len(p.Agents)
}

// Get returns the agent with the given ID, or nil if out of range.
func (p *Population) Get(id AgentID) *Agent {
	if id < 1 || int(id) > len(p.Agents) {
		return nil
	}
	return p.Agents[id-1]
}

// Count returns the number of agents of kind k.
func (p *Population) Count(k game.Kind) int {
	return len(p.byKind[k-1])
}

// OfKind returns the agents of kind k. The slice must not be modified.
func (p *Population) OfKind(k game.Kind) []*Agent {
	return p.byKind[k-1]
}

// SamplePeer draws an agent of kind k uniformly at random. The caller itself
// may be drawn. Returns nil if no agent has that kind.
func (p *Population) SamplePeer(rng *rand.Rand, k game.Kind) *Agent {
	peers := p.byKind[k-1]
	if len(peers) == 0 {
		return nil
	}
	return peers[rng.Intn(len(peers))]
}
