package engine

import (
	"github.com/talgya/signal-norms/internal/agents"
	"github.com/talgya/signal-norms/internal/game"
)

// InteractionsPerRound returns how many pairings are drawn each round:
// one twentieth of the population, less one.
func InteractionsPerRound(popSize int) int {
	return max(0, popSize/20-1)
}

// PlayRound draws the round's interactions and resolves each one. Players are
// drawn with replacement, so an agent may meet itself. Every decision reads
// the same snapshot.
func (s *Simulation) PlayRound() {
	snap := s.Beliefs
	env := &agents.Env{
		Beliefs: &snap,
		Payoffs: s.Params.Payoffs,
		Mix:     s.Params.Mix,
		Pop:     s.Pop,
		Rng:     s.rng,
	}

	n := s.Pop.Size()
	for range InteractionsPerRound(n) {
		p1 := s.Pop.Get(agents.AgentID(s.rng.Intn(n) + 1))
		p2 := s.Pop.Get(agents.AgentID(s.rng.Intn(n) + 1))
		label := game.GameA
		if s.rng.Intn(2) == 1 {
			label = game.GameB
		}

		switch label {
		case game.GameA:
			playA(p1, p2, env)
		case game.GameB:
			playB(p1, p2, env)
		}
	}
}

// playA resolves a Game A encounter, then records both actions and
// opponents.
func playA(p1, p2 *agents.Agent, env *agents.Env) {
	x1 := p1.MoveA(p2.ID, env)
	x2 := p2.MoveA(p1.ID, env)

	p1.ActionA = x1
	p2.ActionA = x2
	p1.LastOpponentA = p2.ID
	p2.LastOpponentA = p1.ID
}

// playB resolves a Game B encounter. Player 2 decides after player 1 has
// already moved. Each side records the other's current Game A action.
func playB(p1, p2 *agents.Agent, env *agents.Env) {
	x1 := p1.MoveB(p2, env)
	x2 := p2.MoveB(p1, env)

	p1.ActionB = x1
	p2.ActionB = x2
	p1.LastOpponentB = p2.ID
	p2.LastOpponentB = p1.ID
	p1.LastOpponentBActionA = p2.ActionA
	p2.LastOpponentBActionA = p1.ActionA
}
