// Agent behavior: best response on first play, imitation-driven revision
// afterwards. Both games share the same revision rule.
package agents

import (
	"math/rand"

	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/game"
)

// RevisionScale normalizes a payoff gap into a revision probability.
const RevisionScale = 3.0

// Env is everything a decision reads besides the agent's own state.
// Beliefs is the snapshot from the end of the previous round.
type Env struct {
	Beliefs *beliefs.Beliefs
	Payoffs game.Payoffs
	Mix     game.Mix
	Pop     *Population
	Rng     *rand.Rand
}

// RevisionProbability is the chance of reconsidering after observing a peer
// whose last payoff was peer while ours was own.
func RevisionProbability(peer, own float64) float64 {
	return max(0, (peer-own)/RevisionScale)
}

// MoveA chooses the agent's Game A action against opp and updates its
// history.
func (a *Agent) MoveA(opp AgentID, env *Env) game.Action {
	first := a.GamesA == 0
	a.GamesA++

	if !first {
		peer := env.Pop.SamplePeer(env.Rng, a.Kind)
		if peer.ActionA == a.ActionA {
			return a.ActionA
		}
		if env.Rng.Float64() > RevisionProbability(peer.PayoffA, a.PayoffA) {
			return a.ActionA
		}
	}

	ev := ExpectedA(a.Kind, a.ActionB, env)
	a.ActionA = pick(ev)
	a.PayoffA = ev[a.ActionA-1]
	a.LastOpponentA = opp
	return a.ActionA
}

// MoveB chooses the agent's Game B action against opp, conditioning on the
// Game A action opp currently shows, and updates its history.
func (a *Agent) MoveB(opp *Agent, env *Env) game.Action {
	first := a.GamesB == 0
	a.GamesB++

	if !first {
		peer := env.Pop.SamplePeer(env.Rng, a.Kind)
		if peer.ActionB == a.ActionB {
			return a.ActionB
		}
		if env.Rng.Float64() > RevisionProbability(peer.PayoffB, a.PayoffB) {
			return a.ActionB
		}
	}

	ev := ExpectedB(a.Kind, opp.ActionA, env)
	a.ActionB = pick(ev)
	a.PayoffB = ev[a.ActionB-1]
	a.LastOpponentB = opp.ID
	return a.ActionB
}

// pick returns the action with the greater expected payoff. Ties go to
// action 1.
func pick(ev [2]float64) game.Action {
	if ev[1] > ev[0] {
		return game.Action2
	}
	return game.Action1
}
