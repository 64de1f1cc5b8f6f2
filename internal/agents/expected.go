package agents

import (
	"github.com/talgya/signal-norms/internal/game"
)

// ExpectedA returns the expected payoff of each Game A action for an agent of
// kind k that currently plays ownB in Game B.
//
// The direct term is the coordination payoff against the population's Game A
// frequencies. The indirect term is what ownB is expected to earn in Game B
// once the agent has signalled the candidate action: partners of each kind
// respond with the Game B frequencies observed after meeting that signal.
func ExpectedA(k game.Kind, ownB game.Action, env *Env) [2]float64 {
	b := env.Beliefs
	bm := env.Payoffs.B(k)

	var ev [2]float64
	for i, x := range game.Actions {
		direct := 0.0
		for _, y := range game.Actions {
			direct += b.PropPlayingA(y) * env.Payoffs.A.Get(x, y)
		}

		indirect := 0.0
		for _, other := range game.Kinds {
			resp := 0.0
			for _, y := range game.Actions {
				resp += b.OtherPlayB(other, x, y) * bm.Get(ownB, y)
			}
			indirect += env.Mix.Of(other) * resp
		}

		ev[i] = direct + indirect
	}
	return ev
}

// ExpectedB returns the expected payoff of each Game B action for an agent of
// kind k whose partner shows oppA in Game A. The partner's kind is inferred
// from oppA; each kind then plays B at its population frequency.
func ExpectedB(k game.Kind, oppA game.Action, env *Env) [2]float64 {
	b := env.Beliefs
	bm := env.Payoffs.B(k)

	var ev [2]float64
	for i, x := range game.Actions {
		for _, other := range game.Kinds {
			resp := 0.0
			for _, y := range game.Actions {
				resp += b.PlayingB(other, y) * bm.Get(x, y)
			}
			ev[i] += b.ProbKindGivenA(other, oppA) * resp
		}
	}
	return ev
}
