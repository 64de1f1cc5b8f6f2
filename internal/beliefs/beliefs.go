// Package beliefs holds the population-wide belief snapshot that every agent
// reads when deciding. A snapshot is computed once per round and never
// mutated afterwards.
package beliefs

import (
	"github.com/talgya/signal-norms/internal/game"
)

// Beliefs is one round's snapshot of population statistics.
type Beliefs struct {
	// Population-wide action frequencies, weighted by the configured mix.
	PropPlayingA1 float64
	PropPlayingA2 float64
	PropPlayingB1 float64
	PropPlayingB2 float64

	// Posterior probability of a partner's kind given its Game A action.
	ProbType1GivenA1 float64
	ProbType2GivenA1 float64
	ProbType1GivenA2 float64
	ProbType2GivenA2 float64

	// Per-kind action frequencies.
	Type1PlayingA1 float64
	Type1PlayingA2 float64
	Type2PlayingA1 float64
	Type2PlayingA2 float64
	Type1PlayingB1 float64
	Type1PlayingB2 float64
	Type2PlayingB1 float64
	Type2PlayingB2 float64

	// Frequency of a Game B action among agents of a kind whose last Game B
	// partner had played the given Game A action.
	Type1OtherA1PlayB1 float64
	Type1OtherA1PlayB2 float64
	Type1OtherA2PlayB1 float64
	Type1OtherA2PlayB2 float64
	Type2OtherA1PlayB1 float64
	Type2OtherA1PlayB2 float64
	Type2OtherA2PlayB1 float64
	Type2OtherA2PlayB2 float64
}

// Frequencies are the raw per-kind frequencies a snapshot is derived from.
// Indexes are kind-1, action-1.
type Frequencies struct {
	PlayingA   [2][2]float64
	PlayingB   [2][2]float64
	OtherPlayB [2][2][2]float64 // [kind][partner's A action][own B action]
}

// Derive builds a snapshot from per-kind frequencies, computing the
// mix-weighted population frequencies and the kind posteriors.
func Derive(mix game.Mix, f Frequencies) Beliefs {
	p1, p2 := mix.Of(game.Type1), mix.Of(game.Type2)

	b := Beliefs{
		Type1PlayingA1: f.PlayingA[0][0],
		Type1PlayingA2: f.PlayingA[0][1],
		Type2PlayingA1: f.PlayingA[1][0],
		Type2PlayingA2: f.PlayingA[1][1],
		Type1PlayingB1: f.PlayingB[0][0],
		Type1PlayingB2: f.PlayingB[0][1],
		Type2PlayingB1: f.PlayingB[1][0],
		Type2PlayingB2: f.PlayingB[1][1],

		Type1OtherA1PlayB1: f.OtherPlayB[0][0][0],
		Type1OtherA1PlayB2: f.OtherPlayB[0][0][1],
		Type1OtherA2PlayB1: f.OtherPlayB[0][1][0],
		Type1OtherA2PlayB2: f.OtherPlayB[0][1][1],
		Type2OtherA1PlayB1: f.OtherPlayB[1][0][0],
		Type2OtherA1PlayB2: f.OtherPlayB[1][0][1],
		Type2OtherA2PlayB1: f.OtherPlayB[1][1][0],
		Type2OtherA2PlayB2: f.OtherPlayB[1][1][1],
	}

	b.PropPlayingA1 = b.Type1PlayingA1*p1 + b.Type2PlayingA1*p2
	b.PropPlayingA2 = b.Type1PlayingA2*p1 + b.Type2PlayingA2*p2
	b.PropPlayingB1 = b.Type1PlayingB1*p1 + b.Type2PlayingB1*p2
	b.PropPlayingB2 = b.Type1PlayingB2*p1 + b.Type2PlayingB2*p2

	b.ProbType1GivenA1 = game.Divide(p1*b.Type1PlayingA1, p1*b.Type1PlayingA1+p2*b.Type2PlayingA1)
	b.ProbType2GivenA1 = game.Divide(p2*b.Type2PlayingA1, p1*b.Type1PlayingA1+p2*b.Type2PlayingA1)
	b.ProbType1GivenA2 = game.Divide(p1*b.Type1PlayingA2, p1*b.Type1PlayingA2+p2*b.Type2PlayingA2)
	b.ProbType2GivenA2 = game.Divide(p2*b.Type2PlayingA2, p1*b.Type1PlayingA2+p2*b.Type2PlayingA2)

	return b
}

// Initial returns the snapshot a run starts from: both kinds play A1 with
// probability initA1 and B1 with probability initB1, and every conditional
// Game B frequency is one half.
func Initial(mix game.Mix, initA1, initB1 float64) Beliefs {
	var f Frequencies
	for k := range 2 {
		f.PlayingA[k] = [2]float64{initA1, 1 - initA1}
		f.PlayingB[k] = [2]float64{initB1, 1 - initB1}
		for a := range 2 {
			f.OtherPlayB[k][a] = [2]float64{0.5, 0.5}
		}
	}
	return Derive(mix, f)
}

// PlayingA returns the frequency of kind k playing a in Game A.
func (b *Beliefs) PlayingA(k game.Kind, a game.Action) float64 {
	switch {
	case k == game.Type1 && a == game.Action1:
		return b.Type1PlayingA1
	case k == game.Type1:
		return b.Type1PlayingA2
	case a == game.Action1:
		return b.Type2PlayingA1
	default:
		return b.Type2PlayingA2
	}
}

// PlayingB returns the frequency of kind k playing a in Game B.
func (b *Beliefs) PlayingB(k game.Kind, a game.Action) float64 {
	switch {
	case k == game.Type1 && a == game.Action1:
		return b.Type1PlayingB1
	case k == game.Type1:
		return b.Type1PlayingB2
	case a == game.Action1:
		return b.Type2PlayingB1
	default:
		return b.Type2PlayingB2
	}
}

// PropPlayingA returns the population frequency of a in Game A.
func (b *Beliefs) PropPlayingA(a game.Action) float64 {
	if a == game.Action1 {
		return b.PropPlayingA1
	}
	return b.PropPlayingA2
}

// ProbKindGivenA returns the probability that a partner observed playing a
// in Game A is of kind k.
func (b *Beliefs) ProbKindGivenA(k game.Kind, a game.Action) float64 {
	switch {
	case k == game.Type1 && a == game.Action1:
		return b.ProbType1GivenA1
	case k == game.Type1:
		return b.ProbType1GivenA2
	case a == game.Action1:
		return b.ProbType2GivenA1
	default:
		return b.ProbType2GivenA2
	}
}

// OtherPlayB returns the frequency with which kind k plays bAction after
// meeting a Game B partner who had played aAction in Game A.
func (b *Beliefs) OtherPlayB(k game.Kind, aAction, bAction game.Action) float64 {
	if k == game.Type1 {
		switch {
		case aAction == game.Action1 && bAction == game.Action1:
			return b.Type1OtherA1PlayB1
		case aAction == game.Action1:
			return b.Type1OtherA1PlayB2
		case bAction == game.Action1:
			return b.Type1OtherA2PlayB1
		default:
			return b.Type1OtherA2PlayB2
		}
	}
	switch {
	case aAction == game.Action1 && bAction == game.Action1:
		return b.Type2OtherA1PlayB1
	case aAction == game.Action1:
		return b.Type2OtherA1PlayB2
	case bAction == game.Action1:
		return b.Type2OtherA2PlayB1
	default:
		return b.Type2OtherA2PlayB2
	}
}
