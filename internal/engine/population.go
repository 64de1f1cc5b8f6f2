// Population statistics: the once-per-round scan that turns individual
// actions into the belief snapshot.
package engine

import (
	"github.com/talgya/signal-norms/internal/agents"
	"github.com/talgya/signal-norms/internal/beliefs"
	"github.com/talgya/signal-norms/internal/game"
)

// counts are the raw tallies of one scan. Indexes are kind-1, action-1.
type counts struct {
	playingA  [2][2]int
	playingB  [2][2]int
	other     [2][2]int    // [kind][last B partner's A action]
	otherPlay [2][2][2]int // [kind][last B partner's A action][own B action]
}

// Aggregate scans the population and returns a fresh snapshot. Frequencies
// are taken over the full per-kind counts, but unless fullScan is set the
// scan stops before the last agent, whose actions are therefore not counted.
func Aggregate(pop *agents.Population, mix game.Mix, fullScan bool) beliefs.Beliefs {
	limit := pop.Size() - 1
	if fullScan {
		limit = pop.Size()
	}

	var c counts
	for _, a := range pop.Agents[:max(0, limit)] {
		k := a.Kind - 1
		c.playingA[k][a.ActionA-1]++
		c.playingB[k][a.ActionB-1]++
		if !a.LastOpponentBActionA.Valid() {
			continue
		}
		oa := a.LastOpponentBActionA - 1
		c.other[k][oa]++
		c.otherPlay[k][oa][a.ActionB-1]++
	}

	var f beliefs.Frequencies
	for ki, kind := range game.Kinds {
		total := float64(pop.Count(kind))
		for ai := range 2 {
			f.PlayingA[ki][ai] = game.Divide(float64(c.playingA[ki][ai]), total)
			f.PlayingB[ki][ai] = game.Divide(float64(c.playingB[ki][ai]), total)
			for bi := range 2 {
				f.OtherPlayB[ki][ai][bi] = game.Divide(float64(c.otherPlay[ki][ai][bi]), float64(c.other[ki][ai]))
			}
		}
	}
	return beliefs.Derive(mix, f)
}
