// Package game defines the vocabulary shared by every part of the simulator:
// agent kinds, actions, the two stage games and their payoff matrices.
package game

import "fmt"

// Kind is an agent's immutable type. It selects the Game B payoff matrix.
type Kind uint8

const (
	Type1 Kind = 1
	Type2 Kind = 2
)

// Kinds lists both kinds in a fixed order.
var Kinds = [2]Kind{Type1, Type2}

func (k Kind) String() string {
	switch k {
	case Type1:
		return "Type1"
	case Type2:
		return "Type2"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == Type1 || k == Type2
}

// Action is a binary choice in either game.
type Action uint8

const (
	Action1 Action = 1
	Action2 Action = 2
)

// Actions lists both actions in preference order. Ties resolve to the first.
var Actions = [2]Action{Action1, Action2}

// Valid reports whether a is 1 or 2.
func (a Action) Valid() bool {
	return a == Action1 || a == Action2
}

// Label names one of the two stage games.
type Label uint8

const (
	GameA Label = iota // Coordination game, shared by both kinds
	GameB              // Signaling game, payoff depends on kind
)

func (l Label) String() string {
	if l == GameA {
		return "A"
	}
	return "B"
}

// Mix holds the configured population proportion of each kind.
// Type2 is always 1 - Type1.
type Mix struct {
	Type1 float64
}

// NewMix returns a Mix with the given Type1 proportion.
func NewMix(type1 float64) Mix {
	return Mix{Type1: type1}
}

// Of returns the proportion of kind k.
func (m Mix) Of(k Kind) float64 {
	if k == Type1 {
		return m.Type1
	}
	return 1 - m.Type1
}

// Divide returns n/d, or 0 when d is zero. Every frequency computed over a
// possibly empty conditioning set goes through here.
func Divide(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}
