package game

// BasePayoff is the coordination payoff of Game A. Game B entries are
// BasePayoff scaled by the weight.
const BasePayoff = 3.0

// Matrix maps an (own action, opponent action) pair to a payoff.
type Matrix struct {
	A1A1 float64 `json:"11"`
	A1A2 float64 `json:"12"`
	A2A1 float64 `json:"21"`
	A2A2 float64 `json:"22"`
}

// Get returns the payoff for playing own against opp.
func (m Matrix) Get(own, opp Action) float64 {
	if own == Action1 {
		if opp == Action1 {
			return m.A1A1
		}
		return m.A1A2
	}
	if opp == Action1 {
		return m.A2A1
	}
	return m.A2A2
}

// Max returns the largest entry.
func (m Matrix) Max() float64 {
	best := m.A1A1
	for _, v := range [3]float64{m.A1A2, m.A2A1, m.A2A2} {
		if v > best {
			best = v
		}
	}
	return best
}

// Payoffs is the static payoff model for one grid cell: the shared Game A
// matrix plus one Game B matrix per kind.
type Payoffs struct {
	Weight int
	A      Matrix
	B1     Matrix // Game B for Type1
	B2     Matrix // Game B for Type2
}

// Standard builds the payoff model used by the sweep. Type1 wants to match
// its Game B partner; Type2 wants to mismatch.
func Standard(weight int) Payoffs {
	w := float64(weight) * BasePayoff
	return Payoffs{
		Weight: weight,
		A:      Matrix{A1A1: BasePayoff, A1A2: 0, A2A1: 0, A2A2: BasePayoff},
		B1:     Matrix{A1A1: w, A1A2: 0, A2A1: 0, A2A2: w},
		B2:     Matrix{A1A1: 0, A1A2: w, A2A1: w, A2A2: 0},
	}
}

// B returns the Game B matrix for kind k.
func (p Payoffs) B(k Kind) Matrix {
	if k == Type1 {
		return p.B1
	}
	return p.B2
}
