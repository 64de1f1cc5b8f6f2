package engine

import (
	"github.com/talgya/signal-norms/internal/beliefs"
)

// Series is the per-round record of a run: the initial snapshot followed by
// one snapshot per completed round.
type Series struct {
	Snapshots []beliefs.Beliefs
}

// NewSeries returns an empty series with room for n snapshots.
func NewSeries(n int) *Series {
	return &Series{Snapshots: make([]beliefs.Beliefs, 0, n)}
}

// Append records a snapshot.
func (s *Series) Append(b beliefs.Beliefs) {
	s.Snapshots = append(s.Snapshots, b)
}

// Len returns the number of recorded snapshots.
func (s *Series) Len() int {
	return len(s.Snapshots)
}

// Last returns the most recent snapshot.
func (s *Series) Last() beliefs.Beliefs {
	return s.Snapshots[len(s.Snapshots)-1]
}

// Columns returns one ordered value list per statistic name.
func (s *Series) Columns() map[string][]float64 {
	cols := make(map[string][]float64, len(beliefs.Names()))
	for _, snap := range s.Snapshots {
		for _, st := range snap.Stats() {
			cols[st.Name] = append(cols[st.Name], st.Value)
		}
	}
	return cols
}
