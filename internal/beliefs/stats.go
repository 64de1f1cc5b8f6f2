package beliefs

// Stat is one named statistic of a snapshot.
type Stat struct {
	Name  string
	Value float64
}

// Names lists every statistic name in output order. The names are the keys
// of the persisted series.
func Names() []string {
	var b Beliefs
	stats := b.Stats()
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Name
	}
	return names
}

// Stats returns the snapshot as an ordered list of named values.
func (b *Beliefs) Stats() []Stat {
	return []Stat{
		{"PropPlayingA1", b.PropPlayingA1},
		{"PropPlayingA2", b.PropPlayingA2},
		{"PropPlayingB1", b.PropPlayingB1},
		{"PropPlayingB2", b.PropPlayingB2},
		{"ProbType1GivenA1", b.ProbType1GivenA1},
		{"ProbType2GivenA1", b.ProbType2GivenA1},
		{"ProbType1GivenA2", b.ProbType1GivenA2},
		{"ProbType2GivenA2", b.ProbType2GivenA2},
		{"Type1PlayingA1", b.Type1PlayingA1},
		{"Type1PlayingA2", b.Type1PlayingA2},
		{"Type2PlayingA1", b.Type2PlayingA1},
		{"Type2PlayingA2", b.Type2PlayingA2},
		{"Type1PlayingB1", b.Type1PlayingB1},
		{"Type1PlayingB2", b.Type1PlayingB2},
		{"Type2PlayingB1", b.Type2PlayingB1},
		{"Type2PlayingB2", b.Type2PlayingB2},
		{"proptype1otherA1playB1", b.Type1OtherA1PlayB1},
		{"proptype1otherA1playB2", b.Type1OtherA1PlayB2},
		{"proptype1otherA2playB1", b.Type1OtherA2PlayB1},
		{"proptype1otherA2playB2", b.Type1OtherA2PlayB2},
		{"proptype2otherA1playB1", b.Type2OtherA1PlayB1},
		{"proptype2otherA1playB2", b.Type2OtherA1PlayB2},
		{"proptype2otherA2playB1", b.Type2OtherA2PlayB1},
		{"proptype2otherA2playB2", b.Type2OtherA2PlayB2},
	}
}
