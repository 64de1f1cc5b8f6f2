package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamIsReproducible(t *testing.T) {
	a, b := Stream(12), Stream(12)
	for range 50 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestCellSeedsAreDistinct(t *testing.T) {
	seen := make(map[int64]bool)
	for w := 1; w <= 5; w++ {
		for u := 1; u <= 20; u++ {
			s := CellSeed(1000, w, u, 20)
			assert.False(t, seen[s], "duplicate seed for w=%d u=%d", w, u)
			seen[s] = true
		}
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, int64(7), Resolve(7))
	assert.Positive(t, Resolve(0))
	assert.Positive(t, CryptoSeed())
}
