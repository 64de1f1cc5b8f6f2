// Package entropy provides the random streams that drive each run.
// Every grid cell gets its own seeded stream so cells stay independent and
// reproducible. When no seed is configured, one is drawn from crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
	"time"
)

// Stream returns a deterministic random stream for seed.
func Stream(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// CellSeed derives the seed of grid cell (w, u), both 1-based. initGrid is
// the number of PropPlayingA1 values per weight.
func CellSeed(base int64, w, u, initGrid int) int64 {
	return base + int64(w-1)*int64(initGrid) + int64(u)
}

// Resolve returns seed unchanged, or a fresh seed when seed is zero.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	seed = CryptoSeed()
	slog.Info("no seed configured, drew one", "seed", seed)
	return seed
}

// CryptoSeed returns a non-zero seed from crypto/rand, falling back to the
// clock if the system source fails.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		slog.Debug("crypto/rand failed, seeding from clock", "error", err)
		return time.Now().UnixNano()
	}
	// Keep it positive so it reads cleanly in logs and file metadata.
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
