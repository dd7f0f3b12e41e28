package engine

import (
	"hash/adler32"
	"math/rand"
)

// SeedFor derives the deterministic seed for a portfolio. The source URL wins
// so the same portfolio URL scores identically no matter who submits it; file
// uploads fall back to the portfolio ID.
func SeedFor(sourceURL, portfolioID string) uint32 {
	seedString := sourceURL
	if seedString == "" {
		seedString = portfolioID
	}
	if seedString == "" {
		seedString = "default-seed"
	}
	return adler32.Checksum([]byte(seedString))
}

// newRand returns a rand scoped to a single engine run. Draw order is part of
// the determinism contract, so all randomness flows through this one source.
func newRand(seed uint32) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// sample picks k distinct entries from pool, preserving draw order.
// Asking for more entries than the pool holds is a programming error.
func sample(r *rand.Rand, pool []string, k int) []string {
	if k > len(pool) {
		panic("engine: sample size exceeds pool size")
	}
	perm := r.Perm(len(pool))
	out := make([]string, 0, k)
	for _, idx := range perm[:k] {
		out = append(out, pool[idx])
	}
	return out
}
