package core

import "math/rand/v2"

// RNG is a seedable PCG stream. Equal seeds give equal sequences, which is
// what makes a world replayable from its seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: newPCG(seed)}
}

// Reseed restarts the stream from the provided seed.
func (r *RNG) Reseed(seed int64) { r.r = newPCG(seed) }

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

func newPCG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
