package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// FillBits sets each of the first n cells of the packed buffer with
// probability density and clears the rest, including padding bits.
func (r *RNG) FillBits(buf []byte, n int, density float64) {
	clear(buf)
	for i := 0; i < n; i++ {
		if r.Chance(density) {
			SetBit(buf, i, true)
		}
	}
}
