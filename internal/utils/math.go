package utils

import (
	"math/rand/v2"
	"sync"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // game randomness
}

// RandomInt returns a random integer in [min, max]. An inverted range
// collapses to min.
func RandomInt(min, max int) int {
	if min >= max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // game randomness
}

// Rand is a seeded, goroutine-safe source with the same draws as the package
// functions. Same seed, same prices and bonuses.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // game randomness
}

func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// IntBetween mirrors RandomInt
func (r *Rand) IntBetween(min, max int) int {
	if min >= max {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(max-min+1) + min
}
