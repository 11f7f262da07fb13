package genetics

import "math/rand/v2"

// Rand is the random source used by generation and inheritance.
// *rand.Rand from math/rand/v2 satisfies it. A *rand.Rand is not safe for
// concurrent use; give each goroutine its own or use Global.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Global draws from the process-wide math/rand/v2 source and is safe for concurrent use.
var Global Rand = globalRand{}

// NewRand returns a seeded PCG source. Streams with the same seed but a
// different stream number are independent.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

func orGlobal(rng Rand) Rand {
	if rng == nil {
		return Global
	}
	return rng
}
