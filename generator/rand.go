package generator

import (
	"math/rand/v2"
	"time"
)

// Source yields uniform values in [0, 1).
//
// *rand.Rand satisfies it; tests supply fixed sequences.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Seed 0 picks a time-derived seed.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		now := time.Now()
		return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.UnixMicro())))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
