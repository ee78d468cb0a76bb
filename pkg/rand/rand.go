// pkg/rand/rand.go

package rand

import (
	"math"

	"github.com/MichaelTJones/pcg"
)

// Rand is a small, fast, seedable PRNG. The kernel owns one instance per
// simulation run so that two runs constructed with the same seed and the
// same scheduling produce bit-identical results; there is no
// package-level shared generator.
type Rand struct {
	r *pcg.PCG32
}

// New returns a Rand seeded from an unpredictable source. Call Seed
// before use if deterministic output is required.
func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

// Seed resets the generator's state deterministically from s. Two Rands
// seeded with the same value produce the same sequence of draws.
func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

// Intn returns a pseudo-random int in [0, n).
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float32 returns a pseudo-random float32 in [0, 1).
func (r *Rand) Float32() float32 {
	return float32(r.r.Random()>>8) / (1 << 24)
}

// Float64 returns a pseudo-random float64 in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

// Uint32 returns a pseudo-random uint32.
func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Bernoulli returns true with probability p (clamped to [0, 1]).
func (r *Rand) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Exponential draws from an exponential distribution with the given
// rate via inverse-CDF sampling (-ln(U)/rate). Grounded on the
// memoryless time-to-first-fault variant described in
// original_source/event_driven_simulation.h; the kernel does not use
// this path (it implements the Bernoulli fault model instead, per the
// spec's primary contract) but it is kept available and tested since
// both variants are legitimate readings of the source behavior.
func (r *Rand) Exponential(rate float64) float64 {
	u := r.Float64()
	// Avoid log(0); u is in [0,1) so 1-u is in (0,1].
	return -math.Log(1-u) / rate
}
