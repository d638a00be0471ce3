package export

import "math/rand/v2"

// Noiser perturbs a predicted value before it is written as a synthetic
// observation.
type Noiser func(value float64) float64

// NoNoise passes values through unchanged.
func NoNoise(value float64) float64 { return value }

// UniformNoiser perturbs each value by U(0,1)·fraction·value. The noise is
// non-negative multiplicative noise, biased upward on average: a
// presentation artifact for synthetic data, not a statistical noise model.
// Deterministic for a given seed.
func UniformNoiser(fraction float64, seed uint64) Noiser {
	rng := rand.New(rand.NewPCG(seed, seed))
	return func(value float64) float64 {
		return value + rng.Float64()*fraction*value
	}
}
