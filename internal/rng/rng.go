// Package rng provides the seeded random stream used by the dynamics stages.
// One stream exists per scenario run and is reseeded at scenario start, so a
// scenario's trajectory is fully reproducible; there is no package-global
// source.
package rng

import "math/rand"

// Stream wraps a seeded PRNG. Not safe for concurrent use; each scenario
// owns exactly one stream.
type Stream struct {
	r *rand.Rand
}

// New creates a stream seeded with the given value.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Bernoulli draws one success/failure outcome with probability p.
// p is clipped into [0, 1] before the draw, so out-of-range coefficients
// never produce an invalid probability.
func (s *Stream) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

// Uniform returns a uniform float64 in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// ClampedNormal draws from a normal distribution with the given mean and
// standard deviation, clamping the result to at least floor.
func (s *Stream) ClampedNormal(mean, sd, floor float64) float64 {
	v := mean + s.r.NormFloat64()*sd
	if v < floor {
		v = floor
	}
	return v
}

// IntRange returns a uniform int in [lo, hi). Returns lo when hi <= lo.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// WeightedChoice picks one label by cumulative weight scan. Labels must be
// in a stable order for reproducibility; callers pass sorted slices.
func (s *Stream) WeightedChoice(labels []string, weights []float64) string {
	if len(labels) == 0 {
		return ""
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return labels[0]
	}
	r := s.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}
