// Package stage implements the yearly dynamics pipeline: twelve ordered
// transformations applied to the SME population once per simulated year.
//
// The order is a correctness contract. Downstream stages read environment
// state and population attributes written upstream in the same year, so
// reordering changes simulation outcomes.
package stage

import (
	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Stage is one yearly transformation of the population. Implementations are
// stateless values: all parameters arrive through the resolved scenario
// config, and all randomness comes from the scenario's stream.
type Stage interface {
	Name() string
	Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error
}

// Pipeline returns the stages in their fixed execution order. The business
// environment stage must run first: it recomputes the environment state the
// rest of the year consumes.
func Pipeline() []Stage {
	return []Stage{
		BusinessEnvironment{},
		Regulatory{},
		HumanCapital{},
		Technology{},
		Financing{},
		Innovation{},
		Sustainability{},
		Resilience{},
		MarketAccess{},
		Internationalization{},
		Inclusion{},
		Lifecycle{},
	}
}

// clip bounds v into [lo, hi].
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
