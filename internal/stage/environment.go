package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Environment holds the macro indicators recomputed once per year and read
// by every later stage in the same year. It carries no hidden cross-year
// state: every field is a pure function of the scenario config and the
// current year.
type Environment struct {
	Year                int
	InfrastructureIndex float64
	CompetitionLevel    float64
	Scenario            string
}

// BusinessEnvironment recomputes the environment state. The infrastructure
// index compounds from the scenario's initial value over elapsed years, not
// from its own previous value, so skipped or repeated years cannot drift it.
type BusinessEnvironment struct{}

func (BusinessEnvironment) Name() string { return "business_environment" }

func (BusinessEnvironment) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	bp := cfg.BusinessEnvironment

	elapsed := year - cfg.Simulation.StartYear
	if elapsed < 0 {
		elapsed = 0
	}
	index := bp.InitialInfrastructureIndex * math.Pow(1+bp.InfrastructureImprovementRate, float64(elapsed))

	env.Year = year
	env.InfrastructureIndex = math.Min(index, 1.0)
	env.CompetitionLevel = bp.InitialCompetitionLevel
	env.Scenario = cfg.Scenario

	slog.Debug("environment recomputed",
		"year", year,
		"infrastructure_index", env.InfrastructureIndex,
		"competition_level", env.CompetitionLevel,
	)
	return nil
}
