package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Lifecycle closes out the year: employment drifts with productivity, size
// categories are reassigned, every active SME ages one year, persistently
// low-productivity SMEs face an exit draw, and a fresh cohort of entrants is
// appended. Exits are soft: exited SMEs stay in the population with exited
// status and are never touched by later years.
type Lifecycle struct{}

func (Lifecycle) Name() string { return "lifecycle" }

func (Lifecycle) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	lp := cfg.Lifecycle

	if !pop.EnsureColumn(agent.ColProductivity, func(s *agent.SME) { s.Productivity = 1.0 }) {
		slog.Warn("productivity column missing, defaults filled and lifecycle dynamics skipped", "year", year)
		return nil
	}

	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if s.Productivity < lp.LowProductivityThreshold {
			s.LowProductivityYears++
		} else {
			s.LowProductivityYears = 0
		}
		growth := 1 + (s.Productivity-1)*lp.EmploymentGrowthFactor
		s.Employment = int(math.Max(1, math.Round(float64(s.Employment)*growth)))
		s.SizeCategory = agent.SizeForEmployment(s.Employment)
		s.Age++
	}

	exited := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if s.LowProductivityYears >= lp.ExitAfterYears && rs.Bernoulli(lp.ExitProb) {
			s.Status = agent.StatusExited
			exited++
		}
	}

	entrants := int(float64(pop.ActiveCount()) * lp.EntryRate)
	if entrants > 0 {
		cohort := agent.GenerateEntrants(entrants, pop.MaxID()+1, cfg.Segmentation, rs)
		pop.Append(cohort)
	}

	slog.Debug("lifecycle dynamics", "year", year, "exited", exited, "entrants", entrants)
	return nil
}
