package stage

import (
	"log/slog"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Technology runs the adoption draw for active non-adopters and the yearly
// digital literacy improvement for all active SMEs. Adoption probability is
// held inside [0.001, 0.95] to avoid degenerate certainty at either end.
type Technology struct{}

func (Technology) Name() string { return "technology_adoption" }

func (Technology) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	tp := cfg.Technology

	ok := pop.EnsureColumn(agent.ColHasAdoptedTech, nil)
	ok = pop.EnsureColumn(agent.ColDigitalLiteracy, func(s *agent.SME) { s.DigitalLiteracy = 0.1 }) && ok
	ok = pop.EnsureColumn(agent.ColProductivity, func(s *agent.SME) { s.Productivity = 1.0 }) && ok
	if !ok {
		slog.Warn("technology columns missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	adopters := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || s.HasAdoptedTech {
			continue
		}
		p := clip(tp.BaseAdoptionProb+s.DigitalLiteracy*tp.LiteracyInfluence, 0.001, 0.95)
		if rs.Bernoulli(p) {
			s.HasAdoptedTech = true
			s.Productivity += s.Productivity * tp.ProductivityBoost
			adopters++
		}
	}

	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		s.DigitalLiteracy = clip(s.DigitalLiteracy+tp.LiteracyImprovementRate, 0, 1)
	}

	slog.Debug("technology adoption", "year", year, "new_adopters", adopters)
	return nil
}
