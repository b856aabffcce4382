package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// HumanCapital gives active SMEs a yearly chance to improve workforce skill,
// with a productivity gain proportional to the skill increase.
type HumanCapital struct{}

func (HumanCapital) Name() string { return "human_capital" }

func (HumanCapital) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	hp := cfg.HumanCapital

	ok := pop.EnsureColumn(agent.ColSkillLevel, func(s *agent.SME) { s.SkillLevel = 0.4 })
	ok = pop.EnsureColumn(agent.ColProductivity, func(s *agent.SME) { s.Productivity = 1.0 }) && ok
	if !ok {
		slog.Warn("human capital columns missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	improved := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if !rs.Bernoulli(hp.SkillImprovementProb) {
			continue
		}
		old := s.SkillLevel
		s.SkillLevel = math.Min(1.0, old+hp.SkillImprovementAmount)
		s.Productivity += (s.SkillLevel - old) * hp.SkillProductivityBoost * s.Productivity
		improved++
	}

	slog.Debug("human capital dynamics", "year", year, "improved", improved)
	return nil
}
