package stage

import (
	"log/slog"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Innovation gives active non-innovators a skill-weighted chance to become
// innovators. The flag never reverts.
type Innovation struct{}

func (Innovation) Name() string { return "innovation" }

func (Innovation) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	ip := cfg.Innovation

	ok := pop.EnsureColumn(agent.ColIsInnovator, nil)
	ok = pop.EnsureColumn(agent.ColSkillLevel, func(s *agent.SME) { s.SkillLevel = 0.4 }) && ok
	if !ok {
		slog.Warn("innovation columns missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	converted := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || s.IsInnovator {
			continue
		}
		p := clip(ip.BaseInnovationProb+s.SkillLevel*ip.SkillInfluence, 0.001, 0.99)
		if rs.Bernoulli(p) {
			s.IsInnovator = true
			converted++
		}
	}

	slog.Debug("innovation dynamics", "year", year, "new_innovators", converted)
	return nil
}
