package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Sustainability gives active SMEs a yearly chance to improve resource
// efficiency, capped at 1.0.
type Sustainability struct{}

func (Sustainability) Name() string { return "sustainability" }

func (Sustainability) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	sp := cfg.Sustainability

	if !pop.EnsureColumn(agent.ColResourceEfficiency, func(s *agent.SME) { s.ResourceEfficiency = 0.3 }) {
		slog.Warn("resource efficiency column missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	improved := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if rs.Bernoulli(sp.EfficiencyImprovementProb) {
			s.ResourceEfficiency = math.Min(1.0, s.ResourceEfficiency+sp.EfficiencyImprovementAmount)
			improved++
		}
	}

	slog.Debug("sustainability dynamics", "year", year, "improved", improved)
	return nil
}
