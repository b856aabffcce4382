package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Inclusion gives active SMEs a yearly chance to improve their inclusion
// score, capped at 1.0.
type Inclusion struct{}

func (Inclusion) Name() string { return "inclusion" }

func (Inclusion) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	ip := cfg.Inclusion

	if !pop.EnsureColumn(agent.ColInclusionScore, func(s *agent.SME) { s.InclusionScore = 0.2 }) {
		slog.Warn("inclusion score column missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	improved := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if rs.Bernoulli(ip.InclusionImprovementProb) {
			s.InclusionScore = math.Min(1.0, s.InclusionScore+ip.InclusionImprovementAmount)
			improved++
		}
	}

	slog.Debug("inclusion dynamics", "year", year, "improved", improved)
	return nil
}
