package stage

import (
	"log/slog"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Regulatory applies compliance cost to active formal SMEs and runs the
// formalization draw for informal ones. Compliance cost is recomputed every
// year, never accumulated; firms that formalize get a first-year grace with
// cost zero.
type Regulatory struct{}

func (Regulatory) Name() string { return "regulatory" }

func (Regulatory) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	rp := cfg.Regulatory

	// Compliance cost is an output column; mark it present either way.
	pop.EnsureColumn(agent.ColComplianceCost, nil)

	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status == agent.StatusActive && s.Formality == agent.FormalityFormal {
			s.ComplianceCost = s.Revenue * rp.ComplianceCostFactor
		} else {
			s.ComplianceCost = 0
		}
	}

	formalized := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || s.Formality != agent.FormalityInformal {
			continue
		}
		if rs.Bernoulli(rp.FormalizationProb) {
			s.Formality = agent.FormalityFormal
			s.ComplianceCost = 0
			formalized++
		}
	}

	if formalized > 0 {
		slog.Debug("formalization transitions", "year", year, "count", formalized)
	}
	return nil
}
