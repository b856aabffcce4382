package stage

import (
	"log/slog"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// MarketAccess boosts revenue for active e-commerce users and runs the
// e-commerce uptake draw, scaled by the year's infrastructure index. New
// adopters see the revenue effect from the following year.
type MarketAccess struct{}

func (MarketAccess) Name() string { return "market_access" }

func (MarketAccess) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	mp := cfg.MarketAccess

	if !pop.EnsureColumn(agent.ColUsesEcommerce, nil) {
		slog.Warn("ecommerce column missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	boosted := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || !s.UsesEcommerce {
			continue
		}
		s.Revenue += s.Revenue * mp.EcommerceRevenueBoostFactor
		boosted++
	}

	adopted := 0
	p := clip(mp.EcommerceAdoptionProb*env.InfrastructureIndex, 0, 0.95)
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || s.UsesEcommerce {
			continue
		}
		if rs.Bernoulli(p) {
			s.UsesEcommerce = true
			adopted++
		}
	}

	slog.Debug("market access dynamics", "year", year, "boosted", boosted, "new_ecommerce", adopted)
	return nil
}
