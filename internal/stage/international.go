package stage

import (
	"log/slog"
	"slices"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Internationalization runs the export entry draw for active non-exporters
// in the configured eligible size categories. Entrants get a one-time
// revenue boost; the exporter flag never reverts.
type Internationalization struct{}

func (Internationalization) Name() string { return "internationalization" }

func (Internationalization) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	ip := cfg.Internationalization

	if !pop.EnsureColumn(agent.ColIsExporter, nil) {
		slog.Warn("exporter column missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	entered := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive || s.IsExporter {
			continue
		}
		if !slices.Contains(ip.EligibleSizes, s.SizeCategory) {
			continue
		}
		if rs.Bernoulli(ip.ExportEntryProb) {
			s.IsExporter = true
			s.Revenue += s.Revenue * ip.ExportRevenueBoost
			entered++
		}
	}

	slog.Debug("internationalization dynamics", "year", year, "new_exporters", entered)
	return nil
}
