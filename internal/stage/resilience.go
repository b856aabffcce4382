package stage

import (
	"hash/fnv"
	"log/slog"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Resilience runs the yearly hardening draw and the sectoral shock pass.
// Shock intensity comes from a smooth noise field over (year, sector),
// seeded from the scenario seed: the field is a pure function of seed and
// year, so shocks replay identically under the reproducibility contract and
// vary smoothly instead of flipping independently each year.
type Resilience struct{}

func (Resilience) Name() string { return "resilience" }

func (Resilience) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	rp := cfg.Resilience

	if !pop.EnsureColumn(agent.ColResilienceScore, func(s *agent.SME) { s.ResilienceScore = 0.4 }) {
		slog.Warn("resilience score column missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	improved := 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if rs.Bernoulli(rp.ResilienceImprovementProb) {
			s.ResilienceScore = math.Min(1.0, s.ResilienceScore+rp.ResilienceImprovementAmount)
			improved++
		}
	}

	field := newShockField(cfg.Simulation.RandomSeed)
	shocked := map[string]float64{}
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		severity, hit := shocked[s.Sector]
		if !hit {
			severity = field.severity(year, s.Sector, rp.ShockThreshold)
			shocked[s.Sector] = severity
		}
		if severity <= 0 {
			continue
		}
		loss := s.Revenue * rp.ShockMaxRevenueLoss * severity * (1 - s.ResilienceScore)
		s.Revenue = math.Max(0, s.Revenue-loss)
		s.ResilienceScore = math.Min(1.0, s.ResilienceScore+rp.ShockHardeningAmount)
	}

	for sector, severity := range shocked {
		if severity > 0 {
			slog.Info("sector shock", "year", year, "sector", sector, "severity", severity)
		}
	}
	slog.Debug("resilience dynamics", "year", year, "improved", improved)
	return nil
}

// shockField is a deterministic noise layer over (year, sector).
type shockField struct {
	noise opensimplex.Noise
}

func newShockField(seed int64) shockField {
	return shockField{noise: opensimplex.NewNormalized(seed)}
}

// severity returns the shock severity in [0,1]: zero when the field's
// intensity is below the threshold, scaling linearly above it.
func (f shockField) severity(year int, sector string, threshold float64) float64 {
	if threshold >= 1 {
		return 0
	}
	intensity := f.noise.Eval2(float64(year)*0.37, sectorCoord(sector))
	if intensity <= threshold {
		return 0
	}
	return (intensity - threshold) / (1 - threshold)
}

// sectorCoord maps a sector name onto a stable noise-plane coordinate.
func sectorCoord(sector string) float64 {
	h := fnv.New32a()
	h.Write([]byte(sector))
	return float64(h.Sum32()%1000) / 100.0
}
