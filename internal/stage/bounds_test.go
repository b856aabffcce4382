package stage

import (
	"testing"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Long-horizon run over the full pipeline: every bounded attribute must stay
// in range, counters must stay non-negative, and one-directional flags must
// never revert, no matter how many years accumulate.
func TestPipelineLongRunInvariants(t *testing.T) {
	cfg := testParams()
	cfg.Simulation.StartYear = 2025
	cfg.Simulation.EndYear = 2054

	pop := testPopulation(150, 42)
	rs := rng.New(cfg.Simulation.RandomSeed)
	env := &Environment{}
	pipeline := Pipeline()

	type flagState struct{ tech, innovator, exporter, ecommerce bool }
	flags := make(map[int]flagState)
	exited := make(map[int]bool)

	for year := cfg.Simulation.StartYear; year <= cfg.Simulation.EndYear; year++ {
		for _, st := range pipeline {
			if err := st.Apply(pop, year, env, cfg, rs); err != nil {
				t.Fatalf("year %d stage %s: %v", year, st.Name(), err)
			}
		}

		for i := range pop.SMEs {
			s := &pop.SMEs[i]
			for name, v := range map[string]float64{
				"creditworthiness":    s.Creditworthiness,
				"skill_level":         s.SkillLevel,
				"digital_literacy":    s.DigitalLiteracy,
				"resource_efficiency": s.ResourceEfficiency,
				"resilience_score":    s.ResilienceScore,
				"inclusion_score":     s.InclusionScore,
			} {
				if v < 0 || v > 1 {
					t.Fatalf("year %d SME %d: %s = %v outside [0,1]", year, s.ID, name, v)
				}
			}
			if s.Revenue < 0 {
				t.Fatalf("year %d SME %d: negative revenue %v", year, s.ID, s.Revenue)
			}
			if s.Debt < 0 {
				t.Fatalf("year %d SME %d: negative debt %v", year, s.ID, s.Debt)
			}
			if s.ComplianceCost < 0 {
				t.Fatalf("year %d SME %d: negative compliance cost %v", year, s.ID, s.ComplianceCost)
			}
			if s.Employment < 1 {
				t.Fatalf("year %d SME %d: employment %d below 1", year, s.ID, s.Employment)
			}
			if s.Productivity < 0 {
				t.Fatalf("year %d SME %d: negative productivity %v", year, s.ID, s.Productivity)
			}
			if s.LowProductivityYears < 0 {
				t.Fatalf("year %d SME %d: negative low-productivity streak", year, s.ID)
			}

			prev, seen := flags[s.ID]
			if seen {
				if prev.tech && !s.HasAdoptedTech {
					t.Fatalf("year %d SME %d: tech adoption reverted", year, s.ID)
				}
				if prev.innovator && !s.IsInnovator {
					t.Fatalf("year %d SME %d: innovator flag reverted", year, s.ID)
				}
				if prev.exporter && !s.IsExporter {
					t.Fatalf("year %d SME %d: exporter flag reverted", year, s.ID)
				}
				if prev.ecommerce && !s.UsesEcommerce {
					t.Fatalf("year %d SME %d: ecommerce flag reverted", year, s.ID)
				}
			}
			flags[s.ID] = flagState{s.HasAdoptedTech, s.IsInnovator, s.IsExporter, s.UsesEcommerce}

			if exited[s.ID] && s.Status != agent.StatusExited {
				t.Fatalf("year %d SME %d: exited SME resurrected", year, s.ID)
			}
			if s.Status == agent.StatusExited {
				exited[s.ID] = true
			}
		}

		if pop.ActiveCount() > pop.Len() {
			t.Fatalf("year %d: active count exceeds total", year)
		}
	}

	// Some churn must have happened over 30 years with entry and exit on.
	if pop.Len() <= 150 {
		t.Errorf("no entrants over 30 years: %d", pop.Len())
	}
}

// A loader-style population missing every optional column must survive a
// full pipeline year: stages fill defaults, skip their dynamics, and the
// next year runs normally.
func TestPipelineOnCoreSchemaOnly(t *testing.T) {
	cfg := testParams()

	smes := []agent.SME{
		{ID: 1, Sector: "services", Location: "urban", OwnerGender: agent.GenderFemale,
			SizeCategory: agent.SizeMicro, Formality: agent.FormalityInformal,
			Age: 3, Revenue: 80_000, Employment: 4, Status: agent.StatusActive},
		{ID: 2, Sector: "trade", Location: "rural", OwnerGender: agent.GenderMale,
			SizeCategory: agent.SizeSmall, Formality: agent.FormalityFormal,
			Age: 10, Revenue: 400_000, Employment: 20, Status: agent.StatusActive},
	}
	pop := agent.NewPopulation(smes, nil)

	rs := rng.New(1)
	env := &Environment{}
	for year := 2025; year <= 2027; year++ {
		for _, st := range Pipeline() {
			if err := st.Apply(pop, year, env, cfg, rs); err != nil {
				t.Fatalf("year %d stage %s: %v", year, st.Name(), err)
			}
		}
	}

	// After the first touch every optional column is marked present.
	for _, col := range agent.OptionalColumns {
		if !pop.HasColumn(col) {
			t.Errorf("column %s never filled", col)
		}
	}
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Revenue < 0 || s.Debt < 0 || s.Employment < 1 {
			t.Errorf("SME %d in bad state after run: %+v", s.ID, s)
		}
	}
}
