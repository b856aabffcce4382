package stage

import (
	"math"
	"testing"

	"github.com/mahfuzr/smesim/internal/rng"
)

func TestInfrastructureCompounds(t *testing.T) {
	cfg := testParams()
	pop := testPopulation(5, 1)
	env := &Environment{}

	if err := (BusinessEnvironment{}).Apply(pop, 2027, env, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}

	want := 0.50 * math.Pow(1.01, 2)
	if math.Abs(env.InfrastructureIndex-want) > 1e-12 {
		t.Errorf("infrastructure index: %v, want %v", env.InfrastructureIndex, want)
	}
	if env.Year != 2027 {
		t.Errorf("year: %d", env.Year)
	}
	if env.CompetitionLevel != 0.60 {
		t.Errorf("competition level: %v", env.CompetitionLevel)
	}
	if env.Scenario != "test" {
		t.Errorf("scenario tag: %q", env.Scenario)
	}
}

func TestInfrastructureCappedAtOne(t *testing.T) {
	cfg := testParams()
	cfg.BusinessEnvironment.InfrastructureImprovementRate = 0.5
	pop := testPopulation(5, 1)
	env := &Environment{}

	if err := (BusinessEnvironment{}).Apply(pop, 2035, env, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if env.InfrastructureIndex != 1.0 {
		t.Errorf("index not capped: %v", env.InfrastructureIndex)
	}
}

func TestInfrastructureNoDrift(t *testing.T) {
	cfg := testParams()
	pop := testPopulation(5, 1)
	env := &Environment{}
	st := BusinessEnvironment{}

	// Recomputing the same year repeatedly must be idempotent: the index is
	// a function of elapsed years, not of the previous index.
	if err := st.Apply(pop, 2030, env, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	first := env.InfrastructureIndex
	for i := 0; i < 5; i++ {
		if err := st.Apply(pop, 2030, env, cfg, rng.New(1)); err != nil {
			t.Fatal(err)
		}
	}
	if env.InfrastructureIndex != first {
		t.Errorf("index drifted on recompute: %v vs %v", env.InfrastructureIndex, first)
	}
}

func TestInfrastructureMonotoneOverYears(t *testing.T) {
	cfg := testParams()
	pop := testPopulation(5, 1)
	env := &Environment{}
	st := BusinessEnvironment{}

	prev := 0.0
	for year := 2025; year <= 2035; year++ {
		if err := st.Apply(pop, year, env, cfg, rng.New(1)); err != nil {
			t.Fatal(err)
		}
		if env.InfrastructureIndex < prev {
			t.Errorf("index decreased at %d: %v < %v", year, env.InfrastructureIndex, prev)
		}
		if env.InfrastructureIndex > 1.0 {
			t.Errorf("index above 1 at %d: %v", year, env.InfrastructureIndex)
		}
		prev = env.InfrastructureIndex
	}
}

func TestYearBeforeStartClampsElapsed(t *testing.T) {
	cfg := testParams()
	pop := testPopulation(5, 1)
	env := &Environment{}

	if err := (BusinessEnvironment{}).Apply(pop, 2020, env, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if env.InfrastructureIndex != 0.50 {
		t.Errorf("pre-start year index: %v, want initial 0.50", env.InfrastructureIndex)
	}
}
