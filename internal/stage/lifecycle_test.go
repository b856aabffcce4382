package stage

import (
	"testing"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/rng"
)

func TestLowProductivityExit(t *testing.T) {
	cfg := testParams()
	cfg.Lifecycle.ExitProb = 1.0
	cfg.Lifecycle.EntryRate = 0

	pop := agent.NewPopulation([]agent.SME{
		{ID: 1, Status: agent.StatusActive, Productivity: 0.3, Employment: 5, SizeCategory: agent.SizeMicro},
		{ID: 2, Status: agent.StatusActive, Productivity: 1.2, Employment: 5, SizeCategory: agent.SizeMicro},
	}, agent.OptionalColumns)

	// Threshold 0.5, exit after 3 consecutive low years.
	for year := 2025; year < 2028; year++ {
		if pop.SMEs[0].Status != agent.StatusActive {
			t.Fatalf("exited early at %d", year)
		}
		if err := (Lifecycle{}).Apply(pop, year, &Environment{}, cfg, rng.New(1)); err != nil {
			t.Fatal(err)
		}
	}

	if pop.SMEs[0].Status != agent.StatusExited {
		t.Error("persistently low-productivity SME did not exit")
	}
	if pop.SMEs[1].Status != agent.StatusActive {
		t.Error("healthy SME exited")
	}
	// Soft delete: the record stays in the table.
	if pop.Len() != 2 {
		t.Errorf("population shrank: %d", pop.Len())
	}
}

func TestLowProductivityCounterResets(t *testing.T) {
	cfg := testParams()
	cfg.Lifecycle.ExitProb = 1.0
	cfg.Lifecycle.EntryRate = 0

	pop := agent.NewPopulation([]agent.SME{
		{ID: 1, Status: agent.StatusActive, Productivity: 0.3, Employment: 5, SizeCategory: agent.SizeMicro},
	}, agent.OptionalColumns)

	for year := 2025; year < 2027; year++ {
		if err := (Lifecycle{}).Apply(pop, year, &Environment{}, cfg, rng.New(1)); err != nil {
			t.Fatal(err)
		}
	}
	if got := pop.SMEs[0].LowProductivityYears; got != 2 {
		t.Fatalf("low years: %d, want 2", got)
	}

	// One good year resets the streak.
	pop.SMEs[0].Productivity = 1.0
	if err := (Lifecycle{}).Apply(pop, 2027, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if got := pop.SMEs[0].LowProductivityYears; got != 0 {
		t.Errorf("low years after recovery: %d, want 0", got)
	}
	if pop.SMEs[0].Status != agent.StatusActive {
		t.Error("recovered SME exited")
	}
}

func TestEntrantsAppended(t *testing.T) {
	cfg := testParams()
	cfg.Lifecycle.EntryRate = 0.5
	cfg.Lifecycle.ExitProb = 0

	pop := testPopulation(10, 3)
	if err := (Lifecycle{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(3)); err != nil {
		t.Fatal(err)
	}

	if pop.Len() != 15 {
		t.Fatalf("population after entry: %d, want 15", pop.Len())
	}
	for _, s := range pop.SMEs[10:] {
		if s.ID < 11 {
			t.Errorf("entrant ID %d collides with incumbents", s.ID)
		}
		if s.Age != 0 {
			t.Errorf("entrant %d age %d, want 0", s.ID, s.Age)
		}
		if s.Status != agent.StatusActive {
			t.Errorf("entrant %d not active", s.ID)
		}
	}
}

func TestEmploymentDriftAndReclassification(t *testing.T) {
	cfg := testParams()
	cfg.Lifecycle.EntryRate = 0
	cfg.Lifecycle.EmploymentGrowthFactor = 1.0 // exaggerate for the test

	pop := agent.NewPopulation([]agent.SME{
		// Productivity 2.0 with factor 1.0 doubles headcount: 8 -> 16.
		{ID: 1, Status: agent.StatusActive, Productivity: 2.0, Employment: 8, SizeCategory: agent.SizeMicro},
		// Productivity 0.6 shrinks: 12 -> round(12*0.6) = 7.
		{ID: 2, Status: agent.StatusActive, Productivity: 0.6, Employment: 12, SizeCategory: agent.SizeSmall},
		// Shrinking below 1 clamps to 1.
		{ID: 3, Status: agent.StatusActive, Productivity: 0.6, Employment: 1, SizeCategory: agent.SizeMicro},
	}, agent.OptionalColumns)

	if err := (Lifecycle{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}

	if got := pop.SMEs[0].Employment; got != 16 {
		t.Errorf("growing SME employment: %d, want 16", got)
	}
	if got := pop.SMEs[0].SizeCategory; got != agent.SizeSmall {
		t.Errorf("growing SME not reclassified: %s", got)
	}
	if got := pop.SMEs[1].Employment; got != 7 {
		t.Errorf("shrinking SME employment: %d, want 7", got)
	}
	if got := pop.SMEs[1].SizeCategory; got != agent.SizeMicro {
		t.Errorf("shrinking SME not reclassified: %s", got)
	}
	if got := pop.SMEs[2].Employment; got != 1 {
		t.Errorf("employment floor violated: %d", got)
	}
}

func TestAgingOnlyWhileActive(t *testing.T) {
	cfg := testParams()
	cfg.Lifecycle.EntryRate = 0
	cfg.Lifecycle.ExitProb = 0

	pop := agent.NewPopulation([]agent.SME{
		{ID: 1, Status: agent.StatusActive, Productivity: 1, Employment: 5, SizeCategory: agent.SizeMicro, Age: 4},
		{ID: 2, Status: agent.StatusExited, Productivity: 1, Employment: 5, SizeCategory: agent.SizeMicro, Age: 4},
	}, agent.OptionalColumns)

	if err := (Lifecycle{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if got := pop.SMEs[0].Age; got != 5 {
		t.Errorf("active SME age: %d, want 5", got)
	}
	if got := pop.SMEs[1].Age; got != 4 {
		t.Errorf("exited SME aged: %d, want 4", got)
	}
}
