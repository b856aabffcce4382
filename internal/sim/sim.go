// Package sim runs configured scenarios over the yearly dynamics pipeline
// and collects per-year population snapshots.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
	"github.com/mahfuzr/smesim/internal/stage"
)

// ErrNoPopulation is returned when a scenario has no way to obtain an
// initial population: synthetic data is disabled and no data source is
// configured.
var ErrNoPopulation = errors.New("sim: no population source configured")

// Snapshot is the recorded state of one scenario-year. The population is a
// deep copy taken after the year's pipeline finished; later years cannot
// reach into it.
type Snapshot struct {
	Year        int
	TotalSMEs   int
	ActiveSMEs  int
	Population  *agent.Population
	Environment stage.Environment
	Err         string
}

// Results maps scenario name to per-year snapshots.
type Results map[string]map[int]*Snapshot

// DataSource supplies an initial population when synthetic generation is
// disabled.
type DataSource interface {
	LoadPopulation() (*agent.Population, error)
}

// Runner executes scenarios against one loaded configuration.
type Runner struct {
	File   *config.File
	Source DataSource
}

// RunAll runs each named scenario in order. A scenario that fails to set up
// is logged and skipped; the rest of the batch still runs. Scenarios absent
// from the result map are the ones that failed.
func (r *Runner) RunAll(scenarios []string) Results {
	results := make(Results, len(scenarios))
	for _, name := range scenarios {
		slog.Info("running scenario", "scenario", name)
		years, err := r.runScenario(name)
		if err != nil {
			slog.Error("scenario failed, skipping", "scenario", name, "error", err)
			continue
		}
		results[name] = years
		slog.Info("scenario complete", "scenario", name, "years", len(years))
	}
	return results
}

func (r *Runner) runScenario(name string) (map[int]*Snapshot, error) {
	params, err := r.File.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolving scenario: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("validating scenario parameters: %w", err)
	}

	// Each scenario gets its own stream from the shared seed, so scenarios
	// replay identically and never perturb one another.
	rs := rng.New(params.Simulation.RandomSeed)

	pop, err := r.initialPopulation(params, rs)
	if err != nil {
		return nil, fmt.Errorf("initializing population: %w", err)
	}

	env := &stage.Environment{Scenario: name}
	pipeline := stage.Pipeline()
	years := make(map[int]*Snapshot, params.Simulation.EndYear-params.Simulation.StartYear+1)

	for year := params.Simulation.StartYear; year <= params.Simulation.EndYear; year++ {
		for _, st := range pipeline {
			if err := st.Apply(pop, year, env, params, rs); err != nil {
				slog.Warn("stage failed, continuing year", "scenario", name, "year", year, "stage", st.Name(), "error", err)
			}
		}
		years[year] = collect(pop, year, env)
	}
	return years, nil
}

func (r *Runner) initialPopulation(params *config.Params, rs *rng.Stream) (*agent.Population, error) {
	if params.DataSources.UseSyntheticData {
		return agent.Generate(params.Segmentation, rs), nil
	}
	if r.Source == nil {
		return nil, ErrNoPopulation
	}
	pop, err := r.Source.LoadPopulation()
	if err != nil {
		return nil, fmt.Errorf("loading population: %w", err)
	}
	return pop, nil
}

// collect snapshots the population state for one year. An empty population
// yields an error-marked snapshot instead of aborting the scenario.
func collect(pop *agent.Population, year int, env *stage.Environment) *Snapshot {
	if pop.Len() == 0 {
		return &Snapshot{Year: year, Environment: *env, Err: "population is empty"}
	}
	return &Snapshot{
		Year:        year,
		TotalSMEs:   pop.Len(),
		ActiveSMEs:  pop.ActiveCount(),
		Population:  pop.Clone(),
		Environment: *env,
	}
}
