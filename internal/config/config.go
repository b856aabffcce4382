// Package config loads the layered simulation configuration: a default
// parameter tree plus named scenario overrides, resolved into one typed,
// fully-specified parameter set per scenario.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingDefaults is returned when the configuration has no
// default_parameters section. The resolver cannot produce a usable
// scenario configuration without it, so this aborts the whole batch.
var ErrMissingDefaults = errors.New("config: default_parameters section missing")

// File is the raw configuration tree as loaded from YAML.
type File struct {
	Simulation        SimulationParams          `yaml:"simulation_parameters"`
	DataSources       DataSourcesConfig         `yaml:"data_sources"`
	DefaultParameters map[string]any            `yaml:"default_parameters"`
	Scenarios         map[string]map[string]any `yaml:"scenarios"`
}

// SimulationParams controls the run horizon and the per-scenario seed.
type SimulationParams struct {
	StartYear  int   `yaml:"start_year"`
	EndYear    int   `yaml:"end_year"`
	RandomSeed int64 `yaml:"random_seed"`
}

// DataSourcesConfig selects where the initial SME population comes from.
type DataSourcesConfig struct {
	UseSyntheticData bool `yaml:"use_synthetic_data"`
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses a configuration tree from YAML bytes. A missing
// default_parameters section is fatal.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if f.DefaultParameters == nil {
		return nil, ErrMissingDefaults
	}
	return &f, nil
}

// ScenarioNames returns the scenario names defined in the file, with their
// descriptions (empty when none is set).
func (f *File) ScenarioNames() map[string]string {
	out := make(map[string]string, len(f.Scenarios))
	for name, override := range f.Scenarios {
		desc := ""
		if d, ok := override["description"].(string); ok {
			desc = d
		}
		out[name] = desc
	}
	return out
}

// Resolve builds the complete typed parameter set for one scenario: defaults
// deep-merged with the scenario's overrides. An unknown scenario name is not
// fatal; it resolves to defaults only, with a warning. The reserved
// "description" key in an override is documentation, never a parameter.
func (f *File) Resolve(scenario string) (*Params, error) {
	if f.DefaultParameters == nil {
		return nil, ErrMissingDefaults
	}

	override, ok := f.Scenarios[scenario]
	if !ok {
		slog.Warn("scenario not found in config, using defaults only", "scenario", scenario)
		override = nil
	}

	stripped := make(map[string]any, len(override))
	for k, v := range override {
		if k == "description" {
			continue
		}
		stripped[k] = v
	}

	merged := Merge(f.DefaultParameters, stripped)

	// Round-trip the merged tree through YAML into the typed schema so that
	// keys absent from the tree keep their declared defaults.
	params := DefaultParams()
	data, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("re-marshal merged parameters: %w", err)
	}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("decode merged parameters for scenario %q: %w", scenario, err)
	}

	params.Scenario = scenario
	params.Simulation = f.Simulation
	params.DataSources = f.DataSources
	return params, nil
}

// Merge deep-merges override into defaults and returns a new tree. When both
// sides hold a mapping at a key the merge recurses; otherwise the override
// value replaces the default wholesale, lists and subtrees included. Neither
// input is mutated.
func Merge(defaults, override map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults))
	for k, v := range defaults {
		merged[k] = deepCopyValue(v)
	}
	for k, v := range override {
		ov, overrideIsMap := v.(map[string]any)
		dv, defaultIsMap := merged[k].(map[string]any)
		if overrideIsMap && defaultIsMap {
			merged[k] = Merge(dv, ov)
		} else {
			merged[k] = deepCopyValue(v)
		}
	}
	return merged
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
