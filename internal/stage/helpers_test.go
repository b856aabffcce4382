package stage

import (
	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

func testParams() *config.Params {
	p := config.DefaultParams()
	p.Scenario = "test"
	p.Simulation = config.SimulationParams{StartYear: 2025, EndYear: 2030, RandomSeed: 7}
	p.DataSources = config.DataSourcesConfig{UseSyntheticData: true}
	return p
}

func testPopulation(n int, seed int64) *agent.Population {
	seg := config.DefaultParams().Segmentation
	seg.NumSyntheticSMEs = n
	return agent.Generate(seg, rng.New(seed))
}
