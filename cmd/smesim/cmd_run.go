package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mahfuzr/smesim/internal/persistence"
	"github.com/mahfuzr/smesim/internal/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one or more scenarios and store the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, _ := cmd.Flags().GetStringSlice("scenarios")
			all, _ := cmd.Flags().GetBool("all")
			outPath, _ := cmd.Flags().GetString("out")
			inputPath, _ := cmd.Flags().GetString("input")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if all {
				scenarios = scenarios[:0]
				for name := range cfg.ScenarioNames() {
					scenarios = append(scenarios, name)
				}
				sort.Strings(scenarios)
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios to run")
			}

			runner := &sim.Runner{File: cfg}
			if inputPath != "" {
				in, err := persistence.Open(inputPath)
				if err != nil {
					return fmt.Errorf("opening input database: %w", err)
				}
				defer in.Close()
				runner.Source = in
			}

			results := runner.RunAll(scenarios)
			if len(results) == 0 {
				return fmt.Errorf("no scenario produced results")
			}

			runID := uuid.NewString()
			out, err := persistence.Open(outPath)
			if err != nil {
				return fmt.Errorf("opening results database: %w", err)
			}
			defer out.Close()
			if err := out.SaveResults(runID, results); err != nil {
				return fmt.Errorf("saving results: %w", err)
			}

			slog.Info("run complete", "run_id", runID, "scenarios", len(results), "db", outPath)
			fmt.Printf("Run %s: %d of %d scenarios completed, results in %s\n",
				runID, len(results), len(scenarios), outPath)
			return nil
		},
	}

	cmd.Flags().StringSlice("scenarios", []string{"baseline"}, "Scenario names to run")
	cmd.Flags().Bool("all", false, "Run every scenario defined in the config")
	cmd.Flags().String("out", "results.db", "Results database path")
	cmd.Flags().String("input", "", "Input population database (synthetic generation when empty)")
	return cmd
}
