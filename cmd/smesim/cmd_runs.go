package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahfuzr/smesim/internal/persistence"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs in a results database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := persistence.Open(dbPath)
			if err != nil {
				return fmt.Errorf("opening results database: %w", err)
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			for _, r := range runs {
				fmt.Printf("%s\t%s\t%s\n", r.ID, r.CreatedAt, r.Scenarios)
			}
			return nil
		},
	}

	cmd.Flags().String("db", "results.db", "Results database path")
	cmd.Flags().Int("limit", 10, "Maximum runs to list")
	return cmd
}
