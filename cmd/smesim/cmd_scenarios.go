package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List scenarios defined in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names := cfg.ScenarioNames()
			sorted := make([]string, 0, len(names))
			for name := range names {
				sorted = append(sorted, name)
			}
			sort.Strings(sorted)

			for _, name := range sorted {
				if desc := names[name]; desc != "" {
					fmt.Printf("%s\t%s\n", name, desc)
				} else {
					fmt.Println(name)
				}
			}
			return nil
		},
	}
}
