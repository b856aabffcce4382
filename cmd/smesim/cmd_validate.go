package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Resolve and validate every scenario in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(cfg.Scenarios))
			for name := range cfg.Scenarios {
				names = append(names, name)
			}
			sort.Strings(names)

			failed := 0
			for _, name := range names {
				params, err := cfg.Resolve(name)
				if err == nil {
					err = params.Validate()
				}
				if err != nil {
					failed++
					fmt.Printf("%s: %v\n", name, err)
					continue
				}
				fmt.Printf("%s: ok\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios invalid", failed, len(names))
			}
			return nil
		},
	}
}
