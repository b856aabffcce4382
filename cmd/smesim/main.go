// Command smesim runs SME policy-scenario simulations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahfuzr/smesim/internal/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "smesim",
		Short: "Agent-based SME policy scenario simulator",
		Long: `smesim simulates a population of small and medium enterprises year by
year under named policy scenarios, and records per-year snapshots of the
population for comparison across scenarios.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			setupLogging(level)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (built-in defaults when empty)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newScenariosCmd(),
		newValidateCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
}

// loadConfig reads the config file from the flag, falling back to the
// built-in defaults when no path is given.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		slog.Info("no config file given, using built-in defaults")
		return config.Parse([]byte(config.DefaultYAML))
	}
	return config.Load(path)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("smesim version %s\n", version)
		},
	}
}
