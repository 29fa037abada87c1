package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "ufcbench",
	Short: "Regression and benchmark harness for UFC form implementations",
	Long: `ufcbench drives every operation of a UFC form implementation with fixed
synthetic cells and coefficients, and prints the results in a canonical
numbered format suitable for comparison against a stored baseline.

With --bench, tensor tabulation is timed by repeated doubling until the
total time exceeds --min-time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		slog.SetDefault(slog.New(
			tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
				Level:      level,
				TimeFormat: "15:04:05",
			}),
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")

	rootCmd.AddCommand(runCmd, compareCmd, formsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("ufcbench failed", "err", err)
		os.Exit(1)
	}
}
