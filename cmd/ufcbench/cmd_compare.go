package main

import (
	"fmt"
	"os"

	"github.com/notargets/UFCBench/regress"
	"github.com/spf13/cobra"
)

var compareTol float64

var compareCmd = &cobra.Command{
	Use:   "compare <baseline> <current>",
	Short: "Compare regression output against a baseline",
	Long: `Compares two regression outputs line by line. Numeric values match when
they agree within the relative tolerance --tol. Timing lines are ignored.
Each mismatching line is followed by a (-baseline +current) diff.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Float64Var(&compareTol, "tol", 1e-12, "Relative tolerance of numeric values")
}

func runCompare(cmd *cobra.Command, args []string) error {
	baseline, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening baseline: %w", err)
	}
	defer baseline.Close()
	current, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening current output: %w", err)
	}
	defer current.Close()

	mismatches, err := regress.Compare(baseline, current, compareTol)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, m := range mismatches {
		fmt.Fprintln(out, m.String())
		if m.Diff != "" {
			fmt.Fprint(out, m.Diff)
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d mismatching lines", len(mismatches))
	}
	fmt.Fprintln(out, "outputs match")
	return nil
}
