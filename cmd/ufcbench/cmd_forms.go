package main

import (
	"fmt"

	"github.com/notargets/UFCBench/lagrange"
	"github.com/notargets/UFCBench/ufc"
	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the catalogue forms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range lagrange.Names() {
			f, err := lagrange.Lookup(name, ufc.Triangle)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-12s rank %d, %d coefficients\n", name, f.Rank(), f.NumCoefficients())
		}
		return nil
	},
}
