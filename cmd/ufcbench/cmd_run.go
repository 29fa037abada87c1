package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/notargets/UFCBench/bench"
	"github.com/notargets/UFCBench/config"
	"github.com/notargets/UFCBench/harness"
	"github.com/notargets/UFCBench/lagrange"
	"github.com/notargets/UFCBench/ufc"
	"github.com/spf13/cobra"
)

var (
	runForms       []string
	runShapes      []string
	runBench       bool
	runMinTime     time.Duration
	runInitialReps int
	runOutput      string
)

// createOutput opens the --output file
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

var simplices = []ufc.Shape{ufc.Interval, ufc.Triangle, ufc.Tetrahedron}

// runCmd drives catalogue forms and prints the regression output
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive forms and print the regression output",
	Long: `Drives each selected catalogue form on each selected cell shape.

Example:
  ufcbench run --form mass --form jump --shape triangle --bench --min-time 200ms`,
	Args: cobra.NoArgs,
	RunE: runHarness,
}

func init() {
	runCmd.Flags().StringSliceVarP(&runForms, "form", "f", nil, "Form names to drive (default all)")
	runCmd.Flags().StringSliceVarP(&runShapes, "shape", "s", nil, "Cell shapes (default interval, triangle, tetrahedron)")
	runCmd.Flags().BoolVar(&runBench, "bench", false, "Time tensor tabulation")
	runCmd.Flags().DurationVar(&runMinTime, "min-time", time.Second, "Minimum total time of a timing round")
	runCmd.Flags().IntVar(&runInitialReps, "initial-reps", 10, "Repetitions of the first timing round")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Write the regression output to a file instead of stdout")
}

// loadConfig reads --config and overlays the flags that were set
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("form") {
		cfg.Forms = runForms
	}
	if flags.Changed("shape") {
		cfg.Shapes = runShapes
	}
	if flags.Changed("bench") {
		cfg.Bench.Enabled = runBench
	}
	if flags.Changed("min-time") {
		cfg.Bench.MinTime = runMinTime
	}
	if flags.Changed("initial-reps") {
		cfg.Bench.InitialReps = runInitialReps
	}
	return cfg, cfg.Validate()
}

func selectedShapes(names []string) ([]ufc.Shape, error) {
	if len(names) == 0 {
		return simplices, nil
	}
	shapes := make([]ufc.Shape, 0, len(names))
	for _, name := range names {
		s, err := ufc.ParseShape(name)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func newDriver(w io.Writer, cfg config.Config) *harness.Driver {
	d := harness.NewDriver(w)
	d.P.Precision = cfg.Precision
	d.P.Epsilon = cfg.Epsilon
	d.MaxDerivative = cfg.MaxDerivative
	d.Bench = cfg.Bench.Enabled
	d.BenchConfig = bench.Config{
		InitialReps: cfg.Bench.InitialReps,
		MinTime:     cfg.Bench.MinTime,
	}
	return d
}

func runHarness(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	forms := cfg.Forms
	if len(forms) == 0 {
		forms = lagrange.Names()
	}
	shapes, err := selectedShapes(cfg.Shapes)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if runOutput != "" {
		f, cerr := createOutput(runOutput)
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		w = f
	}

	d := newDriver(w, cfg)
	var errs []error
	for _, name := range forms {
		for _, shape := range shapes {
			f, err := lagrange.Lookup(name, shape)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			slog.Info("driving form", "form", name, "shape", shape, "signature", f.Signature())
			d.P.Header(f.Signature())
			if err := d.Form(f); err != nil {
				slog.Error("form failed", "form", name, "shape", shape, "err", err)
				errs = append(errs, fmt.Errorf("form %s on %v: %w", name, shape, err))
			}
		}
	}
	return errors.Join(errs...)
}
