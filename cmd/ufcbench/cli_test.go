package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag state
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	runForms, runShapes, runBench = nil, nil, false
	runMinTime, runInitialReps, runOutput = time.Second, 10, ""
	configPath, logLevel, compareTol = "", "info", 1e-12
	for _, c := range []*cobra.Command{rootCmd, runCmd, compareCmd, formsCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunAndCompare(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	_, err := execute(t, "run", "--form", "mass,jump", "--shape", "triangle", "--output", first)
	require.NoError(t, err)
	_, err = execute(t, "run", "-f", "mass", "-f", "jump", "-s", "triangle", "-o", second)
	require.NoError(t, err)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Testing interior_facet_integral")
	assert.Contains(t, string(data), "Form('mass'")

	out, err := execute(t, "compare", first, second)
	require.NoError(t, err)
	assert.Equal(t, "outputs match\n", out)
}

func TestCompareMismatch(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.txt")
	current := filepath.Join(dir, "current.txt")
	require.NoError(t, os.WriteFile(baseline, []byte("0_a = 1 2\n1_b = 3\n"), 0o644))
	require.NoError(t, os.WriteFile(current, []byte("0_a = 1 2.5\n1_b = 3\n"), 0o644))

	out, err := execute(t, "compare", baseline, current)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 mismatching lines")
	assert.Contains(t, out, "0_a")
	assert.Contains(t, out, "[]float64{")

	_, err = execute(t, "compare", "--tol", "0.5", baseline, current)
	assert.NoError(t, err)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ufcbench.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
forms: [source]
shapes: [interval]
bench:
  enabled: true
  initial_reps: 3
  min_time: 0s
`), 0o644))

	out, err := execute(t, "run", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "timing required 3 iterations\n")
	assert.Contains(t, out, "bench cell_integral::tabulate_tensor: ")
	assert.NotContains(t, out, "triangle")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "--shape", "hexagon")
	assert.Error(t, err)

	_, err = execute(t, "run", "--form", "nosuchform", "--shape", "triangle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchform")

	_, err = execute(t, "run", "--log-level", "loud")
	assert.Error(t, err)
}

func TestForms(t *testing.T) {
	out, err := execute(t, "forms")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "functional"), lines[0])
	assert.Contains(t, out, "load         rank 1, 1 coefficients")
}

// failingFile accepts writes and fails on Close
type failingFile struct {
	bytes.Buffer
}

func (*failingFile) Close() error { return errors.New("disk full") }

func TestRunOutputCloseError(t *testing.T) {
	saved := createOutput
	defer func() { createOutput = saved }()
	f := &failingFile{}
	createOutput = func(string) (io.WriteCloser, error) { return f, nil }

	_, err := execute(t, "run", "--form", "mass", "--shape", "interval", "--output", "baseline.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing output: disk full")
	assert.Contains(t, f.String(), "Testing cell_integral")
}
