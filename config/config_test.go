package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ufcbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 16, cfg.Precision)
	assert.Equal(t, 1e-16, cfg.Epsilon)
	assert.Equal(t, 2, cfg.MaxDerivative)
	assert.Equal(t, 10, cfg.Bench.InitialReps)
	assert.Equal(t, time.Second, cfg.Bench.MinTime)
	assert.False(t, cfg.Bench.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
precision: 12
forms: [mass, jump]
shapes: [triangle]
bench:
  enabled: true
  min_time: 250ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Precision)
	assert.Equal(t, 1e-16, cfg.Epsilon)
	assert.Equal(t, []string{"mass", "jump"}, cfg.Forms)
	assert.Equal(t, []string{"triangle"}, cfg.Shapes)
	assert.True(t, cfg.Bench.Enabled)
	assert.Equal(t, 10, cfg.Bench.InitialReps)
	assert.Equal(t, 250*time.Millisecond, cfg.Bench.MinTime)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "precision: [1"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "precision: 0\nbench:\n  initial_reps: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precision")
	assert.Contains(t, err.Error(), "initial_reps")
}
