// Package config holds the harness parameters and reads them from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Bench configures the adaptive timing loop
type Bench struct {
	Enabled     bool          `yaml:"enabled"`
	InitialReps int           `yaml:"initial_reps"`
	MinTime     time.Duration `yaml:"min_time"`
}

// Config holds everything that changes the regression output
type Config struct {
	Precision     int      `yaml:"precision"`      // Significant digits of floats
	Epsilon       float64  `yaml:"epsilon"`        // Magnitudes below print as 0
	MaxDerivative int      `yaml:"max_derivative"` // Highest basis derivative order tested
	Forms         []string `yaml:"forms"`          // Form names, empty means all
	Shapes        []string `yaml:"shapes"`         // Cell shapes, empty means all simplices
	Bench         Bench    `yaml:"bench"`
}

// Default returns the standard regression parameters
func Default() Config {
	return Config{
		Precision:     16,
		Epsilon:       1e-16,
		MaxDerivative: 2,
		Bench: Bench{
			InitialReps: 10,
			MinTime:     time.Second,
		},
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Precision < 1 {
		errs = append(errs, fmt.Errorf("precision must be positive, got %d", c.Precision))
	}
	if c.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("epsilon must not be negative, got %g", c.Epsilon))
	}
	if c.MaxDerivative < 0 {
		errs = append(errs, fmt.Errorf("max_derivative must not be negative, got %d", c.MaxDerivative))
	}
	if c.Bench.InitialReps < 1 {
		errs = append(errs, fmt.Errorf("bench.initial_reps must be positive, got %d", c.Bench.InitialReps))
	}
	if c.Bench.MinTime < 0 {
		errs = append(errs, fmt.Errorf("bench.min_time must not be negative, got %v", c.Bench.MinTime))
	}
	return errors.Join(errs...)
}
