// Package bench times a single operation with an adaptive repetition count.
//
// The repetition count starts at Config.InitialReps and doubles until one
// round of calls takes longer than Config.MinTime; the per-call average of
// that round is reported. Clock granularity is compensated by repetition, so
// the wall clock is good enough.
package bench

import (
	"fmt"
	"io"
	"time"
)

// Clock is the time source of a benchmark
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Config controls the benchmark loop
type Config struct {
	InitialReps int           // Repetitions of the first round (default 10)
	MinTime     time.Duration // A round must exceed this to be reported (default 1s)
	Clock       Clock         // nil means wall clock
}

// DefaultConfig returns the defaults of the regression driver
func DefaultConfig() Config {
	return Config{
		InitialReps: 10,
		MinTime:     time.Second,
	}
}

// Result of the reported round
type Result struct {
	Reps    int           // Number of calls in the reported round
	Elapsed time.Duration // Duration of the reported round
	PerCall time.Duration // Elapsed / Reps
}

// Seconds returns the per call average in seconds
func (r Result) Seconds() float64 {
	if r.Reps == 0 {
		return 0
	}
	return r.Elapsed.Seconds() / float64(r.Reps)
}

// Run calls op in rounds of doubling size until a round exceeds cfg.MinTime.
// There is no upper bound on the number of rounds. A non-positive MinTime
// stops after the first round. Panics in op are not recovered.
func Run(op func(), cfg Config) Result {
	clock := cfg.Clock
	if clock == nil {
		clock = wallClock{}
	}
	reps := cfg.InitialReps
	if reps < 1 {
		reps = 1
	}
	for ; ; reps *= 2 {
		t0 := clock.Now()
		for i := 0; i < reps; i++ {
			op()
		}
		dt := clock.Now().Sub(t0)
		if dt > cfg.MinTime || cfg.MinTime <= 0 {
			return Result{
				Reps:    reps,
				Elapsed: dt,
				PerCall: dt / time.Duration(reps),
			}
		}
	}
}

// Report prints the result in the format of the regression driver
func Report(w io.Writer, name string, r Result) {
	fmt.Fprintf(w, "timing required %d iterations\n", r.Reps)
	fmt.Fprintf(w, "bench %s: %g\n", name, r.Seconds())
}
