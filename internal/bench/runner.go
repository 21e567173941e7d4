package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Shape describes what one load read and produced; it is read after the timer has stopped.
type Shape struct {
	// File is the loaded path, empty for query loads.
	File    string
	// Size is the number of bytes on disk, compressed for .gz files.
	Size    int64
	Rows    int
	Columns int
}

// LoadFunc performs one complete load.
type LoadFunc func(ctx context.Context) (Shape, error)

type Result struct {
	Run     int
	Shape   Shape
	Elapsed time.Duration
}

type Runner struct {
	Warmup int
	Runs   int

	// Out receives one formatted line per timed run.
	Out io.Writer
	// OnResult, when set, is called after each timed run's line is written.
	OnResult func(Result)
}

// Run executes the warmup loads, then the timed ones, and stops at the first error.
// Timings collected before the error are still returned.
func (r *Runner) Run(ctx context.Context, load LoadFunc) ([]time.Duration, error) {
	for i := range r.Warmup {
		if _, err := load(ctx); err != nil {
			return nil, errors.WithMessagef(err, "warmup run %d", i+1)
		}
	}

	runs := max(r.Runs, 1)
	durations := make([]time.Duration, 0, runs)
	for i := range runs {
		var shape Shape
		elapsed, err := Measure(ctx, func(ctx context.Context) error {
			var err error
			shape, err = load(ctx)
			return err
		})
		if err != nil {
			return durations, err
		}
		durations = append(durations, elapsed)
		if _, err := fmt.Fprintln(r.Out, FormatSeconds(elapsed)); err != nil {
			return durations, errors.Wrap(err, "failed to write timing")
		}
		if r.OnResult != nil {
			r.OnResult(Result{Run: i + 1, Shape: shape, Elapsed: elapsed})
		}
	}
	return durations, nil
}
