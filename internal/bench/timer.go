// Package bench times loads and reports the elapsed seconds.
package bench

import (
	"context"
	"math"
	"strconv"
	"time"
)

// Timer measures elapsed time with the monotonic clock reading carried by time.Now.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Reset() {
	t.start = time.Now()
}

// Elapsed never goes negative.
func (t *Timer) Elapsed() time.Duration {
	return max(time.Since(t.start), 0)
}

// Measure times a single call of fn. The error from fn is returned as is.
func Measure(ctx context.Context, fn func(context.Context) error) (time.Duration, error) {
	t := NewTimer()
	err := fn(ctx)
	return t.Elapsed(), err
}

// Seconds converts d to seconds rounded to six decimal places.
func Seconds(d time.Duration) float64 {
	if d < 0 {
		d = 0
	}
	return math.Round(d.Seconds()*1e6) / 1e6
}

// FormatSeconds renders d as seconds with exactly six fractional digits.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(Seconds(d), 'f', 6, 64)
}
