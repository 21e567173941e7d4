package bench

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary describes repeated runs of one load, in seconds.
type Summary struct {
	Runs   int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

func Summarize(durations []time.Duration) Summary {
	if len(durations) == 0 {
		return Summary{}
	}
	secs := make([]float64, len(durations))
	for i, d := range durations {
		secs[i] = max(d, 0).Seconds()
	}
	slices.Sort(secs)

	s := Summary{
		Runs:   len(secs),
		Min:    secs[0],
		Max:    secs[len(secs)-1],
		Median: median(secs),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(secs, nil)
	if len(secs) == 1 {
		// the sample deviation of a single run is NaN
		s.StdDev = 0
	}
	return s
}

// median expects sorted input; an even count averages the two middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func (s Summary) String() string {
	return fmt.Sprintf(`msg="run stats" runs=%d min=%.6f max=%.6f mean=%.6f median=%.6f stddev=%.6f`,
		s.Runs, s.Min, s.Max, s.Mean, s.Median, s.StdDev)
}
