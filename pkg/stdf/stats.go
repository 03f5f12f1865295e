package stdf

import (
	"math"

	"github.com/montanaflynn/stats"
)

// TestStats summarizes one parametric column across all finished rows.
// NaN slots (tests not executed for a part) are excluded from the
// sample.
type TestStats struct {
	TestNum uint32
	Count   int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
}

// ParametricStats computes per-test summary statistics over the
// assembled rows, one entry per parametric column in slot order.
// Columns with no real measurements yield a zero-count entry with NaN
// moments.
func ParametricStats(td *TestData) []TestStats {
	out := make([]TestStats, 0, td.Layout.Parametric.Len())
	for slot, tnum := range td.Layout.Parametric.TestNums {
		sample := make(stats.Float64Data, 0, len(td.Rows))
		for _, row := range td.Rows {
			v := float64(row.Parametric[slot])
			if !math.IsNaN(v) {
				sample = append(sample, v)
			}
		}
		ts := TestStats{TestNum: tnum, Count: len(sample)}
		if len(sample) == 0 {
			nan := math.NaN()
			ts.Mean, ts.Median, ts.StdDev, ts.Min, ts.Max = nan, nan, nan, nan, nan
		} else {
			// The stats funcs only error on empty input, which is
			// handled above.
			ts.Mean, _ = stats.Mean(sample)
			ts.Median, _ = stats.Median(sample)
			ts.StdDev, _ = stats.StandardDeviation(sample)
			ts.Min, _ = stats.Min(sample)
			ts.Max, _ = stats.Max(sample)
		}
		out = append(out, ts)
	}
	return out
}
