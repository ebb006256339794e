// sim/metrics_utils.go
package sim

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// tierStats summarises a set of wait times. Empty input yields zero values.
func tierStats(waits []time.Duration) TierStats {
	if len(waits) == 0 {
		return TierStats{}
	}
	ts := TierStats{Patients: len(waits)}
	seconds := make([]float64, 0, len(waits))
	for _, w := range waits {
		ts.TotalWait += w
		ts.MaxWait = max(ts.MaxWait, w)
		seconds = append(seconds, w.Seconds())
	}
	ts.AverageWait = ts.TotalWait / time.Duration(len(waits))

	slices.Sort(seconds)
	ts.P50Wait = CalculatePercentile(seconds, 0.5)
	ts.P90Wait = CalculatePercentile(seconds, 0.9)
	return ts
}

// CalculatePercentile returns the empirical p-quantile (0 ≤ p ≤ 1) of sorted
// wait times given in seconds. Returns 0 for empty input.
func CalculatePercentile(sortedSeconds []float64, p float64) time.Duration {
	if len(sortedSeconds) == 0 {
		return 0
	}
	q := stat.Quantile(p, stat.Empirical, sortedSeconds, nil)
	return time.Duration(q * float64(time.Second))
}
