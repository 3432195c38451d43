package report

import (
	"math"
	"sort"
	"time"
)

// LatencyStats summarizes the per-iteration durations of one revision.
type LatencyStats struct {
	Min         time.Duration `json:"min_ns" toml:"min_ns"`
	Max         time.Duration `json:"max_ns" toml:"max_ns"`
	Mean        time.Duration `json:"mean_ns" toml:"mean_ns"`
	Median      time.Duration `json:"median_ns" toml:"median_ns"`
	Stddev      time.Duration `json:"stddev_ns" toml:"stddev_ns"`
	P95         time.Duration `json:"p95_ns" toml:"p95_ns"`
	P99         time.Duration `json:"p99_ns" toml:"p99_ns"`
	SampleCount int           `json:"sample_count" toml:"sample_count"`
}

func ComputeLatencyStats(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats := LatencyStats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Median:      percentile(sorted, 50),
		P95:         percentile(sorted, 95),
		P99:         percentile(sorted, 99),
		SampleCount: len(sorted),
	}

	var sum int64
	for _, d := range sorted {
		sum += int64(d)
	}
	stats.Mean = time.Duration(sum / int64(len(sorted)))

	if len(sorted) > 1 {
		var sumSquares float64
		meanNs := float64(stats.Mean.Nanoseconds())
		for _, d := range sorted {
			diff := float64(d.Nanoseconds()) - meanNs
			sumSquares += diff * diff
		}
		stats.Stddev = time.Duration(math.Sqrt(sumSquares / float64(len(sorted)-1)))
	}

	return stats
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return time.Duration(float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight)
}

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}
