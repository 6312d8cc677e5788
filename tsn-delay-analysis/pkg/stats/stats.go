// =============================================================================
// pkg/stats/stats.go - Delay Series Statistics
// =============================================================================
//
// Summarises a series of nanosecond delays:
//   - min / max
//   - arithmetic mean, truncated toward zero
//   - sample standard deviation (n-1 denominator), truncated toward zero
//   - nearest-rank percentiles (p50, p90, p99) for the operator log
//
// All inputs and outputs are int64 nanoseconds. Delays can be negative (a
// frame leaving before its gate opens), so nothing here assumes otherwise.
//
// =============================================================================

package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
)

// =============================================================================
// Summary
// =============================================================================

// Summary contains computed statistics for one delay series.
type Summary struct {
	Count  int   // Number of samples
	Min    int64 // Minimum delay
	Max    int64 // Maximum delay
	Mean   int64 // Mean delay, truncated toward zero
	StdDev int64 // Sample standard deviation, truncated toward zero
	P50    int64 // 50th percentile (median)
	P90    int64 // 90th percentile
	P99    int64 // 99th percentile
}

// Summarize computes statistics for samples.
//
// An empty series yields a zero Summary with Count 0. A single sample has a
// StdDev of 0: the sample deviation is undefined there and callers print it
// as zero.
func Summarize(samples []int64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	// Sort a copy so the caller keeps its input order
	sorted := make([]int64, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	return Summary{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   Mean(samples),
		StdDev: StdDev(samples),
		P50:    percentile(sorted, 0.50),
		P90:    percentile(sorted, 0.90),
		P99:    percentile(sorted, 0.99),
	}
}

// Mean returns the arithmetic mean truncated toward zero, or 0 for no samples.
//
// The mean is accumulated as a running quotient and remainder so that long
// series of large absolute timestamps cannot overflow int64.
func Mean(samples []int64) int64 {
	n := int64(len(samples))
	if n == 0 {
		return 0
	}

	var quot, rem int64
	for _, s := range samples {
		quot += s / n
		rem += s % n
		if rem >= n || rem <= -n {
			quot += rem / n
			rem %= n
		}
	}
	// quot + rem/n is exact; fold the sign of the remainder into truncation.
	if quot > 0 && rem < 0 {
		quot--
		rem += n
	} else if quot < 0 && rem > 0 {
		quot++
		rem -= n
	}
	return quot + rem/n
}

// StdDev returns the sample standard deviation (n-1 denominator) truncated
// toward zero. Fewer than two samples give 0.
func StdDev(samples []int64) int64 {
	n := len(samples)
	if n < 2 {
		return 0
	}

	// Two-pass in float64 around the exact integer mean.
	mean := float64(Mean(samples))
	var variance float64
	var meanCorr float64
	for _, s := range samples {
		diff := float64(s) - mean
		variance += diff * diff
		meanCorr += diff
	}
	variance = (variance - meanCorr*meanCorr/float64(n)) / float64(n-1)
	if variance < 0 {
		variance = 0
	}
	return int64(math.Sqrt(variance))
}

// percentile calculates the p-th percentile from a sorted slice.
// p should be between 0 and 1 (e.g., 0.99 for 99th percentile).
func percentile(sorted []int64, p float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	// Use nearest-rank method
	idx := int(math.Ceil(float64(n)*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// String returns a formatted string of the summary for the operator log.
func (s Summary) String() string {
	if s.Count == 0 {
		return "count=0 (no samples)"
	}
	return fmt.Sprintf("count=%d min=%s max=%s mean=%s stddev=%s p50=%s p90=%s p99=%s",
		s.Count,
		timespec.Format(s.Min, false), timespec.Format(s.Max, false),
		timespec.Format(s.Mean, false), timespec.Format(s.StdDev, false),
		timespec.Format(s.P50, false), timespec.Format(s.P90, false),
		timespec.Format(s.P99, false))
}

// =============================================================================
// Percent
// =============================================================================

// Percent returns part*100/total using integer division, so 1 of 3 is 33.
// The second result is false when total is 0.
func Percent(part, total int) (int, bool) {
	if total == 0 {
		return 0, false
	}
	return part * 100 / total, true
}
