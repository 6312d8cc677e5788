// Package report prints the end-of-run summary.
package report

import (
	"fmt"
	"io"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/stats"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// NoFramesLine replaces the statistics when nothing was matched.
const NoFramesLine = "No frames matched, no statistics available"

// PrintSummary writes the aggregate report for r to w.
//
//	Summary:
//	Gate delay (ns): min 0.000000180 max 0.000000420 mean 0.000000260 stddev 0.000000041
//	Path delay (ns): min ...
//	Gate deadline misses: 1 (33%)
//	Path deadline misses: 0 (0%)
//	Cycles missed: 1
func PrintSummary(w io.Writer, r *types.Results) error {
	if _, err := fmt.Fprintln(w, "Summary:"); err != nil {
		return err
	}

	if r.FrameCount == 0 {
		_, err := fmt.Fprintf(w, "%s\nCycles missed: %d\n", NoFramesLine, r.CyclesMissed)
		return err
	}

	gatePct, _ := stats.Percent(r.GateDeadlineMisses, r.FrameCount)
	pathPct, _ := stats.Percent(r.PathDeadlineMisses, r.FrameCount)

	lines := []string{
		seriesLine("Gate delay", stats.Summarize(r.GateDelays)),
		seriesLine("Path delay", stats.Summarize(r.PathDelays)),
		fmt.Sprintf("Gate deadline misses: %d (%d%%)", r.GateDeadlineMisses, gatePct),
		fmt.Sprintf("Path deadline misses: %d (%d%%)", r.PathDeadlineMisses, pathPct),
		fmt.Sprintf("Cycles missed: %d", r.CyclesMissed),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func seriesLine(label string, s stats.Summary) string {
	return fmt.Sprintf("%s (ns): min %s max %s mean %s stddev %s",
		label,
		timespec.Format(s.Min, false),
		timespec.Format(s.Max, false),
		timespec.Format(s.Mean, false),
		timespec.Format(s.StdDev, false))
}
