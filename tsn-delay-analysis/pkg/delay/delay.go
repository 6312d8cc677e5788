// =============================================================================
// pkg/delay/delay.go - Path Delay and Gate Delay Computation
// =============================================================================
//
// For every matched frame:
//
//	pathDelay = rx.HW - tx.HW
//	            miss when |pathDelay| > PathDelayThresholdNs
//
//	gateDelay = tx.HW - (tx.Gate + cyclesMissed * cycleTime)
//	            miss when |gateDelay| >= cycleTime
//
// A late frame (gateDelay >= cycleTime) means the sender skipped whole cycles.
// Those cycles are added to cyclesMissed so that later frames are compared
// against the gate they actually used, not the one in the log.
//
// =============================================================================

package delay

import (
	"fmt"
	"io"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/interfaces"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// FrameHeader precedes the per-frame lines.
const FrameHeader = "All times are relative to the gate event (first column)"

// Computer owns the results accumulator and processes matched pairs.
type Computer struct {
	settings types.Settings
	results  *types.Results
	out      io.Writer
	recorder interfaces.Recorder
}

// NewComputer creates a Computer writing per-frame lines to out. recorder
// may be nil.
func NewComputer(settings types.Settings, out io.Writer, recorder interfaces.Recorder) *Computer {
	return &Computer{
		settings: settings,
		results:  types.NewResults(),
		out:      out,
		recorder: recorder,
	}
}

// Results returns the accumulator. It stays owned by the Computer.
func (c *Computer) Results() *types.Results {
	return c.results
}

// Process accounts one matched pair and, unless in summary mode, prints its
// frame line.
func (c *Computer) Process(tx, rx types.TimestampSet) {
	r := c.results
	cycle := c.settings.CycleTimeNs

	r.FrameCount++

	pathDelay := rx.HardwareNs - tx.HardwareNs
	pathMiss := abs(pathDelay) > types.PathDelayThresholdNs
	if pathMiss {
		r.PathDeadlineMisses++
	}
	r.PathDelays = append(r.PathDelays, pathDelay)

	adjustedGate := tx.GateNs + r.CyclesMissed*cycle

	gateDelay := tx.HardwareNs - adjustedGate
	gateMiss := abs(gateDelay) >= cycle
	if gateMiss {
		r.GateDeadlineMisses++
		if gateDelay > 0 {
			r.CyclesMissed += gateDelay / cycle
		}
	}
	r.GateDelays = append(r.GateDelays, gateDelay)

	if c.recorder != nil {
		c.recorder.FrameProcessed(pathDelay, gateDelay, pathMiss, gateMiss, r.CyclesMissed)
	}

	if c.settings.SummaryOnly {
		return
	}
	fmt.Fprintln(c.out, FrameLine(tx, rx))
}

// FrameLine renders one matched frame. TX times are relative to the TX gate,
// RX times to the RX gate.
func FrameLine(tx, rx types.TimestampSet) string {
	return fmt.Sprintf("[%s] seqid %d HW TX %s SW TX %s HW RX %s SW RX %s",
		timespec.Format(tx.GateNs, false),
		tx.SeqID,
		timespec.Format(tx.HardwareNs-tx.GateNs, true),
		timespec.Format(tx.SoftwareNs-tx.GateNs, true),
		timespec.Format(rx.HardwareNs-rx.GateNs, true),
		timespec.Format(rx.SoftwareNs-rx.GateNs, true))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
