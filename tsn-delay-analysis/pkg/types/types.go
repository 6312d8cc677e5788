// =============================================================================
// pkg/types/types.go - Core Data Types
// =============================================================================
//
// This package contains pure data types used throughout tsn-delay-analysis.
// These types have no external dependencies beyond the standard library.
//
// All time values are signed 64-bit nanosecond counts. The textual
// "seconds.nanoseconds" form only exists at the I/O boundaries (see
// pkg/timespec).
//
// =============================================================================

package types

// =============================================================================
// Constants
// =============================================================================

const (
	// NsecPerSec is the number of nanoseconds in one second.
	NsecPerSec = 1000000000

	// PathDelayThresholdNs is the maximum PHY-to-PHY path delay, in nanoseconds,
	// before a frame counts as a path deadline miss.
	PathDelayThresholdNs = 5000

	// TxMinTokens is the minimum number of whitespace tokens of a usable
	// raw-l2-send line. Shorter lines are skipped.
	TxMinTokens = 7

	// RxMinTokens is the minimum number of whitespace tokens of a raw-l2-rcv
	// line for its sequence id to be readable. Shorter lines are skipped.
	RxMinTokens = 9

	// RxFullTokens is the number of tokens needed to read every RX timestamp.
	RxFullTokens = 13
)

// =============================================================================
// Settings - Process-wide Analysis Configuration
// =============================================================================

// Settings is the resolved analysis configuration. It is built once at
// startup and passed explicitly to every stage that needs it.
type Settings struct {
	// UTCOffsetNs is the UTC-to-TAI leap second offset in nanoseconds.
	UTCOffsetNs int64

	// CycleTimeNs is the length of one gate schedule period in nanoseconds.
	// Always > 0 once validated.
	CycleTimeNs int64

	// SummaryOnly suppresses the per-frame lines.
	SummaryOnly bool
}

// UTCToTAI converts a UTC nanosecond value to TAI using the configured offset.
func (s Settings) UTCToTAI(ns int64) int64 {
	return ns + s.UTCOffsetNs
}

// =============================================================================
// TimestampSet - One Side of a Matched Frame
// =============================================================================

// TimestampSet holds the timestamps of one frame as seen by one side (TX or RX).
//
// GateNs and SoftwareNs are TAI. HardwareNs is the raw PHC value and is never
// offset corrected.
type TimestampSet struct {
	SeqID      int64
	GateNs     int64
	SoftwareNs int64
	HardwareNs int64
}

// =============================================================================
// Results - Accumulator for the Delay Computer
// =============================================================================

// Results accumulates per-frame outcomes.
//
// INVARIANT:
//
//	FrameCount == len(PathDelays) == len(GateDelays)
type Results struct {
	PathDeadlineMisses int
	GateDeadlineMisses int

	// PathDelays and GateDelays hold one entry per processed frame, in
	// processing order.
	PathDelays []int64
	GateDelays []int64

	FrameCount int

	// CyclesMissed never decreases.
	CyclesMissed int64
}

// NewResults returns an empty accumulator with its own series storage.
func NewResults() *Results {
	return &Results{
		PathDelays: make([]int64, 0, 1024),
		GateDelays: make([]int64, 0, 1024),
	}
}

// =============================================================================
// Counters - Processing Statistics (log file only)
// =============================================================================

// Counters tracks what happened to every input line. None of these values
// affect the report on stdout; they are logged and exported as metrics.
type Counters struct {
	TxLines        int
	RxLines        int
	TxSkipped      int
	RxSkipped      int
	Matched        int
	Lost           int
	MalformedTx    int
	MalformedRx    int
	RxLeftUnpaired int
}
