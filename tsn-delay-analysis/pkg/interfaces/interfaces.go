// =============================================================================
// pkg/interfaces/interfaces.go - Core Interfaces
// =============================================================================
//
// This package defines the interfaces shared by the tsn-delay-analysis
// packages. Coding to interfaces keeps the pipeline testable: tests inject a
// discard logger and a nil-safe metrics recorder.
//
// =============================================================================

package interfaces

// =============================================================================
// Logger Interface
// =============================================================================

// Logger is the operator log. It never writes to stdout, which is reserved
// for the analysis report.
type Logger interface {
	// Info logs an informational message.
	Info(format string, args ...interface{})

	// Error logs an error message to both the error and log streams.
	Error(format string, args ...interface{})

	// Separator logs a visual separator line.
	Separator()

	// WithScope returns a child logger whose lines carry [scope].
	WithScope(scope string) Logger

	// Sync flushes buffered output.
	Sync()

	// Close releases the underlying files. No-op on scoped loggers.
	Close()
}

// =============================================================================
// Recorder Interface
// =============================================================================

// Recorder receives per-frame events for metrics export.
type Recorder interface {
	// FrameProcessed is called once per matched, well-formed pair.
	FrameProcessed(pathDelayNs, gateDelayNs int64, pathMiss, gateMiss bool, cyclesMissed int64)

	// FrameLost is called for a TX record without a matching RX record.
	FrameLost()

	// FrameMalformed is called when a matched pair is dropped; side is "tx" or "rx".
	FrameMalformed(side string)
}
