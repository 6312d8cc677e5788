// =============================================================================
// workflow.go - Phase Orchestration
// =============================================================================
//
// Runs one analysis end to end:
//
//   Phase 1: LOAD    - read both logs fully into memory
//   Phase 2: MATCH   - pair TX/RX records, compute delays, print frame lines
//   Phase 3: REPORT  - print the summary, log statistics, export metrics
//
// The report goes to the writer handed to Run (stdout in production). Every
// phase logs to its own scope in the operator log; nothing in the operator
// log changes what is printed.
//
// =============================================================================

package main

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/karthikiyer56/tsn-delay-analysis/helpers"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/analysis"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/eventlog"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/interfaces"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/metrics"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/report"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/stats"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// Workflow orchestrates the LOAD, MATCH and REPORT phases.
type Workflow struct {
	config   *Config
	log      interfaces.Logger
	parent   interfaces.Logger
	recorder *metrics.PromRecorder
	runID    string
}

// WorkflowStats tracks how long each phase took.
type WorkflowStats struct {
	LoadTime   time.Duration
	MatchTime  time.Duration
	ReportTime time.Duration
}

// TotalTime is the sum of all phases.
func (s WorkflowStats) TotalTime() time.Duration {
	return s.LoadTime + s.MatchTime + s.ReportTime
}

// NewWorkflow creates a Workflow for a validated config.
func NewWorkflow(config *Config, logger interfaces.Logger) *Workflow {
	return &Workflow{
		config:   config,
		log:      logger.WithScope("WORKFLOW"),
		parent:   logger,
		recorder: metrics.NewPromRecorder(),
		runID:    uuid.NewString(),
	}
}

// Run executes all phases, writing the report to out.
func (w *Workflow) Run(out io.Writer) (WorkflowStats, error) {
	var ws WorkflowStats

	w.log.Info("Run ID: %s", w.runID)

	// Phase 1: LOAD
	start := time.Now()
	txLines, rxLines, err := w.load()
	if err != nil {
		return ws, err
	}
	ws.LoadTime = time.Since(start)

	// Phase 2: MATCH
	start = time.Now()
	outcome, err := analysis.Run(w.config.Settings, txLines, rxLines, out, w.parent, w.recorder)
	if err != nil {
		return ws, errors.Wrap(err, "analysis aborted")
	}
	ws.MatchTime = time.Since(start)

	// Phase 3: REPORT
	start = time.Now()
	if err := report.PrintSummary(out, outcome.Results); err != nil {
		return ws, errors.Wrap(err, "failed to write summary")
	}
	w.logResults(outcome)
	if w.config.MetricsFile != "" {
		if err := w.recorder.WriteTextfile(w.config.MetricsFile); err != nil {
			return ws, err
		}
		w.parent.WithScope("REPORT").Info("Metrics written to %s", w.config.MetricsFile)
	}
	ws.ReportTime = time.Since(start)

	w.log.Info("Phase timings: load=%s match=%s report=%s total=%s",
		helpers.FormatDuration(ws.LoadTime), helpers.FormatDuration(ws.MatchTime),
		helpers.FormatDuration(ws.ReportTime), helpers.FormatDuration(ws.TotalTime()))
	return ws, nil
}

func (w *Workflow) load() (tx, rx []string, err error) {
	log := w.parent.WithScope("LOAD")

	tx, err = eventlog.ReadLines(w.config.TxLog)
	if err != nil {
		log.Error("%v", err)
		return nil, nil, errors.Wrap(err, "tx log")
	}
	log.Info("TX log: %s lines", helpers.FormatNumber(int64(len(tx))))

	rx, err = eventlog.ReadLines(w.config.RxLog)
	if err != nil {
		log.Error("%v", err)
		return nil, nil, errors.Wrap(err, "rx log")
	}
	log.Info("RX log: %s lines", helpers.FormatNumber(int64(len(rx))))
	return tx, rx, nil
}

func (w *Workflow) logResults(o *analysis.Outcome) {
	log := w.parent.WithScope("REPORT")
	r := o.Results
	c := o.Counters

	log.Info("Frames:          %s", helpers.FormatNumber(int64(r.FrameCount)))
	log.Info("Lost:            %s", helpers.FormatNumber(int64(c.Lost)))
	log.Info("Malformed TX/RX: %d/%d", c.MalformedTx, c.MalformedRx)
	log.Info("RX unpaired:     %s", helpers.FormatNumber(int64(c.RxLeftUnpaired)))
	log.Info("Gate delay:      %s", stats.Summarize(r.GateDelays))
	log.Info("Path delay:      %s", stats.Summarize(r.PathDelays))
	if pct, ok := stats.Percent(r.PathDeadlineMisses, r.FrameCount); ok {
		log.Info("Path misses:     %d (%d%%, threshold %dns)", r.PathDeadlineMisses, pct, types.PathDelayThresholdNs)
	}
	if pct, ok := stats.Percent(r.GateDeadlineMisses, r.FrameCount); ok {
		log.Info("Gate misses:     %d (%d%%), cycles missed %d", r.GateDeadlineMisses, pct, r.CyclesMissed)
	}
}
