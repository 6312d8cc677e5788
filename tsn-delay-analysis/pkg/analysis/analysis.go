// =============================================================================
// pkg/analysis/analysis.go - Match and Compute Pipeline
// =============================================================================
//
// Drives one analysis over two fully loaded logs:
//
//	1. Parse RX lines into a match pool (short lines dropped).
//	2. For each TX line in file order:
//	     - drop it if short
//	     - take the matching RX record, or report "seqid N lost"
//	     - read the TX gate time, or report "Malformed gate time"
//	     - read the RX gate time, or report "Malformed RX time"
//	     - hand both TimestampSets to the delay computer
//
// Lost and malformed reports go to the report writer (stdout), next to the
// frame lines they interrupt, and are counted for the operator log.
//
// =============================================================================

package analysis

import (
	"fmt"
	"io"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/delay"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/eventlog"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/interfaces"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/match"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// Outcome is what Run hands back to the caller.
type Outcome struct {
	Results  *types.Results
	Counters types.Counters
}

// Run matches txLines against rxLines and computes delays.
//
// The only error is an unreadable timestamp inside a matched line, which
// aborts the run. recorder may be nil.
func Run(settings types.Settings, txLines, rxLines []string, out io.Writer,
	logger interfaces.Logger, recorder interfaces.Recorder) (*Outcome, error) {

	log := logger.WithScope("MATCH")
	var c types.Counters
	c.TxLines = len(txLines)
	c.RxLines = len(rxLines)

	rxRecords := make([]eventlog.Record, 0, len(rxLines))
	for i, line := range rxLines {
		r, ok := eventlog.ParseRxLine(i+1, line)
		if !ok {
			c.RxSkipped++
			continue
		}
		rxRecords = append(rxRecords, r)
	}
	pool := match.NewPool(rxRecords)
	computer := delay.NewComputer(settings, out, recorder)

	if !settings.SummaryOnly {
		fmt.Fprintln(out, delay.FrameHeader)
	}

	for i, line := range txLines {
		tx, ok := eventlog.ParseTxLine(i+1, line)
		if !ok {
			c.TxSkipped++
			continue
		}

		rx, found := pool.Take(tx.SeqID)
		if !found {
			fmt.Fprintf(out, "seqid %d lost\n", tx.SeqID)
			log.Info("seqid %d (tx line %d) lost", tx.SeqID, tx.LineNo)
			c.Lost++
			if recorder != nil {
				recorder.FrameLost()
			}
			continue
		}

		txGate, ok := eventlog.GateTime(tx.GateToken())
		if !ok {
			fmt.Fprintf(out, "Malformed gate time %s\n", tx.GateToken())
			c.MalformedTx++
			malformed(recorder, "tx")
			continue
		}
		txSet, err := eventlog.TxTimestamps(tx, txGate, settings)
		if err != nil {
			return nil, err
		}

		rxGate, ok := eventlog.GateTime(rx.GateToken())
		if !ok || !eventlog.HasRxTimestamps(rx) {
			fmt.Fprintf(out, "Malformed RX time %s\n", rx.GateToken())
			c.MalformedRx++
			malformed(recorder, "rx")
			continue
		}
		rxSet, err := eventlog.RxTimestamps(rx, rxGate, settings)
		if err != nil {
			return nil, err
		}

		computer.Process(txSet, rxSet)
		c.Matched++
	}

	c.RxLeftUnpaired = pool.Remaining()

	log.Info("tx lines %d (skipped %d), rx lines %d (skipped %d)",
		c.TxLines, c.TxSkipped, c.RxLines, c.RxSkipped)
	log.Info("matched %d, lost %d, malformed tx %d, malformed rx %d, rx unpaired %d",
		c.Matched, c.Lost, c.MalformedTx, c.MalformedRx, c.RxLeftUnpaired)

	return &Outcome{Results: computer.Results(), Counters: c}, nil
}

func malformed(recorder interfaces.Recorder, side string) {
	if recorder != nil {
		recorder.FrameMalformed(side)
	}
}
