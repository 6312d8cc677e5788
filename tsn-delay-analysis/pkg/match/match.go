// Package match pairs transmit records with receive records by sequence id.
//
// Each TX record takes the first not-yet-used RX record with the same
// sequence id, in RX file order, and consumes it. A duplicate TX sequence id
// therefore gets the next RX record with that id, or nothing.
package match

import (
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/eventlog"
)

// Pool holds the RX records that are still available for matching.
type Pool struct {
	bySeq map[int64][]eventlog.Record
	left  int
}

// NewPool indexes rx by sequence id, keeping file order within each id.
func NewPool(rx []eventlog.Record) *Pool {
	p := &Pool{bySeq: make(map[int64][]eventlog.Record, len(rx))}
	for _, r := range rx {
		p.bySeq[r.SeqID] = append(p.bySeq[r.SeqID], r)
	}
	p.left = len(rx)
	return p
}

// Take removes and returns the first remaining RX record with seq.
func (p *Pool) Take(seq int64) (eventlog.Record, bool) {
	queue := p.bySeq[seq]
	if len(queue) == 0 {
		return eventlog.Record{}, false
	}

	r := queue[0]
	if len(queue) == 1 {
		delete(p.bySeq, seq)
	} else {
		p.bySeq[seq] = queue[1:]
	}
	p.left--
	return r, true
}

// Remaining is the number of RX records never taken.
func (p *Pool) Remaining() int {
	return p.left
}
