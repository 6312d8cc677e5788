package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/eventlog"
)

func rec(line int, seq int64) eventlog.Record {
	return eventlog.Record{LineNo: line, SeqID: seq}
}

func TestTakeFirstInFileOrder(t *testing.T) {
	p := NewPool([]eventlog.Record{rec(1, 7), rec(2, 8), rec(3, 7)})
	require.Equal(t, 3, p.Remaining())

	r, ok := p.Take(7)
	require.True(t, ok)
	require.Equal(t, 1, r.LineNo)

	r, ok = p.Take(7)
	require.True(t, ok)
	require.Equal(t, 3, r.LineNo)

	_, ok = p.Take(7)
	require.False(t, ok, "no RX record is matched twice")
	require.Equal(t, 1, p.Remaining())
}

func TestTakeMissing(t *testing.T) {
	p := NewPool(nil)
	_, ok := p.Take(1)
	require.False(t, ok)
	require.Equal(t, 0, p.Remaining())
}

func TestDuplicateTxIDsAtMostOneToOne(t *testing.T) {
	p := NewPool([]eventlog.Record{rec(1, 5)})

	_, ok := p.Take(5)
	require.True(t, ok)
	_, ok = p.Take(5)
	require.False(t, ok)
}
