package eventlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

const (
	sampleTx = "[1567611606.749999008] seqid 147 txtstamp 1567611643.749999195 swts 1567611606.750111880"
	sampleRx = "[1567611606.725799008] src 00:04:9f:05:de:06 dst 00:04:9f:05:f4:ab ethertype 0x22f0 seqid 26 rxtstamp 1567611643.725804046 swts 1567611606.725822874"
)

func TestParseTxLine(t *testing.T) {
	r, ok := ParseTxLine(3, sampleTx)
	require.True(t, ok)
	require.Equal(t, 3, r.LineNo)
	require.Equal(t, int64(147), r.SeqID)
	require.Equal(t, "[1567611606.749999008]", r.GateToken())

	_, ok = ParseTxLine(1, "[1.0] seqid 1 txtstamp 2.0 swts")
	require.False(t, ok, "six tokens is malformed")

	_, ok = ParseTxLine(1, "")
	require.False(t, ok)

	_, ok = ParseTxLine(1, "[1.0] seqid x txtstamp 2.0 swts 3.0")
	require.False(t, ok, "non-integer seqid")
}

func TestParseRxLine(t *testing.T) {
	r, ok := ParseRxLine(1, sampleRx)
	require.True(t, ok)
	require.Equal(t, int64(26), r.SeqID)
	require.True(t, HasRxTimestamps(r))

	short, ok := ParseRxLine(2, "[1.0] src a dst b ethertype 0x22f0 seqid 5")
	require.True(t, ok, "nine tokens carry a seqid")
	require.False(t, HasRxTimestamps(short))

	_, ok = ParseRxLine(3, "[1.0] src a dst b ethertype 0x22f0 seqid")
	require.False(t, ok)
}

func TestGateTime(t *testing.T) {
	g, ok := GateTime("[1567611606.749999008]")
	require.True(t, ok)
	require.Equal(t, "1567611606.749999008", g)

	_, ok = GateTime("1567611606.749999008")
	require.False(t, ok)

	_, ok = GateTime("[]")
	require.False(t, ok)

	_, ok = GateTime("[1.0")
	require.False(t, ok)
}

func TestTxTimestampsAppliesOffsetExceptHardware(t *testing.T) {
	s := types.Settings{UTCOffsetNs: 37 * types.NsecPerSec, CycleTimeNs: 1000000}
	r, ok := ParseTxLine(1, sampleTx)
	require.True(t, ok)
	gate, ok := GateTime(r.GateToken())
	require.True(t, ok)

	ts, err := TxTimestamps(r, gate, s)
	require.NoError(t, err)
	require.Equal(t, int64(147), ts.SeqID)
	require.Equal(t, timespec.MustParse("1567611643.749999008"), ts.GateNs)
	require.Equal(t, timespec.MustParse("1567611643.750111880"), ts.SoftwareNs)
	require.Equal(t, timespec.MustParse("1567611643.749999195"), ts.HardwareNs)
}

func TestRxTimestamps(t *testing.T) {
	s := types.Settings{UTCOffsetNs: 0, CycleTimeNs: 1000000}
	r, ok := ParseRxLine(1, sampleRx)
	require.True(t, ok)

	ts, err := RxTimestamps(r, "1567611606.725799008", s)
	require.NoError(t, err)
	require.Equal(t, timespec.MustParse("1567611643.725804046"), ts.HardwareNs)
	require.Equal(t, timespec.MustParse("1567611606.725822874"), ts.SoftwareNs)
}

func TestTimestampsInvalid(t *testing.T) {
	r, ok := ParseTxLine(9, "[1.0] seqid 1 txtstamp 1.2.3 swts 4.0")
	require.True(t, ok)

	_, err := TxTimestamps(r, "1.0", types.Settings{CycleTimeNs: 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, timespec.ErrInvalidTimestamp))
	require.Contains(t, err.Error(), "line 9")
}

func TestReadLinesPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleTx+"\n\nlast line without newline"), 0644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{sampleTx, "", "last line without newline"}, lines)
}

func TestReadLinesZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rx.log.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sampleRx + "\n" + sampleRx + "\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{sampleRx, sampleRx}, lines)
}

func TestReadLinesGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.log.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := gzip.NewWriter(f)
	_, err = enc.Write([]byte(sampleTx + "\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{sampleTx}, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.log"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open")
}
