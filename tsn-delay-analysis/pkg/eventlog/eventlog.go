// =============================================================================
// pkg/eventlog/eventlog.go - raw-l2-send / raw-l2-rcv Log Reader
// =============================================================================
//
// Loads the transmit and receive logs written by the test rig and turns each
// line into a record keyed by sequence id.
//
// SAMPLE TX LINE (raw-l2-send):
//
//	[1567611606.749999008] seqid 147 txtstamp 1567611643.749999195 swts 1567611606.750111880
//	 tok 0                 1     2   3        4                    5    6
//
// SAMPLE RX LINE (raw-l2-rcv):
//
//	[1567611606.725799008] src 00:04:9f:05:de:06 dst 00:04:9f:05:f4:ab ethertype 0x22f0 seqid 26 rxtstamp 1567611643.725804046 swts 1567611606.725822874
//	 tok 0                 1   2                 3   4                 5         6      7     8  9        10                   11   12
//
// COMPRESSION:
//
//	Files ending in .zst or .gz are decompressed on the fly. Rig logs are
//	usually archived compressed, and the whole file is loaded into memory
//	either way.
//
// =============================================================================

package eventlog

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// =============================================================================
// Token Positions
// =============================================================================

const (
	gateToken = 0

	txSeqToken = 2
	txHWToken  = 4
	txSWToken  = 6

	rxSeqToken = 8
	rxHWToken  = 10
	rxSWToken  = 12
)

// maxLineSize bounds a single log line. Rig lines are ~150 bytes.
const maxLineSize = 1024 * 1024

var gatePattern = regexp.MustCompile(`\[(.*)\]`)

// =============================================================================
// Records
// =============================================================================

// Record is one usable log line.
type Record struct {
	// LineNo is the 1-based line number in the source file.
	LineNo int

	// SeqID is the frame sequence id.
	SeqID int64

	// Tokens is the whitespace-split line.
	Tokens []string
}

// GateToken returns token 0, which carries the bracketed gate time.
func (r Record) GateToken() string {
	return r.Tokens[gateToken]
}

// ParseTxLine parses a raw-l2-send line. ok is false for lines with fewer
// than 7 tokens or a sequence id that is not an integer.
func ParseTxLine(lineNo int, line string) (Record, bool) {
	return parseLine(lineNo, line, types.TxMinTokens, txSeqToken)
}

// ParseRxLine parses a raw-l2-rcv line. ok is false for lines with fewer
// than 9 tokens or a sequence id that is not an integer.
func ParseRxLine(lineNo int, line string) (Record, bool) {
	return parseLine(lineNo, line, types.RxMinTokens, rxSeqToken)
}

func parseLine(lineNo int, line string, minTokens, seqToken int) (Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < minTokens {
		return Record{}, false
	}
	seq, err := strconv.ParseInt(tokens[seqToken], 10, 64)
	if err != nil {
		return Record{}, false
	}
	return Record{LineNo: lineNo, SeqID: seq, Tokens: tokens}, true
}

// GateTime extracts the text between the brackets of a gate token such as
// "[1567611606.749999008]". ok is false when the brackets are missing or empty.
func GateTime(token string) (string, bool) {
	m := gatePattern.FindStringSubmatch(token)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// TxTimestamps converts a TX record into a TimestampSet. gate is the text
// returned by GateTime. Gate and software times are shifted to TAI; the
// hardware time stays raw.
func TxTimestamps(r Record, gate string, s types.Settings) (types.TimestampSet, error) {
	return timestamps(r, gate, txHWToken, txSWToken, s)
}

// RxTimestamps is TxTimestamps for RX records. The record must have
// types.RxFullTokens tokens; see HasRxTimestamps.
func RxTimestamps(r Record, gate string, s types.Settings) (types.TimestampSet, error) {
	return timestamps(r, gate, rxHWToken, rxSWToken, s)
}

// HasRxTimestamps reports whether an RX record carries both RX timestamps.
func HasRxTimestamps(r Record) bool {
	return len(r.Tokens) >= types.RxFullTokens
}

func timestamps(r Record, gate string, hwToken, swToken int, s types.Settings) (types.TimestampSet, error) {
	gateNs, err := timespec.Parse(gate)
	if err != nil {
		return types.TimestampSet{}, errors.Wrapf(err, "line %d gate time", r.LineNo)
	}
	hwNs, err := timespec.Parse(r.Tokens[hwToken])
	if err != nil {
		return types.TimestampSet{}, errors.Wrapf(err, "line %d hardware timestamp", r.LineNo)
	}
	swNs, err := timespec.Parse(r.Tokens[swToken])
	if err != nil {
		return types.TimestampSet{}, errors.Wrapf(err, "line %d software timestamp", r.LineNo)
	}

	return types.TimestampSet{
		SeqID:      r.SeqID,
		GateNs:     s.UTCToTAI(gateNs),
		SoftwareNs: s.UTCToTAI(swNs),
		HardwareNs: hwNs,
	}, nil
}

// =============================================================================
// File Loading
// =============================================================================

// Open opens a log file, transparently decompressing .zst and .gz files.
// The caller must close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "failed to create zstd decoder for %s", path)
		}
		return &decodedFile{Reader: dec, closeDec: dec.Close, file: f}, nil
	case ".gz":
		dec, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "failed to read gzip header of %s", path)
		}
		return &decodedFile{Reader: dec, closeDec: func() { dec.Close() }, file: f}, nil
	}
	return f, nil
}

type decodedFile struct {
	io.Reader
	closeDec func()
	file     *os.File
}

func (d *decodedFile) Close() error {
	d.closeDec()
	return d.file.Close()
}

// ReadLines loads every line of the log at path into memory.
func ReadLines(path string) ([]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var lines []string
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return lines, nil
}
