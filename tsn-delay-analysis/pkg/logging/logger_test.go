package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var linePrefix = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] `)

func TestInfoGoesToLogOnly(t *testing.T) {
	var logBuf, errBuf bytes.Buffer
	l := NewWriterLogger(&logBuf, &errBuf)

	l.Info("loaded %d lines", 42)

	require.Regexp(t, linePrefix, logBuf.String())
	require.True(t, strings.HasSuffix(logBuf.String(), "loaded 42 lines\n"))
	require.Empty(t, errBuf.String())
}

func TestErrorGoesToBothStreams(t *testing.T) {
	var logBuf, errBuf bytes.Buffer
	l := NewWriterLogger(&logBuf, &errBuf)

	l.Error("bad %s", "thing")

	require.Contains(t, logBuf.String(), "ERROR: bad thing")
	require.Contains(t, errBuf.String(), "ERROR: bad thing")
}

func TestScopesNest(t *testing.T) {
	var logBuf bytes.Buffer
	l := NewWriterLogger(&logBuf, &bytes.Buffer{})

	l.WithScope("LOAD").WithScope("TX").Info("hello")
	l.Info("plain")

	lines := strings.Split(strings.TrimSpace(logBuf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "[LOAD:TX] hello")
	require.NotContains(t, lines[1], "[LOAD")
}

func TestSeparator(t *testing.T) {
	var logBuf bytes.Buffer
	l := NewWriterLogger(&logBuf, &bytes.Buffer{})

	l.WithScope("X").Separator()

	require.Equal(t, SeparatorLine+"\n", logBuf.String())
}

func TestNewDualLoggerFiles(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	errPath := filepath.Join(dir, "run.err")

	l, err := NewDualLogger(logPath, errPath)
	require.NoError(t, err)
	l.Info("info line")
	l.Error("error line")
	l.Close()

	logData, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(logData), "info line")
	require.Contains(t, string(logData), "ERROR: error line")

	errData, err := os.ReadFile(errPath)
	require.NoError(t, err)
	require.NotContains(t, string(errData), "info line")
	require.Contains(t, string(errData), "ERROR: error line")
}

func TestNewDualLoggerEmptyPathsDiscard(t *testing.T) {
	l, err := NewDualLogger("", "")
	require.NoError(t, err)
	l.Info("nowhere")
	l.Close()
}

func TestNewDualLoggerBadPath(t *testing.T) {
	_, err := NewDualLogger(filepath.Join(t.TempDir(), "missing", "run.log"), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open log file")
}
