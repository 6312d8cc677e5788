// =============================================================================
// pkg/logging/logger.go - Dual Logging Implementation
// =============================================================================
//
// This package provides a dual-output logger that writes:
//   - Informational messages to a log stream
//   - Error messages to a separate error stream (and to the log stream)
//
// Both streams are logrus loggers sharing a line formatter that keeps the
// plain operator-friendly layout:
//
//	[2006-01-02 15:04:05.000] message
//	[2006-01-02 15:04:05.000] [MATCH] seqid 17 lost
//	[2006-01-02 15:04:05.000] [LOAD] ERROR: failed to open rx log
//
// SCOPED LOGGING:
//   Loggers can be scoped with a prefix using WithScope(). Scopes nest:
//   logger.WithScope("A").WithScope("B") prints [A:B].
//
// DESTINATIONS:
//   An empty path discards the stream. The analysis report owns stdout, so
//   the logger never falls back to it.
//
// =============================================================================

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/interfaces"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// SeparatorLine is the visual separator used in logs
	SeparatorLine = "========================================================================="

	// TimeFormat is the timestamp format for log messages
	TimeFormat = "2006-01-02 15:04:05.000"

	scopeField     = "scope"
	separatorField = "separator"
)

// =============================================================================
// lineFormatter
// =============================================================================

// lineFormatter renders logrus entries as "[time] [scope] LEVEL: msg".
// Only error-and-above entries get a level tag.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if _, ok := e.Data[separatorField]; ok {
		b.WriteString(SeparatorLine)
		b.WriteByte('\n')
		return b.Bytes(), nil
	}

	fmt.Fprintf(&b, "[%s] ", e.Time.Format(TimeFormat))
	if scope, ok := e.Data[scopeField]; ok {
		fmt.Fprintf(&b, "[%v] ", scope)
	}
	if e.Level <= logrus.ErrorLevel {
		b.WriteString("ERROR: ")
	}
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func newLogrus(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// =============================================================================
// DualLogger Implementation
// =============================================================================

// DualLogger implements the Logger interface with separate log and error streams.
type DualLogger struct {
	info  *logrus.Logger
	errs  *logrus.Logger
	files []*os.File
}

// NewDualLogger creates a DualLogger writing to the given files. Existing
// files are truncated. An empty path discards that stream.
func NewDualLogger(logPath, errorPath string) (*DualLogger, error) {
	var files []*os.File

	open := func(path, what string) (io.Writer, error) {
		if path == "" {
			return io.Discard, nil
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s file %s", what, path)
		}
		files = append(files, f)
		return f, nil
	}

	logW, err := open(logPath, "log")
	if err != nil {
		return nil, err
	}
	errW, err := open(errorPath, "error")
	if err != nil {
		for _, f := range files {
			f.Close()
		}
		return nil, err
	}

	l := NewWriterLogger(logW, errW)
	l.files = files
	return l, nil
}

// NewWriterLogger creates a DualLogger over arbitrary writers.
func NewWriterLogger(logW, errW io.Writer) *DualLogger {
	return &DualLogger{
		info: newLogrus(logW),
		errs: newLogrus(errW),
	}
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *DualLogger {
	return NewWriterLogger(io.Discard, io.Discard)
}

// WithScope creates a scoped logger that prefixes all messages with the scope name.
func (l *DualLogger) WithScope(scope string) interfaces.Logger {
	return &ScopedLogger{parent: l, scope: scope}
}

// Info logs an informational message to the log stream.
func (l *DualLogger) Info(format string, args ...interface{}) {
	l.info.Infof(format, args...)
}

// Error logs an error message to both the error stream and log stream.
func (l *DualLogger) Error(format string, args ...interface{}) {
	l.errs.Errorf(format, args...)
	l.info.Errorf(format, args...)
}

// Separator logs a visual separator line to the log stream.
func (l *DualLogger) Separator() {
	l.info.WithField(separatorField, true).Info("")
}

// Sync forces a flush of all log files to disk.
func (l *DualLogger) Sync() {
	for _, f := range l.files {
		f.Sync()
	}
}

// Close syncs and closes all log files.
func (l *DualLogger) Close() {
	for _, f := range l.files {
		f.Sync()
		f.Close()
	}
	l.files = nil
}

// =============================================================================
// ScopedLogger - Logger with a Prefix
// =============================================================================

// ScopedLogger wraps a DualLogger and prefixes all messages with a scope name.
// Closing the parent closes the files; Close on a ScopedLogger does nothing.
type ScopedLogger struct {
	parent *DualLogger
	scope  string
}

// WithScope creates a nested scoped logger: [A:B].
func (l *ScopedLogger) WithScope(scope string) interfaces.Logger {
	return &ScopedLogger{parent: l.parent, scope: l.scope + ":" + scope}
}

// Info logs an informational message with the scope prefix.
func (l *ScopedLogger) Info(format string, args ...interface{}) {
	l.parent.info.WithField(scopeField, l.scope).Infof(format, args...)
}

// Error logs an error message with the scope prefix.
func (l *ScopedLogger) Error(format string, args ...interface{}) {
	l.parent.errs.WithField(scopeField, l.scope).Errorf(format, args...)
	l.parent.info.WithField(scopeField, l.scope).Errorf(format, args...)
}

// Separator logs a visual separator line (no scope prefix for separators).
func (l *ScopedLogger) Separator() {
	l.parent.Separator()
}

// Sync forces a flush of all log data to disk.
func (l *ScopedLogger) Sync() {
	l.parent.Sync()
}

// Close is a no-op for ScopedLogger. Close the parent DualLogger instead.
func (l *ScopedLogger) Close() {}
