package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// Default is the process-wide logger. It writes to stderr at the info
// level until SetDebug raises it.
var Default = New(os.Stderr)

// SetDebug raises or restores the default logger's level.
func SetDebug(debug bool) {
	if debug {
		Default.SetLevel(log.DebugLevel)
	} else {
		Default.SetLevel(log.InfoLevel)
	}
}

// ParseCompleted logs a finished parse at debug level.
func (l *Logger) ParseCompleted(source string, lines, nodes int, duration time.Duration) {
	l.Debug("parse completed",
		"source", source,
		"lines", lines,
		"nodes", nodes,
		"duration", duration.Round(time.Microsecond))
}

// FetchCompleted logs a finished remote fetch at debug level.
func (l *Logger) FetchCompleted(url string, status int, duration time.Duration) {
	l.Debug("fetch completed",
		"url", url,
		"status", status,
		"duration", duration.Round(time.Millisecond))
}

// SourceError logs a failed source acquisition at debug level. The
// user-facing report goes through the error envelope, so this only
// surfaces with --debug.
func (l *Logger) SourceError(source string, err error) {
	l.Debug("source error",
		"source", source,
		"error", err)
}
