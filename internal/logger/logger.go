// Package logger wraps charm/log with the log lines the CLI emits.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/rgonek/extmd/tree"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a level name to a charm/log level, defaulting to info.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CompileStarted logs the start of a compilation
func (l *Logger) CompileStarted(runID, source string, size int) {
	l.Debug("compile started",
		"run", runID,
		"source", source,
		"size", humanize.Bytes(uint64(size)))
}

// CompileCompleted logs a finished compilation
func (l *Logger) CompileCompleted(runID string, blocks, slots, warnings int, duration time.Duration) {
	l.Info("compile completed",
		"run", runID,
		"blocks", blocks,
		"slots", slots,
		"warnings", warnings,
		"duration", duration.Round(time.Microsecond))
}

// Warning logs a compilation warning
func (l *Logger) Warning(runID string, w tree.Warning) {
	l.Warn(w.Message,
		"run", runID,
		"type", w.Type,
		"node", w.NodeType)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, fromFile bool) {
	l.Debug("config loaded",
		"path", path,
		"from_file", fromFile)
}
