package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// resolveLogLevel picks the level from flags first, then the configured name.
// --verbose wins over --quiet. Unknown names fall back to info.
func resolveLogLevel(configured string, quiet, verbose bool) log.Level {
	switch {
	case verbose:
		return log.DebugLevel
	case quiet:
		return log.ErrorLevel
	}
	if configured == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(strings.ToLower(configured))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
