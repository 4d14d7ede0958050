// Package applog configures the structured logger shared by the
// transmitter and receiver command-line entry points. Grounded on
// doismellburning-samoyed/go.mod's charmbracelet/log dependency, which
// the teacher's sibling examples reach for whenever a CLI needs leveled,
// human-readable console output.
package applog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w with the given level and a prefix
// identifying which half of the link (tx/rx) is running.
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(level)
	return logger
}

// Default builds a logger writing to stderr at info level.
func Default(prefix string) *log.Logger {
	return New(os.Stderr, log.InfoLevel, prefix)
}

// ParseLevel maps a CLI --log-level flag value to a log.Level, falling
// back to info for anything unrecognized.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
