package orrery

import (
	"log/slog"

	"github.com/agiangrant/orrery/internal/logging"
)

// SetLogger sets the logger used by orrery and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels:
//   - Debug: dropped key repeats, unknown native codes, deferred releases
//   - Info: lifecycle transitions (start, quit requested, stopped)
//   - Warn: present failures, panicking scheduled tasks
//   - Error: backend initialization failures
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger {
	return logging.Logger()
}
