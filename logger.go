package native

import (
	"log/slog"

	"github.com/Lymia/PrincessEdit/native/internal/logging"
)

// SetLogger configures the logger for the native layer and all its
// packages. By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used:
//   - [slog.LevelDebug]: per-call diagnostics (handle allocation, cache hits)
//   - [slog.LevelInfo]: lifecycle events (bridge created, system fonts loaded)
//   - [slog.LevelWarn]: skipped font files and images, recovered panics
//   - [slog.LevelError]: an exception could not be delivered to the host
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.L()
}
