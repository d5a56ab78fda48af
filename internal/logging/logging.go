// Package logging holds the process-wide logger shared by every package of
// the native layer. The root package exposes it as SetLogger/Logger.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// Set stores l as the active logger. nil restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// L returns the active logger.
func L() *slog.Logger {
	return loggerPtr.Load()
}

// Printf adapts the active logger to printf-style sinks such as the
// fontscan system font scanner. Messages are logged at debug level under
// the given component name.
type Printf string

func (p Printf) Printf(format string, args ...interface{}) {
	l := L()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...), "component", string(p))
}
