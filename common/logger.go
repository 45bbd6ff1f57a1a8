package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so callers skip formatting.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var activeLogger atomic.Pointer[slog.Logger]

func init() {
	activeLogger.Store(slog.New(discardHandler{}))
}

// SetLogger installs the logger shared by every engine package. By default nothing is logged.
// Passing nil restores the silent default. Safe for concurrent use.
//
// Levels in use:
//   - slog.LevelDebug: per-draw diagnostics such as degraded normal matrices
//   - slog.LevelInfo: lifecycle events and periodic frame statistics
//   - slog.LevelWarn: recoverable failures such as a snapshot that could not be written
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	activeLogger.Store(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
