package nvof

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/nvof/dynload"
	"github.com/gogpu/nvof/opticalflow"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for nvof and all its sub-packages.
// By default, nvof produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by nvof:
//   - [slog.LevelDebug]: buffer allocation, symbol resolution
//   - [slog.LevelInfo]: shared library loads
//   - [slog.LevelWarn]: pool eviction, failed library opens
//   - [slog.LevelError]: buffer release failure, right before the process exits
//
// Example:
//
//	nvof.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	opticalflow.SetLogger(l)
	dynload.SetLogger(l)
}

// Logger returns the current logger. The returned logger is never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
