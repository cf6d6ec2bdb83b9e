package errors

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that logs through zerolog.
// The zero value writes human-readable output to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger overrides the destination. When nil, a console logger on
	// stderr is used.
	Logger *zerolog.Logger
}

var stderrLogger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return &stderrLogger
}

// HandleError logs a ReconcileError. Replacements are informational: they
// are logged at debug level, and only when Verbose is set.
func (h *LogHandler) HandleError(err *ReconcileError) {
	if err == nil {
		return
	}
	ev := h.logger().Error()
	if err.Kind == KindReplace {
		if !h.Verbose {
			return
		}
		ev = h.logger().Debug()
	}
	ev = ev.Str("op", err.Op).Stringer("kind", err.Kind)
	if err.Entity != nil {
		ev = ev.Stringer("entity", err.Entity)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Err(err.Err).Msg("reconcile error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("panic")
}

// HandleMessageError logs a dropped message at warn level.
func (h *LogHandler) HandleMessageError(err *MessageError) {
	if err == nil {
		return
	}
	ev := h.logger().Warn().
		Stringer("recipient", err.Recipient).
		Str("payload", err.Payload).
		Str("reason", string(err.Reason))
	if err.Element != "" {
		ev = ev.Str("element", err.Element)
	}
	ev.Msg("message dropped")
}
