package errors

import (
	"log/slog"

	"github.com/snitron/clockface/pkg/logging"
)

// LogHandler is an ErrorHandler that writes through slog.
type LogHandler struct {
	// Logger receives the records. Nil uses the shared clockface logger.
	Logger *slog.Logger
	// Verbose adds stack traces to panic records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logging.Logger()
}

// HandleError logs a ClockError at warn level.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("error", err.Err),
	}
	if err.Field != "" {
		attrs = append(attrs, slog.String("field", err.Field))
	}
	h.logger().Warn("clockface error", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("clockface panic recovered", attrs...)
}
