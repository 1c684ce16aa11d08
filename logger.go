package segdeque

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with deque-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger

	// failures samples allocation-failure warnings so that a caller
	// retrying against an exhausted budget cannot flood the output.
	failures *rate.Sometimes
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger:   slog.New(handler),
		failures: newFailureSampler(),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

func newFailureSampler() *rate.Sometimes {
	return &rate.Sometimes{First: 3, Interval: 10 * time.Second}
}

// WithName tags every record with the deque name.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger:   l.Logger.With("deque", name),
		failures: l.failures,
	}
}

// WithSegmentLen adds the segment length field.
func (l *Logger) WithSegmentLen(n int) *Logger {
	return &Logger{
		Logger:   l.Logger.With("segment_len", n),
		failures: l.failures,
	}
}

// LogIndexGrowth logs a reallocation of the indirection index.
func (l *Logger) LogIndexGrowth(side Side, oldSlots, newSlots, segments int) {
	l.Debug("index grown",
		"side", side.String(),
		"old_slots", oldSlots,
		"new_slots", newSlots,
		"segments", segments,
	)
}

// LogAllocationFailure logs a failed segment allocation. Output is sampled:
// the first few failures are logged, then at most one per interval.
func (l *Logger) LogAllocationFailure(op string, segments int, err error) {
	l.failures.Do(func() {
		l.Warn("segment allocation failed",
			"op", op,
			"segments", segments,
			"error", err,
		)
	})
}

// LogRelease logs that a deque returned all of its storage.
func (l *Logger) LogRelease(segments int) {
	l.Debug("storage released",
		"segments", segments,
	)
}
