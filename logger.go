package searchgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with searchgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
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
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, fingerprint uint64, cacheHit bool, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"fingerprint", fingerprint,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"fingerprint", fingerprint,
		"cache_hit", cacheHit,
		"results", results,
	)
}

// LogInsert logs a document registration.
func (l *Logger) LogInsert(ctx context.Context, id uint32, fields int) {
	l.DebugContext(ctx, "document indexed",
		"id", id,
		"fields", fields,
	)
}

// LogDelete logs a document removal.
func (l *Logger) LogDelete(ctx context.Context, id uint32) {
	l.DebugContext(ctx, "document removed",
		"id", id,
	)
}
