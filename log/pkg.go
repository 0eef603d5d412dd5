package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	SetDefault(Make(nil))
}

// Default returns the package-level [Logger].
func Default() Logger { return *defaultLogger.Load() }

// SetDefault replaces the package-level [Logger].
func SetDefault(l Logger) { defaultLogger.Store(&l) }

// Config rebuilds the package-level [Logger] from its current settings with
// opts applied. Attributes added by [Logger.With] are dropped.
func Config(opts ...Option) {
	SetDefault(newLogger(Default().with(opts...)))
}

// logDefault is called directly by the exported functions below, so the
// record's source is four frames above runtime.Callers.
func logDefault(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	Default().write(ctx, level, msg, 4, attrs)
}

// TraceContext logs at [LevelTrace] with the package-level [Logger].
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] with the package-level [Logger].
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] with the package-level [Logger].
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] with the package-level [Logger].
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] with the package-level [Logger].
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs)
}

// Error logs at [LevelError] with the package-level [Logger] when no context
// is at hand.
func Error(msg string, attrs ...slog.Attr) {
	logDefault(context.Background(), LevelError, msg, attrs)
}
