package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes records through a handler built from its options.
//
// A Logger is immutable and may be shared between goroutines. The zero
// Logger discards everything.
type Logger struct {
	handler slog.Handler
	config
}

// Make returns a [Logger] writing to w, or to stderr when w is nil. Without
// options it writes pretty text at [DefaultLevel] with [DefaultTimeLayout]
// timestamps and no caller.
func Make(w io.Writer, opts ...Option) Logger {
	return newLogger(newConfig(w, opts...))
}

func newLogger(c config) Logger {
	return Logger{handler: c.handler(), config: c}
}

// With returns a [Logger] that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	l.handler = l.handler.WithAttrs(attrs)

	return l
}

// Level returns the least severe level that is written.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether records at level are written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// Log writes msg at level. The record's source is the caller of Log.
func (l Logger) Log(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	l.write(ctx, level, msg, 3, attrs)
}

// write emits a record whose source is skip frames above runtime.Callers.
func (l Logger) write(
	ctx context.Context,
	level Level,
	msg string,
	skip int,
	attrs []slog.Attr,
) {
	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.source {
		var pcs [1]uintptr
		runtime.Callers(skip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)
	_ = l.handler.Handle(ctx, r)
}
