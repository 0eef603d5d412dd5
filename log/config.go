package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// Level is the severity of a record. It extends [slog.Level] with
// [LevelTrace].
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4) // trace
	LevelDebug = Level(slog.LevelDebug)     // debug
	LevelInfo  = Level(slog.LevelInfo)      // info
	LevelWarn  = Level(slog.LevelWarn)      // warn
	LevelError = Level(slog.LevelError)     // error
)

// DefaultLevel is used when no level is configured or a level name is not
// recognized.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the level names from least to most severe.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range levels {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s, ignoring case and surrounding
// space. Offsets such as "warn+2" are accepted as by [slog.Level]. Unknown
// names yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is used when no format is configured or a format name is not
// recognized.
const DefaultFormat = FormatText

// Formats yields the format names.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, or [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))

	if i := slices.Index(slices.Collect(Formats()), s); i >= 0 {
		return Format(i)
	}

	return DefaultFormat
}

// DefaultTimeLayout is the timestamp layout used unless [WithTimeLayout]
// says otherwise.
const DefaultTimeLayout = time.RFC3339

// Option changes one setting of a [Logger] under construction.
type Option func(*config)

type config struct {
	out    io.Writer
	stamp  func(time.Time) string
	level  Level
	format Format
	source bool
	pretty bool
}

// newConfig returns the default settings writing to w, or to stderr when w is
// nil, with opts applied in order.
func newConfig(w io.Writer, opts ...Option) config {
	if w == nil {
		w = os.Stderr
	}

	c := config{
		out:    w,
		stamp:  timeFormatter(DefaultTimeLayout),
		level:  DefaultLevel,
		format: DefaultFormat,
		pretty: true,
	}

	return c.with(opts...)
}

// with returns a copy of c with opts applied.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithLevel discards records below level.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat selects text or JSON records.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout. A name such as "RFC3339Nano" or
// "DateTime" selects the [time] constant of that name, ignoring case and
// punctuation; any other text is a [time.Time.Format] layout. An empty layout
// or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *config) { c.stamp = timeFormatter(layout) }
}

// WithCaller adds the source file and line of the logging call.
func WithCaller(enable bool) Option {
	return func(c *config) { c.source = enable }
}

// WithPretty styles text records for terminals. Styles are dropped when the
// output is not a terminal. JSON records are never styled.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.source,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.out, opts)
	case c.pretty:
		return newPrettyHandler(c.out, opts)
	default:
		return slog.NewTextHandler(c.out, opts)
	}
}

// replaceAttr applies the timestamp layout and spells levels by their names,
// so trace records read TRACE rather than DEBUG-4.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok || c.stamp == nil {
			return a
		}

		s := c.stamp(t)
		if s == "" {
			return slog.Attr{}
		}

		return slog.String(a.Key, s)

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(a.Key, strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

var namedLayouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,
	"kitchen":     time.Kitchen,
	"stampmilli":  time.StampMilli,
	"none":        "",
}

func timeFormatter(layout string) func(time.Time) string {
	key := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if named, ok := namedLayouts[key]; ok {
		layout = named
	}

	if key == "" || layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
