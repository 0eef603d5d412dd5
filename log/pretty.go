package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the lipgloss styles applied to each part of a record.
type prettyStyles struct {
	key     lipgloss.Style
	time    lipgloss.Style
	source  lipgloss.Style
	message lipgloss.Style
	str     lipgloss.Style
	number  lipgloss.Style
	yes     lipgloss.Style
	no      lipgloss.Style
	other   lipgloss.Style
	level   map[Level]lipgloss.Style
}

func makePrettyStyles(r *lipgloss.Renderer) prettyStyles {
	return prettyStyles{
		key:     r.NewStyle().Foreground(lipgloss.Color("8")),
		time:    r.NewStyle().Foreground(lipgloss.Color("12")),
		source:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		message: r.NewStyle().Bold(true),
		str:     r.NewStyle().Foreground(lipgloss.Color("14")),
		number:  r.NewStyle().Foreground(lipgloss.Color("11")),
		yes:     r.NewStyle().Foreground(lipgloss.Color("10")),
		no:      r.NewStyle().Foreground(lipgloss.Color("9")),
		other:   r.NewStyle().Foreground(lipgloss.Color("13")),
		level: map[Level]lipgloss.Style{
			LevelTrace: r.NewStyle().Foreground(lipgloss.Color("13")),
			LevelDebug: r.NewStyle().Foreground(lipgloss.Color("12")),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("10")),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

// levelStyle returns the style of the nearest defined level at or below l.
func (s prettyStyles) levelStyle(l Level) lipgloss.Style {
	for _, at := range []Level{LevelError, LevelWarn, LevelInfo, LevelDebug} {
		if l >= at {
			return s.level[at]
		}
	}

	return s.level[LevelTrace]
}

// prettyHandler writes key=value records like [slog.TextHandler], styled
// with lipgloss. The renderer detects the color profile of the output, so
// styles are dropped when it is not a terminal.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	styles prettyStyles

	// preformatted holds attributes added by WithAttrs, already rendered.
	preformatted []byte
	// groups opened by WithGroup, applied to attributes added afterward.
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		styles: makePrettyStyles(lipgloss.NewRenderer(w)),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeBuiltin(buf, slog.Time(slog.TimeKey, r.Time.Round(0)), h.styles.time)
	}

	h.writeBuiltin(
		buf,
		slog.Any(slog.LevelKey, r.Level),
		h.styles.levelStyle(Level(r.Level)),
	)

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			h.writeBuiltin(
				buf,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
				h.styles.source,
			)
		}
	}

	h.writeBuiltin(buf, slog.String(slog.MessageKey, r.Message), h.styles.message)

	if len(h.preformatted) > 0 {
		separate(buf)
		buf.Write(h.preformatted)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	buf := bytes.NewBuffer(slices.Clone(h.preformatted))
	for _, a := range attrs {
		h.writeAttr(buf, h.groups, a)
	}

	c := *h
	c.preformatted = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// writeBuiltin writes one of the record's built-in attributes after passing
// it through ReplaceAttr.
func (h *prettyHandler) writeBuiltin(
	buf *bytes.Buffer,
	a slog.Attr,
	style lipgloss.Style,
) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	separate(buf)
	buf.WriteString(h.styles.key.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(style.Render(quote(a.Value.Resolve().String())))
}

// writeAttr writes a user attribute, flattening groups into dotted keys.
func (h *prettyHandler) writeAttr(
	buf *bytes.Buffer,
	groups []string,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return
		}

		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}

		for _, m := range members {
			h.writeAttr(buf, groups, m)
		}

		return
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	separate(buf)
	buf.WriteString(h.styles.key.Render(key))
	buf.WriteByte('=')
	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(h.styles.str.Render(quote(v.String())))

	case slog.KindInt64:
		buf.WriteString(h.styles.number.Render(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(h.styles.number.Render(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(
			h.styles.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64)),
		)

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(h.styles.yes.Render("true"))
		} else {
			buf.WriteString(h.styles.no.Render("false"))
		}

	case slog.KindDuration:
		buf.WriteString(h.styles.number.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(h.styles.time.Render(quote(v.Time().String())))

	default:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(h.styles.no.Render(quote(err.Error())))

			return
		}

		buf.WriteString(h.styles.other.Render(quote(v.String())))
	}
}

func separate(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

// quote returns s quoted if it would be ambiguous in key=value output.
func quote(s string) string {
	if s == "" {
		return `""`
	}

	for _, r := range s {
		if r == '=' || r == '"' || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}

	return s
}
