package lang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/cfgconv/log"
)

// Document is the ordered top-level mapping of a parsed input.
type Document struct {
	Entries []*Entry
}

// NewDocument creates a document from the given entries.
func NewDocument(entries ...*Entry) *Document {
	return &Document{Entries: entries}
}

// Line is a single output statement.
type Line struct {
	Name    string
	Literal string
}

// String returns the statement in its output form, without a line terminator.
func (l Line) String() string {
	return l.Name + " := " + l.Literal + ";"
}

// Emit validates and converts every entry of doc in order.
//
// The first invalid name or value aborts the whole operation and no lines are
// returned, including those of entries that converted successfully before it.
func Emit(ctx context.Context, doc *Document) ([]Line, error) {
	if doc == nil {
		return nil, nil
	}

	lines := make([]Line, 0, len(doc.Entries))

	for _, entry := range doc.Entries {
		line, err := emitEntry(entry)
		if err != nil {
			return nil, err
		}

		log.TraceContext(ctx, "emit",
			slog.String("name", line.Name),
			slog.String("literal", line.Literal),
		)

		lines = append(lines, line)
	}

	log.DebugContext(ctx, "emitted document", slog.Int("lines", len(lines)))

	return lines, nil
}

func emitEntry(entry *Entry) (Line, error) {
	name := entry.Name()

	if entry.Key == nil || !entry.Key.isScalar() || !IsValidName(name) {
		return Line{}, ErrInvalidName.
			With(slog.String("name", name)).
			Wrap(fmt.Errorf("%q does not match %s", name, NamePattern))
	}

	var sb strings.Builder

	err := convert(&sb, entry.Value, name)
	if err != nil {
		return Line{}, WrapError(err).With(slog.String("name", name))
	}

	return Line{Name: name, Literal: sb.String()}, nil
}

// Format writes the converted document to w, one statement per line.
// Nothing is written unless every entry converts.
func (doc *Document) Format(ctx context.Context, w io.Writer) error {
	lines, err := Emit(ctx, doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	for _, line := range lines {
		buf.WriteString(line.String())
		buf.WriteByte('\n')
	}

	_, err = buf.WriteTo(w)

	return err
}

// Result is the outcome of checking a single entry.
type Result struct {
	Name string
	Line Line
	Err  error
}

// OK reports whether the entry converted.
func (r Result) OK() bool { return r.Err == nil }

// Check validates and converts every entry of doc independently, reporting
// each outcome instead of stopping at the first failure.
func Check(ctx context.Context, doc *Document) []Result {
	if doc == nil {
		return nil
	}

	results := make([]Result, 0, len(doc.Entries))

	failed := 0

	for _, entry := range doc.Entries {
		line, err := emitEntry(entry)
		if err != nil {
			failed++
		}

		results = append(results, Result{
			Name: entry.Name(),
			Line: line,
			Err:  err,
		})
	}

	log.DebugContext(ctx, "checked document",
		slog.Int("entries", len(results)),
		slog.Int("failed", failed),
	)

	return results
}
