package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/cfgconv/lang"
	"github.com/ardnew/cfgconv/log"
)

// Convert writes one "name := literal;" line for each top-level entry of a
// YAML mapping.
type Convert struct {
	Input  string `default:"-" help:"Input YAML file, or - for stdin"   placeholder:"FILE" short:"i" type:"path"`
	Output string `default:"-" help:"Output file, or - for stdout"      placeholder:"FILE" short:"o" type:"path"`
}

// Run executes the convert command.
//
// Nothing is written unless every entry converts.
func (c *Convert) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, c.Input)
	if err != nil {
		return err
	}

	input := slog.String("input", displayName(c.Input, "<stdin>"))

	var buf bytes.Buffer

	err = doc.Format(ctx, &buf)
	if err != nil {
		return lang.WrapError(err).With(input)
	}

	log.DebugContext(ctx, "converted",
		input,
		slog.Int("entries", len(doc.Entries)),
	)

	return writeOutput(ctx, c.Output, buf.Bytes())
}
