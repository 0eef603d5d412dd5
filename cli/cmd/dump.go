package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
)

// Dump prints the parsed document, in source order, as YAML or JSON.
type Dump struct {
	Input  string `default:"-"    help:"Input YAML file, or - for stdin"        placeholder:"FILE" short:"i" type:"path"`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (${enum})"                    short:"f"`
	Indent int    `default:"2"    help:"Indentation width; 0 selects compact output"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, d.Input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	switch strings.ToLower(d.Format) {
	case "yaml":
		err = doc.FormatYAML(ctx, &buf, d.Indent)
	case "json":
		err = doc.FormatJSON(ctx, &buf, d.Indent)
	default:
		return ErrUnknownFormat.With(slog.String("format", d.Format))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", d.Format)).Wrap(err)
	}

	return writeOutput(ctx, stdStream, buf.Bytes())
}
