package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/cfgconv/lang"
)

// Check reports, for every top-level entry, either the line it converts to or
// the reason it cannot be converted.
type Check struct {
	Input string `default:"-" help:"Input YAML file, or - for stdin" placeholder:"FILE" short:"i" type:"path"`
	Quiet bool   `help:"Only report entries that fail" short:"q"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, c.Input)
	if err != nil {
		return err
	}

	results := lang.Check(ctx, doc)

	out := stdioFrom(ctx).out

	failed, err := c.report(out, results)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.String("input", displayName(c.Input, "<stdin>")),
			slog.Int("failed", failed),
			slog.Int("entries", len(results)),
		)
	}

	return nil
}

type checkStyles struct {
	ok, fail, name, detail, summary lipgloss.Style
}

func makeCheckStyles(w io.Writer) checkStyles {
	r := lipgloss.NewRenderer(w)

	return checkStyles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		name:    r.NewStyle().Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("8")),
		summary: r.NewStyle().Italic(true),
	}
}

// report writes one line per result and a summary, returning the number of
// failed entries.
func (c *Check) report(w io.Writer, results []lang.Result) (int, error) {
	st := makeCheckStyles(w)

	width := 0
	for _, r := range results {
		width = max(width, lipgloss.Width(r.Name))
	}

	var (
		sb     strings.Builder
		failed int
	)

	for _, r := range results {
		name := st.name.Render(r.Name + strings.Repeat(" ", width-lipgloss.Width(r.Name)))

		if r.OK() {
			if !c.Quiet {
				fmt.Fprintf(&sb, "%s  %s  %s\n",
					st.ok.Render("ok  "), name, st.detail.Render(r.Line.String()))
			}

			continue
		}

		failed++

		fmt.Fprintf(&sb, "%s  %s  %s\n",
			st.fail.Render("FAIL"), name, st.detail.Render(r.Err.Error()))
	}

	fmt.Fprintln(&sb, st.summary.Render(
		fmt.Sprintf("%d of %d entries convert", len(results)-failed, len(results)),
	))

	_, err := io.WriteString(w, sb.String())

	return failed, err
}
