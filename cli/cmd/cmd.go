package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cfgconv/lang"
	"github.com/ardnew/cfgconv/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type stdioKey struct{}

type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithStdio returns a new context.Context whose commands read "-" from in and
// write "-" to out instead of [os.Stdin] and [os.Stdout].
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio{in: in, out: out})
}

func stdioFrom(ctx context.Context) stdio {
	s, _ := ctx.Value(stdioKey{}).(stdio)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// stdStream is the special path naming stdin or stdout.
const stdStream = "-"

// displayName returns the name used for path in logs and errors.
func displayName(path string, stream string) string {
	if path == "" || path == stdStream {
		return stream
	}

	return path
}

// readDocument parses the YAML document at path, or stdin if path is "-".
func readDocument(ctx context.Context, path string) (*lang.Document, error) {
	name := displayName(path, "<stdin>")

	r := stdioFrom(ctx).in

	if path != "" && path != stdStream {
		f, err := os.Open(path)
		if err != nil {
			return nil, ErrReadInput.With(slog.String("input", name)).Wrap(err)
		}
		defer f.Close()

		r = f
	}

	doc, err := lang.ParseReader(ctx, r)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("input", name))
	}

	log.DebugContext(ctx, "read input",
		slog.String("input", name),
		slog.Int("entries", len(doc.Entries)),
	)

	return doc, nil
}

// writeOutput writes data to path, or stdout if path is "-".
//
// Files are written to a temporary file in the same directory and renamed
// into place, so the target is either left untouched or fully replaced.
func writeOutput(ctx context.Context, path string, data []byte) error {
	name := displayName(path, "<stdout>")

	if path == "" || path == stdStream {
		_, err := io.Copy(stdioFrom(ctx).out, bytes.NewReader(data))
		if err != nil {
			return ErrWriteOutput.With(slog.String("output", name)).Wrap(err)
		}

		return nil
	}

	err := writeFileAtomic(path, data, defaultFileMode)
	if err != nil {
		return ErrWriteOutput.With(slog.String("output", name)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote output",
		slog.String("output", name),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// defaultFileMode is the permission mode of created output files.
const defaultFileMode os.FileMode = 0o644

func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Chmod(perm); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
