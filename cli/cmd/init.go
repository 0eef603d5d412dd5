package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cfgconv/log"
	"github.com/ardnew/cfgconv/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// defaultConfigDirMode is the permission mode of a created configuration
// directory.
const defaultConfigDirMode os.FileMode = 0o700

// defaultConfigFileMode is the permission mode of the configuration file.
const defaultConfigFileMode os.FileMode = 0o600

var errNoConfigPath = errors.New("configuration file path undefined")

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(errNoConfigPath)
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || confPath == "" {
		return ErrWriteConfig.Wrap(errNoConfigPath)
	}

	_, err := os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := i.marshal(ctx, ktx)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.MkdirAll(filepath.Dir(confPath), defaultConfigDirMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = writeFileAtomic(confPath, data, defaultConfigFileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// marshal renders the current flag values as a YAML configuration file.
func (i *Init) marshal(ctx context.Context, ktx *kong.Context) ([]byte, error) {
	settings := i.settings(ktx)

	data, err := yaml.MarshalContext(ctx, settings, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf("# %s configuration\n", ktx.Model.Name)

	return append([]byte(header), data...), nil
}

// settings collects the values of the application's global flags.
// Flags that are hidden, unset, or only meaningful on the command line are
// skipped.
func (i *Init) settings(ktx *kong.Context) yaml.MapSlice {
	ignore := []string{"help", "version", profile.Tag}

	var settings yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx.FlagValue(flag)); val != nil {
			settings = append(settings, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return settings
}

// flagValue returns the configuration file form of a flag value, or nil if
// it is unset.
func flagValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return v.String()

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}
