package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML configuration
// file into flag values.
//
// Top-level keys name flags, using either hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//	log-pretty: false
//	convert:
//	  output: out.cfg
//
// Nested mappings name the flags of a command. Command-line flags override
// configuration file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var root yaml.MapSlice

	err := yaml.NewDecoder(r, yaml.UseOrderedMap()).
		DecodeContext(context.Background(), &root)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("configuration file: %w", err)
	}

	cfg := make(config)
	cfg.load("", root)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration keys.
// Keys are normalized to use hyphens, and nested mappings are joined with
// dots ("convert.output").
type config map[string]any

func (c config) load(prefix string, m yaml.MapSlice) {
	for _, item := range m {
		key := normalize(fmt.Sprint(item.Key))
		if prefix != "" {
			key = prefix + "." + key
		}

		if nested, ok := item.Value.(yaml.MapSlice); ok {
			c.load(key, nested)

			continue
		}

		c[key] = scalar(item.Value)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := normalize(flag.Name)

	if parent != nil && parent.Command != nil {
		if value, ok := c[normalize(parent.Command.Name)+"."+name]; ok {
			return value, nil
		}
	}

	if value, ok := c[name]; ok {
		return value, nil
	}

	// Not found; Kong uses the flag's default.
	return nil, nil
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "_", "-")
}

// scalar converts a decoded YAML value into the form Kong's mappers accept.
// Kong requires numbers as strings for parsing.
func scalar(v any) any {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}
