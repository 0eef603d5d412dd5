package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// testCLI mirrors the kinds of global flags the application defines.
type testCLI struct {
	Level   string `default:"info"`
	Pretty  bool   `default:"true"  negatable:""`
	Count   int    `default:"3"`
	Empty   string
	Version kong.VersionFlag
}

func parseTestCLI(t *testing.T, confPath string, args ...string) *kong.Context {
	t.Helper()

	var cli testCLI

	parser, err := kong.New(&cli,
		kong.Name("cfgconv"),
		kong.Vars{ConfigIdentifier: confPath, "version": "test"},
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return ktx
}

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{"create new config", false, false, nil},
		{"overwrite existing with force", true, true, nil},
		{"fail without force", false, true, ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "cfgconv", "config.yaml")

			if tt.exists {
				err := os.MkdirAll(filepath.Dir(confPath), 0o700)
				if err != nil {
					t.Fatal(err)
				}

				err = os.WriteFile(confPath, []byte("existing: content\n"), 0o600)
				if err != nil {
					t.Fatal(err)
				}
			}

			ctx := WithContext(t.Context(), parseTestCLI(t, confPath, "--level=debug"))

			err := (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if tt.wantErr != nil {
				if string(content) != "existing: content\n" {
					t.Errorf("existing file changed to %q", content)
				}

				return
			}

			var settings map[string]any
			if err := yaml.Unmarshal(content, &settings); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if settings["level"] != "debug" {
				t.Errorf("level = %v, want debug", settings["level"])
			}

			if settings["pretty"] != true {
				t.Errorf("pretty = %v, want true", settings["pretty"])
			}

			for _, skipped := range []string{"help", "version", "empty"} {
				if _, ok := settings[skipped]; ok {
					t.Errorf("config contains %q", skipped)
				}
			}

			if !strings.HasPrefix(string(content), "# cfgconv configuration\n") {
				t.Errorf("missing header:\n%s", content)
			}
		})
	}
}

func TestInit_Run_InvalidPath(t *testing.T) {
	// A regular file cannot be a parent directory.
	parent := filepath.Join(t.TempDir(), "file")

	err := os.WriteFile(parent, nil, 0o600)
	if err != nil {
		t.Fatal(err)
	}

	confPath := filepath.Join(parent, "config.yaml")
	ctx := WithContext(t.Context(), parseTestCLI(t, confPath))

	err = (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Fatalf("Run() error = %v, want ErrWriteConfig", err)
	}
}

func TestInit_Run_NoContext(t *testing.T) {
	err := (&Init{}).Run(t.Context())
	if !errors.Is(err, ErrWriteConfig) {
		t.Fatalf("Run() error = %v, want ErrWriteConfig", err)
	}
}

func TestFlagValue(t *testing.T) {
	type named string

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", false, false},
		{"int", 42, 42},
		{"float", 1.5, 1.5},
		{"string", "x", "x"},
		{"empty string", "", nil},
		{"strings", []string{"a"}, []string{"a"}},
		{"empty strings", []string{}, nil},
		{"named string", named("text"), "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flagValue(tt.in)

			switch want := tt.want.(type) {
			case []string:
				g, ok := got.([]string)
				if !ok || len(g) != len(want) || g[0] != want[0] {
					t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, want)
				}
			default:
				if got != tt.want {
					t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}
