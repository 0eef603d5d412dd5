package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sensorInput = "deviceName: 'SensorX'\n" +
	"interval: 30\n" +
	"sensors:\n" +
	"  - time:\n" +
	"      - \"30 seconds\"\n" +
	"      - \"15 minutes\"\n" +
	"  - 'humidity'\n"

func TestDocument_Format(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "nested sensors",
			input: sensorInput,
			want: "deviceName := 'SensorX';\n" +
				"interval := 30;\n" +
				"sensors := list(list('30 seconds','15 minutes'),'humidity');\n",
		},
		{
			name:  "numbers and strings",
			input: "appName: \"MyApp\"\nmaxConnections: 10\n",
			want:  "appName := 'MyApp';\nmaxConnections := 10;\n",
		},
		{
			name:  "key order is preserved",
			input: "zeta: 1\nalpha: 2\nmid: 3\n",
			want:  "zeta := 1;\nalpha := 2;\nmid := 3;\n",
		},
		{
			name:  "floats",
			input: "ratio: 1.5\nwhole: 30.0\n",
			want:  "ratio := 1.5;\nwhole := 30.0;\n",
		},
		{
			name:  "empty and flow lists",
			input: "none: []\nsome: [1, 'two', [3]]\n",
			want:  "none := list();\nsome := list(1,'two',list(3));\n",
		},
		{
			name:  "top-level single key mapping",
			input: "wrapped:\n  items: [a, b]\n",
			want:  "wrapped := list('a','b');\n",
		},
		{
			name:  "anchors and aliases",
			input: "base: &b [1, 2]\ncopy: *b\n",
			want:  "base := list(1,2);\ncopy := list(1,2);\n",
		},
		{
			name:  "quote is not escaped",
			input: "phrase: \"it's\"\n",
			want:  "phrase := 'it's';\n",
		},
		{
			name:  "keys spelled like other scalars",
			input: "true: 1\nnull: 'x'\n",
			want:  "true := 1;\nnull := 'x';\n",
		},
		{
			name:  "numbers wider than 64 bits",
			input: "big: 100000000000000000000\nsmall: -9223372036854775809\nhuge: 1.0e400\n",
			want:  "big := 100000000000000000000;\nsmall := -9223372036854775809;\nhuge := inf;\n",
		},
		{
			name:  "empty mapping",
			input: "{}\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}

			var buf bytes.Buffer

			err = doc.Format(t.Context(), &buf)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Format() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestDocument_Format_InvalidName(t *testing.T) {
	doc, err := ParseString(t.Context(), "device1: 100\n")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	var buf bytes.Buffer

	err = doc.Format(t.Context(), &buf)
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Format() error = %v, want ErrInvalidName", err)
	}

	if !strings.Contains(err.Error(), "device1") {
		t.Errorf("error %q does not mention the offending name", err)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	if name, ok := e.Attr("name"); !ok || name.String() != "device1" {
		t.Errorf("name attribute = %v (%v), want device1", name, ok)
	}

	if buf.Len() != 0 {
		t.Errorf("Format() wrote %q, want nothing", buf.String())
	}
}

func TestDocument_Format_AbortsWithoutPartialOutput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"late invalid name", "good: 1\nalso: 'x'\nbad_name: 2\n", ErrInvalidName},
		{"late boolean", "good: 1\nflag: true\n", ErrInvalidValue},
		{"late null", "good: 1\nnothing: ~\n", ErrInvalidValue},
		{"late two-key mapping", "good: 1\nmap: {a: [1], b: [2]}\n", ErrInvalidValue},
		{"numeric key", "good: 1\n1: 2\n", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}

			var buf bytes.Buffer

			err = doc.Format(t.Context(), &buf)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Format() error = %v, want %v", err, tt.wantErr)
			}

			if buf.Len() != 0 {
				t.Errorf("Format() wrote %q, want nothing", buf.String())
			}
		})
	}
}

func TestEmit_FirstFailureWins(t *testing.T) {
	doc := NewDocument(
		NewEntry("ok", NewInt(1)),
		NewEntry("flag", NewBool(true)),
		NewEntry("bad1", NewInt(2)),
	)

	lines, err := Emit(t.Context(), doc)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Emit() error = %v, want ErrInvalidValue", err)
	}

	if errors.Is(err, ErrInvalidName) {
		t.Error("Emit() reported a later name error before the value error")
	}

	if lines != nil {
		t.Errorf("Emit() lines = %v, want nil", lines)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	if name, ok := e.Attr("name"); !ok || name.String() != "flag" {
		t.Errorf("name attribute = %v, want flag", name)
	}

	if path, ok := e.Attr("path"); !ok || path.String() != "flag" {
		t.Errorf("path attribute = %v, want flag", path)
	}
}

func TestEmit_Lines(t *testing.T) {
	doc := NewDocument(
		NewEntry("appName", NewString("MyApp")),
		NewEntry("maxConnections", NewInt(10)),
	)

	lines, err := Emit(t.Context(), doc)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := []Line{
		{Name: "appName", Literal: "'MyApp'"},
		{Name: "maxConnections", Literal: "10"},
	}

	if len(lines) != len(want) {
		t.Fatalf("Emit() returned %d lines, want %d", len(lines), len(want))
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}

	if s := lines[0].String(); s != "appName := 'MyApp';" {
		t.Errorf("Line.String() = %q", s)
	}
}

func TestEmit_NilDocument(t *testing.T) {
	lines, err := Emit(t.Context(), nil)
	if err != nil || lines != nil {
		t.Errorf("Emit(nil) = %v, %v; want nil, nil", lines, err)
	}
}

func TestCheck_ReportsEveryEntry(t *testing.T) {
	doc, err := ParseString(t.Context(),
		"good: 1\nbad1: 2\nflag: false\nlist: [a]\n")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	results := Check(t.Context(), doc)
	if len(results) != 4 {
		t.Fatalf("Check() returned %d results, want 4", len(results))
	}

	tests := []struct {
		name    string
		ok      bool
		wantErr error
		line    string
	}{
		{"good", true, nil, "good := 1;"},
		{"bad1", false, ErrInvalidName, ""},
		{"flag", false, ErrInvalidValue, ""},
		{"list", true, nil, "list := list('a');"},
	}

	for i, tt := range tests {
		r := results[i]

		if r.Name != tt.name {
			t.Errorf("result %d name = %q, want %q", i, r.Name, tt.name)
		}

		if r.OK() != tt.ok {
			t.Errorf("result %d OK() = %v, want %v", i, r.OK(), tt.ok)
		}

		if tt.wantErr != nil && !errors.Is(r.Err, tt.wantErr) {
			t.Errorf("result %d error = %v, want %v", i, r.Err, tt.wantErr)
		}

		if tt.ok && r.Line.String() != tt.line {
			t.Errorf("result %d line = %q, want %q", i, r.Line.String(), tt.line)
		}
	}
}

func TestDocument_Format_NumericKey(t *testing.T) {
	doc, err := ParseString(t.Context(), "1: 2\n")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	err = doc.Format(t.Context(), &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Format() error = %v, want ErrInvalidName", err)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	if name, ok := e.Attr("name"); !ok || name.String() != "1" {
		t.Errorf("name attribute = %v (%v), want 1", name, ok)
	}
}

func TestEmit_ScalarKeys(t *testing.T) {
	doc := NewDocument(
		&Entry{Key: NewBool(true), Value: NewInt(1)},
		&Entry{Key: NewNull(), Value: NewString("x")},
	)

	lines, err := Emit(t.Context(), doc)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if len(lines) != 2 || lines[0].String() != "true := 1;" ||
		lines[1].String() != "null := 'x';" {
		t.Errorf("Emit() = %v", lines)
	}
}

func TestEmit_CompositeKey(t *testing.T) {
	for _, key := range []*Value{NewSequence(), NewMapping(), {}, nil} {
		doc := NewDocument(&Entry{Key: key, Value: NewInt(1)})

		_, err := Emit(t.Context(), doc)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Emit(key %v) error = %v, want ErrInvalidName", key, err)
		}
	}
}
