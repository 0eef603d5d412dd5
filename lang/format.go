package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes the document as JSON to the writer.
func (doc *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer

		err = json.Indent(&buf, jsonData, "", strings.Repeat(" ", indent))
		if err != nil {
			return err
		}

		jsonData = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document as YAML to the writer.
func (doc *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, doc.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
