package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/ardnew/cfgconv/log"
)

// ParseString parses a YAML document from a string.
func ParseString(ctx context.Context, input string) (*Document, error) {
	return Parse(ctx, []byte(input))
}

// ParseReader reads r to the end and parses the YAML document it contains.
func ParseReader(ctx context.Context, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, data)
}

// Parse decodes the first YAML document in data into a [Document].
//
// The document root must be a mapping. Mappings at every depth keep the order
// in which their keys appear in the source, and mapping keys are taken as
// their source text.
func Parse(ctx context.Context, data []byte) (*Document, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, ErrParseYAML.Wrap(err)
	}

	if len(file.Docs) == 0 || file.Docs[0] == nil || file.Docs[0].Body == nil {
		return nil, ErrNotMapping.With(slog.String("root", "empty"))
	}

	b := builder{anchors: make(map[string]*Value)}

	val, err := b.value(file.Docs[0].Body, "")
	if err != nil {
		return nil, err
	}

	if val.Kind != KindMapping {
		return nil, ErrNotMapping.With(slog.String("root", val.Kind.String()))
	}

	log.DebugContext(ctx, "parsed document",
		slog.Int("bytes", len(data)),
		slog.Int("entries", len(val.Entries)),
	)

	return &Document{Entries: val.Entries}, nil
}

var errUnknownAlias = errors.New("alias refers to no anchor")

// builder maps goccy syntax nodes onto [Value], resolving anchors and aliases
// in document order.
type builder struct {
	// anchors holds nil while an anchor's own node is being built.
	anchors map[string]*Value
}

func (b *builder) value(node ast.Node, path string) (*Value, error) {
	switch n := node.(type) {
	case nil, *ast.NullNode, *ast.CommentGroupNode:
		return NewNull(), nil

	case *ast.BoolNode:
		return NewBool(n.Value), nil

	case *ast.IntegerNode:
		switch i := n.Value.(type) {
		case int64:
			return NewInt(i), nil
		case uint64:
			return NewUint(i), nil
		}

		return b.scalar(n.GetToken().Value, path)

	case *ast.FloatNode:
		return NewFloat(n.Value), nil

	case *ast.InfinityNode:
		return NewFloat(n.Value), nil

	case *ast.NanNode:
		return NewFloat(math.NaN()), nil

	case *ast.StringNode:
		if n.Token != nil && n.Token.Type == token.StringType {
			if v, ok := wideNumber(n.Value); ok {
				return v, nil
			}
		}

		return NewString(n.Value), nil

	case *ast.LiteralNode:
		return NewString(n.Value.Value), nil

	case *ast.TagNode:
		return b.tagged(n, path)

	case *ast.AnchorNode:
		name := n.Name.GetToken().Value
		b.anchors[name] = nil

		v, err := b.value(n.Value, path)
		if err != nil {
			delete(b.anchors, name)

			return nil, err
		}

		b.anchors[name] = v

		return v, nil

	case *ast.AliasNode:
		name := n.Value.GetToken().Value

		v, ok := b.anchors[name]
		if !ok {
			return nil, ErrParseYAML.
				With(slog.String("alias", name)).
				Wrap(errUnknownAlias)
		}

		if v == nil {
			// alias inside its own anchor
			return NewNull(), nil
		}

		return v, nil

	case *ast.MappingKeyNode:
		return b.value(n.Value, path)

	case *ast.MappingValueNode:
		return b.mapping([]*ast.MappingValueNode{n}, path)

	case *ast.MappingNode:
		return b.mapping(n.Values, path)

	case *ast.SequenceNode:
		items := make([]*Value, 0, len(n.Values))

		for i, item := range n.Values {
			v, err := b.value(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return NewSequence(items...), nil

	default:
		if path == "" {
			path = "."
		}

		return nil, ErrInvalidValue.
			With(
				slog.String("path", path),
				slog.String("node", node.Type().String()),
			).
			Wrap(errUnsupportedKind)
	}
}

func (b *builder) mapping(
	values []*ast.MappingValueNode,
	path string,
) (*Value, error) {
	explicit := make(map[string]bool, len(values))

	for _, mv := range values {
		if !mv.Key.IsMergeKey() {
			explicit[b.keyText(mv.Key)] = true
		}
	}

	entries := make([]*Entry, 0, len(values))

	for _, mv := range values {
		if mv.Key.IsMergeKey() {
			merged, err := b.merge(mv.Value, path)
			if err != nil {
				return nil, err
			}

			for _, e := range merged {
				if explicit[e.Name()] || slices.ContainsFunc(entries,
					func(x *Entry) bool { return x.Name() == e.Name() }) {
					continue
				}

				entries = append(entries, e)
			}

			continue
		}

		// Anchors on keys are registered before the key text is read.
		if _, err := b.value(mv.Key, path); err != nil {
			return nil, err
		}

		name := b.keyText(mv.Key)

		v, err := b.value(mv.Value, joinPath(path, name))
		if err != nil {
			return nil, err
		}

		entries = append(entries, &Entry{Key: NewString(name), Value: v})
	}

	return NewMapping(entries...), nil
}

// merge returns the entries contributed by a "<<" key, which names a mapping
// or a sequence of mappings.
func (b *builder) merge(node ast.Node, path string) ([]*Entry, error) {
	v, err := b.value(node, path)
	if err != nil {
		return nil, err
	}

	switch v.Kind {
	case KindMapping:
		return v.Entries, nil

	case KindSequence:
		var entries []*Entry

		for _, item := range v.Items {
			if item.Kind != KindMapping {
				return nil, errMerge(path, item.Kind)
			}

			entries = append(entries, item.Entries...)
		}

		return entries, nil

	default:
		return nil, errMerge(path, v.Kind)
	}
}

func errMerge(path string, kind Kind) *Error {
	if path == "" {
		path = "."
	}

	return ErrParseYAML.With(
		slog.String("path", path),
		slog.String("merge", kind.String()),
	)
}

// tagged applies the core schema tags. Other tags are ignored.
func (b *builder) tagged(n *ast.TagNode, path string) (*Value, error) {
	switch token.ReservedTagKeyword(n.Start.Value) {
	case token.StringTag:
		if n.Value == nil {
			return NewString(""), nil
		}

		v, err := b.value(n.Value, path)
		if err != nil {
			return nil, err
		}

		if v.Kind == KindSequence || v.Kind == KindMapping {
			return v, nil
		}

		return NewString(scalarText(n.Value)), nil

	case token.IntegerTag:
		return b.scalar(scalarText(n.Value), path)

	case token.FloatTag:
		text := scalarText(n.Value)

		f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, ErrParseYAML.
				With(slog.String("path", path), slog.String("float", text)).
				Wrap(err)
		}

		return NewFloat(f), nil

	case token.NullTag:
		return NewNull(), nil

	case token.BooleanTag:
		switch text := strings.ToLower(scalarText(n.Value)); text {
		case "yes", "on":
			return NewBool(true), nil
		case "no", "off":
			return NewBool(false), nil
		default:
			t, err := strconv.ParseBool(text)
			if err != nil {
				return nil, ErrParseYAML.
					With(slog.String("path", path), slog.String("bool", text)).
					Wrap(err)
			}

			return NewBool(t), nil
		}

	default:
		return b.value(n.Value, path)
	}
}

// scalar parses text explicitly tagged as an integer.
func (b *builder) scalar(text string, path string) (*Value, error) {
	if v, ok := wideNumber(text); ok {
		return v, nil
	}

	if n := token.ToNumber(text); n != nil {
		switch t := n.Value.(type) {
		case int64:
			return NewInt(t), nil
		case uint64:
			return NewUint(t), nil
		case float64:
			return NewFloat(t), nil
		}
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		if path == "" {
			path = "."
		}

		return nil, ErrParseYAML.
			With(slog.String("path", path), slog.String("number", text)).
			Wrap(err)
	}

	return NewFloat(f), nil
}

// wideNumber recognizes the plain scalars that YAML resolves as numbers but
// that overflow 64 bits, using the same prefixes and separators as the YAML
// scanner. Integers keep every digit; floats become infinite.
func wideNumber(text string) (*Value, bool) {
	if text == "" || strings.HasPrefix(text, "_") || token.ToNumber(text) != nil {
		return nil, false
	}

	dots := strings.Count(text, ".")
	if dots > 1 {
		return nil, false
	}

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
	}

	digits := strings.ReplaceAll(
		strings.TrimPrefix(strings.TrimPrefix(text, "+"), "-"), "_", "",
	)

	base := 10

	switch {
	case strings.HasPrefix(digits, "0x"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0o"):
		base, digits = 8, digits[2:]
	case strings.HasPrefix(digits, "0b"):
		base, digits = 2, digits[2:]
	case strings.HasPrefix(digits, "0") && len(digits) > 1 && dots == 0:
		base = 8
	case dots == 1:
		f, err := strconv.ParseFloat(sign+digits, 64)
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return NewFloat(f), true
		}

		return nil, false
	}

	var err error
	if sign == "" {
		_, err = strconv.ParseUint(digits, base, 64)
	} else {
		_, err = strconv.ParseInt(sign+digits, base, 64)
	}

	if !errors.Is(err, strconv.ErrRange) {
		return nil, false
	}

	var n big.Int
	if _, ok := n.SetString(sign+digits, base); !ok {
		return nil, false
	}

	return &Value{Kind: KindNumber, Text: n.String()}, true
}

// keyText returns the source text of a mapping key. An alias key takes the
// text of the scalar it refers to.
func (b *builder) keyText(key ast.MapKeyNode) string {
	var node ast.Node = key

	for {
		switch n := node.(type) {
		case *ast.MappingKeyNode:
			node = n.Value
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		case *ast.AliasNode:
			v := b.anchors[n.Value.GetToken().Value]
			if v == nil || v.Kind == KindSequence || v.Kind == KindMapping {
				return n.String()
			}

			return v.Text
		default:
			return scalarText(node)
		}
	}
}

// scalarText returns the unquoted text of a scalar node, or the printed form
// of any other node.
func scalarText(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *ast.StringNode:
		return n.Value
	case *ast.LiteralNode:
		return n.Value.Value
	case ast.ScalarNode:
		if tk := n.GetToken(); tk != nil {
			return tk.Value
		}
	}

	return node.String()
}
