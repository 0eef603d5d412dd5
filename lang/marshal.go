package lang

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for Document. Keys keep their source
// order.
func (doc *Document) MarshalJSON() ([]byte, error) {
	return NewMapping(doc.Entries...).MarshalJSON()
}

// MarshalJSON implements json.Marshaler for Value.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch v.Kind {
	case KindNumber:
		// nan and inf have no JSON spelling
		if json.Valid([]byte(v.Text)) {
			return []byte(v.Text), nil
		}

		return json.Marshal(v.Text)

	case KindString:
		return json.Marshal(v.Text)

	case KindBoolean:
		return []byte(v.Text), nil

	case KindSequence:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}

			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(b)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil

	case KindMapping:
		var buf bytes.Buffer

		buf.WriteByte('{')

		for i, entry := range v.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(entry.Name())
			if err != nil {
				return nil, err
			}

			buf.Write(key)
			buf.WriteByte(':')

			b, err := entry.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(b)
		}

		buf.WriteByte('}')

		return buf.Bytes(), nil

	default:
		return []byte("null"), nil
	}
}

// ToNative converts the document to an ordered native structure suitable for
// YAML encoding.
func (doc *Document) ToNative() yaml.MapSlice {
	result := make(yaml.MapSlice, 0, len(doc.Entries))

	for _, entry := range doc.Entries {
		result = append(result, yaml.MapItem{
			Key:   entry.Key.ToNative(),
			Value: entry.Value.ToNative(),
		})
	}

	return result
}

// ToNative converts a Value to its native Go type. Mappings become
// [yaml.MapSlice] so that key order survives encoding.
func (v *Value) ToNative() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindNumber:
		// Try parsing as int first
		if i, err := strconv.ParseInt(v.Text, 10, 64); err == nil {
			return i
		}

		if u, err := strconv.ParseUint(v.Text, 10, 64); err == nil {
			return u
		}

		// Wider integers lose precision here; nan and inf are accepted too.
		if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return f
		}

		return v.Text

	case KindString:
		return v.Text

	case KindBoolean:
		b, err := strconv.ParseBool(v.Text)
		if err != nil {
			return false
		}

		return b

	case KindSequence:
		result := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			result = append(result, item.ToNative())
		}

		return result

	case KindMapping:
		result := make(yaml.MapSlice, 0, len(v.Entries))
		for _, entry := range v.Entries {
			result = append(result, yaml.MapItem{
				Key:   entry.Key.ToNative(),
				Value: entry.Value.ToNative(),
			})
		}

		return result

	default:
		return nil
	}
}
