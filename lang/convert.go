package lang

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// NamePattern is the rule every top-level name must satisfy.
const NamePattern = `^[A-Za-z]+$`

var namePattern = regexp.MustCompile(NamePattern)

// IsValidName reports whether the whole of name is one or more ASCII letters.
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

var (
	errUnsupportedKind    = errors.New("only numbers, strings and lists are supported")
	errUnsupportedMapping = errors.New(
		"a mapping is only allowed as a single key holding a list",
	)
)

// Convert renders v as a literal of the target language:
//
//	number    30             → 30
//	string    SensorX        → 'SensorX'
//	sequence  [a, 1]         → list('a',1)
//	mapping   {time: [a, b]} → list('a','b')
//
// A mapping converts only when it has exactly one entry whose value is a
// sequence; the key is discarded. Every other shape, including booleans and
// nulls, fails with an error matching [ErrInvalidValue].
//
// Strings are not escaped: a string containing a single quote produces a
// literal the target language cannot read back.
func Convert(v *Value) (string, error) {
	var sb strings.Builder

	err := convert(&sb, v, "")
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

func convert(sb *strings.Builder, v *Value, path string) error {
	if v == nil {
		return invalidValue(path, KindInvalid, errUnsupportedKind)
	}

	switch v.Kind {
	case KindNumber:
		sb.WriteString(v.Text)

		return nil

	case KindString:
		sb.WriteByte('\'')
		sb.WriteString(v.Text)
		sb.WriteByte('\'')

		return nil

	case KindSequence:
		sb.WriteString("list(")

		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte(',')
			}

			err := convert(sb, item, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return err
			}
		}

		sb.WriteByte(')')

		return nil

	case KindMapping:
		if len(v.Entries) != 1 || v.Entries[0].Value == nil ||
			v.Entries[0].Value.Kind != KindSequence {
			return invalidValue(path, v.Kind, errUnsupportedMapping).
				With(slog.Int("keys", len(v.Entries)))
		}

		entry := v.Entries[0]

		return convert(sb, entry.Value, joinPath(path, entry.Name()))

	case KindInvalid, KindBoolean, KindNull:
		return invalidValue(path, v.Kind, errUnsupportedKind)

	default:
		return invalidValue(path, v.Kind, errUnsupportedKind)
	}
}

func invalidValue(path string, kind Kind, cause error) *Error {
	if path == "" {
		path = "."
	}

	return ErrInvalidValue.
		With(
			slog.String("path", path),
			slog.String("kind", kind.String()),
		).
		Wrap(cause)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
