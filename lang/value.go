package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of [Value] is populated.
type Kind int

const (
	// KindInvalid is the zero Kind. No well-formed Value has it.
	KindInvalid Kind = iota // invalid

	// KindNumber is an integer or floating-point scalar.
	KindNumber // number

	// KindString is a text scalar.
	KindString // string

	// KindSequence is an ordered list of values.
	KindSequence // sequence

	// KindMapping is an ordered list of key/value entries.
	KindMapping // mapping

	// KindBoolean is a boolean scalar. It can be parsed but not converted.
	KindBoolean // boolean

	// KindNull is an explicit or implied null. It can be parsed but not
	// converted.
	KindNull // null
)

// Value is a tagged union over the shapes a parsed document may contain.
// Exactly the fields selected by Kind are meaningful:
//
//   - KindNumber, KindString, KindBoolean, KindNull: Text
//   - KindSequence: Items
//   - KindMapping: Entries
type Value struct {
	Kind Kind

	// Text holds the canonical decimal form of a number, the raw contents of
	// a string, or the literal spelling of a boolean or null.
	Text string

	Items   []*Value
	Entries []*Entry
}

// Entry is one key/value pair of a mapping, kept in source order.
type Entry struct {
	Key   *Value
	Value *Value
}

// Name returns the text of the entry's key.
func (e *Entry) Name() string {
	if e == nil || e.Key == nil {
		return ""
	}

	return e.Key.Text
}

func (v *Value) isScalar() bool {
	switch v.Kind {
	case KindNumber, KindString, KindBoolean, KindNull:
		return true
	default:
		return false
	}
}

// NewInt creates a number value from an integer.
func NewInt(n int64) *Value {
	return &Value{Kind: KindNumber, Text: strconv.FormatInt(n, 10)}
}

// NewUint creates a number value from an unsigned integer.
func NewUint(n uint64) *Value {
	return &Value{Kind: KindNumber, Text: strconv.FormatUint(n, 10)}
}

// NewFloat creates a number value from a floating-point number.
// See [FormatFloat] for the canonical text form.
func NewFloat(f float64) *Value {
	return &Value{Kind: KindNumber, Text: FormatFloat(f)}
}

// NewString creates a string value holding s verbatim.
func NewString(s string) *Value {
	return &Value{Kind: KindString, Text: s}
}

// NewBool creates a boolean value.
func NewBool(b bool) *Value {
	return &Value{Kind: KindBoolean, Text: strconv.FormatBool(b)}
}

// NewNull creates a null value.
func NewNull() *Value {
	return &Value{Kind: KindNull, Text: "null"}
}

// NewSequence creates a sequence value from the given items.
func NewSequence(items ...*Value) *Value {
	return &Value{Kind: KindSequence, Items: items}
}

// NewMapping creates a mapping value from the given entries.
func NewMapping(entries ...*Entry) *Value {
	return &Value{Kind: KindMapping, Entries: entries}
}

// NewEntry creates a mapping entry with a string key.
func NewEntry(name string, value *Value) *Entry {
	return &Entry{Key: NewString(name), Value: value}
}

// FormatFloat returns the shortest decimal text that round-trips to f.
//
// Numbers whose decimal exponent lies in [-4, 16) use fixed notation with at
// least one fractional digit (30.0, 0.0001). All others use scientific
// notation with a signed, two-digit minimum exponent (1e+16, 1.5e-07).
// Non-finite values are spelled nan, inf and -inf.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(sci, "e")

	x, err := strconv.Atoi(exp)
	if err != nil {
		return sci
	}

	if x < -4 || x >= 16 {
		sign := byte('+')
		if x < 0 {
			sign, x = '-', -x
		}

		digits := strconv.Itoa(x)
		if len(digits) < 2 {
			digits = "0" + digits
		}

		return mant + "e" + string(sign) + digits
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}

	return fixed
}
