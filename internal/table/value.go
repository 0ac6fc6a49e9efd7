package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	// KindNull is an explicit empty value.
	KindNull Kind = iota
	// KindString holds text.
	KindString
	// KindNumber holds a float64.
	KindNumber
	// KindBool holds a boolean.
	KindBool
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Value is a tagged scalar cell value. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Num wraps a number.
func Num(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsEmpty reports whether v renders as an empty cell.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

// Number returns the numeric payload and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Boolean returns the boolean payload and whether v is a boolean.
func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String returns the display form used for rendering, searching and export.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and payload.
// NaN is equal to NaN so that drafts compare stably.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		if math.IsNaN(v.num) && math.IsNaN(o.num) {
			return true
		}
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// MarshalJSON encodes the value as its native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(formatNumber(v.num))
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = Str(x)
	case float64:
		*v = Num(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("table: value must be a scalar, got %T", raw)
	}
	return nil
}

// MarshalYAML encodes the value as its native YAML scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindNumber:
		return v.num, nil
	case KindBool:
		return v.b, nil
	default:
		return nil, nil
	}
}

// Infer converts CSV text into a typed value. Numbers and booleans are only
// recognised when their canonical form round-trips exactly, so "007" and
// "1e3" stay strings.
func Infer(text string) Value {
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		if !math.IsNaN(n) && !math.IsInf(n, 0) && formatNumber(n) == text {
			return Num(n)
		}
	}
	return Str(text)
}

// ParseValue converts user-entered text to a value, keeping the kind of hint
// when the text parses as that kind and falling back to a string otherwise.
func ParseValue(text string, hint Kind) Value {
	trimmed := strings.TrimSpace(text)
	switch hint {
	case KindNumber:
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Num(n)
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.ToLower(trimmed)); err == nil {
			return Bool(b)
		}
	}
	return Str(text)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
