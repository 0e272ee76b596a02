package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags the runtime type of a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "missing"
	}
}

// Value is a typed cell. The kind is fixed when the dataset is loaded so
// consumers switch on Kind instead of re-inspecting raw text.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func Missing() Value { return Value{} }

func Int(v int64) Value { return Value{kind: KindInt, i: v} }

func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

func String(v string) Value { return Value{kind: KindString, s: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Number returns the numeric payload for Int and Float values.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Text returns the payload of a String value.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Equal reports equality of payloads. Numbers compare by value across
// Int and Float (Int(1) equals Float(1)); a string never equals a number.
func (v Value) Equal(o Value) bool {
	if vn, ok := v.Number(); ok {
		on, ok := o.Number()
		return ok && vn == on
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	default:
		return true
	}
}

// IsEmpty reports values that carry no information for category work:
// missing values and blank strings.
func (v Value) IsEmpty() bool {
	return v.kind == KindMissing || (v.kind == KindString && v.s == "")
}

// String renders the value the way it is written to flat exports.
// Integral floats keep a ".0" suffix so re-parsing yields a Float again.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !math.IsInf(v.f, 0) && !math.IsNaN(v.f) && !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Less orders values for deterministic listings: numbers before strings,
// numbers by value, strings lexically. Missing sorts first.
func (v Value) Less(o Value) bool {
	if rv, ro := v.rank(), o.rank(); rv != ro {
		return rv < ro
	}
	if vn, ok := v.Number(); ok {
		on, _ := o.Number()
		return vn < on
	}
	return v.s < o.s
}

func (v Value) rank() int {
	switch v.kind {
	case KindInt, KindFloat:
		return 1
	case KindString:
		return 2
	default:
		return 0
	}
}

// MarshalJSON encodes the payload as a plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.f, 'f', -1, 64)), nil
	case KindString:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the payload as a plain scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		return v.f, nil
	case KindString:
		return v.s, nil
	default:
		return nil, nil
	}
}
