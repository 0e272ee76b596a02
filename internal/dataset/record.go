package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Header is the ordered list of field names read from the first line.
type Header []string

// Has reports whether name is one of the header fields.
func (h Header) Has(name string) bool { return h.Index(name) >= 0 }

// Index returns the position of name, or -1.
func (h Header) Index(name string) int {
	for i, f := range h {
		if f == name {
			return i
		}
	}
	return -1
}

// Record is one dataset row as an ordered field→value mapping.
// Records are immutable; With returns a modified copy.
type Record struct {
	fields []string
	values []Value
}

// NewRecord zips fields with values. Both slices are copied.
func NewRecord(fields []string, values []Value) Record {
	n := len(fields)
	if len(values) < n {
		n = len(values)
	}
	f := make([]string, n)
	v := make([]Value, n)
	copy(f, fields)
	copy(v, values)
	return Record{fields: f, values: v}
}

// Get returns the value stored under field; Missing and false when absent.
func (r Record) Get(field string) (Value, bool) {
	for i, f := range r.fields {
		if f == field {
			return r.values[i], true
		}
	}
	return Missing(), false
}

// Value is Get without the presence flag.
func (r Record) Value(field string) Value {
	v, _ := r.Get(field)
	return v
}

// Fields returns the field names in order. The slice is a copy.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r Record) Len() int { return len(r.fields) }

// With returns a copy of r with field set to v, appended when absent.
// The receiver is left untouched.
func (r Record) With(field string, v Value) Record {
	fields := make([]string, len(r.fields), len(r.fields)+1)
	values := make([]Value, len(r.values), len(r.values)+1)
	copy(fields, r.fields)
	copy(values, r.values)
	for i, f := range fields {
		if f == field {
			values[i] = v
			return Record{fields: fields, values: values}
		}
	}
	return Record{fields: append(fields, field), values: append(values, v)}
}

// String renders the record as {field: value, ...}.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		if r.values[i].IsMissing() {
			b.WriteString("N/A")
		} else {
			b.WriteString(r.values[i].String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
