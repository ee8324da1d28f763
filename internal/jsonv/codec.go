package jsonv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a document is not well-formed JSON.
var ErrInvalidJSON = errors.New("invalid json document")

// Parse decodes a JSON document, keeping object members in source order.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// MustParse is Parse for literals in tests and examples. It panics on error.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonv: %v: %q", err, s))
	}
	return v
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	}

	if r.IsArray() {
		elems := []Value{}
		r.ForEach(func(_, v gjson.Result) bool {
			elems = append(elems, fromResult(v))
			return true
		})
		return Array(elems...)
	}

	o := NewObject()
	r.ForEach(func(k, v gjson.Result) bool {
		o.set(k.Str, fromResult(v))
		return true
	})
	return ObjectValue(o)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler, writing object members in order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.s)
	case KindString:
		return writeString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.obj.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsonv: cannot encode %s", v.kind)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
