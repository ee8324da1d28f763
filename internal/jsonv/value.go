// Package jsonv models a JSON document as a closed sum type whose objects
// remember the insertion order of their keys.
//
// Positional selectors (wildcards, InnerNode) depend on that order, so it is
// part of the representation rather than an accident of map iteration.
package jsonv

import (
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string payload, or the literal text of a number
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a JSON number from its literal text. The text is not
// validated; use Int or Float for values computed in Go.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Int returns a JSON number holding n.
func Int(n int) Value { return Number(strconv.Itoa(n)) }

// Float returns a JSON number holding f.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// Array returns a JSON array of the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// ObjectValue wraps o as a Value. A nil object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsArray() bool   { return v.kind == KindArray }
func (v Value) IsObject() bool  { return v.kind == KindObject }
func (v Value) IsScalar() bool  { return v.kind != KindArray && v.kind != KindObject }
func (v Value) Bool() bool      { return v.b }
func (v Value) Str() string     { return v.s }
func (v Value) Object() *Object { return v.obj }

// Literal returns the source text of a number, or "" for other kinds.
func (v Value) Literal() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.s
}

// Float64 returns the numeric value of a number, or 0 when it is not one.
func (v Value) Float64() float64 {
	if v.kind != KindNumber {
		return 0
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Len returns the number of elements or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Index returns the i-th array element.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Null(), false
	}
	return v.arr[i], true
}

// Elems returns a copy of the array elements.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	return v.obj.Get(key)
}

// Equal reports whether two values are structurally equal. Object member
// order is significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.s == o.s || v.Float64() == o.Float64()
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(o.obj)
	}
	return false
}

// Interface converts v to plain Go values: nil, bool, float64, string,
// []any or map[string]any. Member order is lost for objects.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.Float64()
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, m := range v.obj.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// Text renders a value for a table cell: strings unquoted, numbers as
// written in the source, containers as compact JSON and null as "null".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.s
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// String implements fmt.Stringer with the JSON encoding of v.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}
