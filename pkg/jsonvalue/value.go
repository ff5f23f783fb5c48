package jsonvalue

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind enumerates the JSON value variants.
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
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged union over the JSON variants. The zero value is null.
type Value struct {
	kind   Kind
	text   string
	items  []Value
	fields *orderedmap.OrderedMap[string, Value]
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, text: "true"}
	}
	return Value{kind: KindBool, text: "false"}
}

// Number wraps a numeric literal. The literal is kept verbatim since the
// engine does not distinguish integers from floats.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// String wraps a decoded string.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array builds an array value from the supplied items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value(nil), items...)}
}

// Object builds an object value. Repeated keys keep the position of their
// first occurrence and the value of their last.
func Object(members ...Member) Value {
	fields := orderedmap.New[string, Value](len(members))
	for _, m := range members {
		fields.Set(m.Key, m.Value)
	}
	return Value{kind: KindObject, fields: fields}
}

// Kind reports the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsArray() bool  { return v.kind == KindArray }

// Text returns the textual form of a scalar: the decoded string, the numeric
// literal, "true"/"false" for booleans. Containers and null return "".
func (v Value) Text() string {
	return v.text
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		if v.fields == nil {
			return 0
		}
		return v.fields.Len()
	default:
		return 0
	}
}

// Index returns the i-th array item, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Null()
	}
	return v.items[i]
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject || v.fields == nil {
		return Value{}, false
	}
	return v.fields.Get(key)
}

// Members returns the object members in document order.
func (v Value) Members() []Member {
	if v.kind != KindObject || v.fields == nil {
		return nil
	}
	out := make([]Member, 0, v.fields.Len())
	for pair := v.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Member{Key: pair.Key, Value: pair.Value})
	}
	return out
}
