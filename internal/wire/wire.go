// Package wire defines the generic value tree decoded from JSON text.
//
// The tree is untyped and order-preserving: arrays keep element order and
// objects keep the insertion order of their members, including duplicate
// keys. Numbers carry their decimal text verbatim so that re-serialization
// does not lose precision the host float type cannot represent.
package wire

import "strconv"

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name as it appears in wire text diagnostics.
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

// Value is a single node of a decoded wire document.
type Value struct {
	kind Kind
	b    bool
	text string // number text or string content, depending on kind
	arr  []*Value
	obj  []Member
}

// Member is one key/value entry of an object. Keys may repeat within an
// object; lookups resolve to the last occurrence while output order keeps
// the first.
type Member struct {
	Key   string
	Value *Value
}

// Null returns the null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Number returns a numeric value carrying its decimal text.
func Number(text string) *Value {
	return &Value{kind: KindNumber, text: text}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{kind: KindString, text: s}
}

// Array returns an array value over the given elements.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, arr: elems}
}

// Object returns an object value over the given members.
func Object(members ...Member) *Value {
	return &Value{kind: KindObject, obj: members}
}

// Kind reports which variant v holds. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// BoolVal returns the boolean content, or false for other kinds.
func (v *Value) BoolVal() bool {
	if v == nil || v.kind != KindBool {
		return false
	}
	return v.b
}

// Text returns the number text or string content, or "" for other kinds.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	return v.text
}

// Int64 reports the number as an int64 when its text parses exactly as one.
// This is how a number token declares itself integer rather than double.
func (v *Value) Int64() (int64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	n, err := strconv.ParseInt(v.text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 returns the number as a float64.
func (v *Value) Float64() (float64, error) {
	if v == nil || v.kind != KindNumber {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(v.text, 64)
}

// Elems returns the array elements, or nil for other kinds.
func (v *Value) Elems() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the object members in insertion order, or nil for other
// kinds.
func (v *Value) Members() []Member {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get returns the value at key, resolving duplicate keys to the last
// occurrence. The second result reports whether the key was present.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	for i := len(v.obj) - 1; i >= 0; i-- {
		if v.obj[i].Key == key {
			return v.obj[i].Value, true
		}
	}
	return nil, false
}

// Len returns the element count of an array or the member count of an
// object, and 0 for scalar kinds.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports deep structural equality. Numbers compare by text, so
// "1.0" and "1" are not equal even though they denote the same quantity.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.text == o.text
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
		if len(v.obj) != len(o.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != o.obj[i].Key || !v.obj[i].Value.Equal(o.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
