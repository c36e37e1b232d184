// Package value defines the runtime value model of the Lox virtual machine:
// a small, closed tagged union (Nil, Bool, Number, Object) and the handful
// of polymorphic operations (negation, arithmetic, comparison, equality)
// dispatched on that union.
//
// Unlike the teacher toolchain's open, interface-based value model (where
// any type may opt into HasBinary, HasUnary, Ordered, ...), spec.md §9 is
// explicit that Lox's value set is closed and small and must not be modeled
// with dynamic dispatch through a vtable. Value is instead a single struct
// carrying a type tag, with each operation implemented as one type switch.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value currently holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a Lox runtime value: the tagged union described in spec.md §3.
// The zero Value is Nil.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	object Object
}

// Nil is the Lox nil value.
var Nil = Value{kind: KindNil}

// Bool returns a Value wrapping b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a Value wrapping n.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// FromObject returns a Value wrapping an Object (a *ObjString or
// *chunk.Function).
func FromObject(o Object) Value { return Value{kind: KindObject, object: o} }

// IsNil reports whether v is Nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsBool reports whether v holds a Bool.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsNumber reports whether v holds a Number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsObject reports whether v holds an Object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the bool payload of v. The caller must have checked IsBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the float64 payload of v. The caller must have checked
// IsNumber.
func (v Value) AsNumber() float64 { return v.n }

// AsObject returns the Object payload of v. The caller must have checked
// IsObject.
func (v Value) AsObject() Object { return v.object }

// AsString returns the Object payload of v as *ObjString, or nil if v is not
// a string object.
func (v Value) AsString() *ObjString {
	if v.kind != KindObject {
		return nil
	}
	s, _ := v.object.(*ObjString)
	return s
}

// IsFalsey reports whether v is "falsey" per spec.md §3: Nil or Bool(false);
// everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.b
	default:
		return false
	}
}

// Equal reports structural equality per spec.md §3: equality is structural
// within a variant, and always false across variants.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObject:
		return objectsEqual(a.object, b.object)
	default:
		return false
	}
}

func objectsEqual(a, b Object) bool {
	// Every Object implementation in this VM (*ObjString, *chunk.Function) is
	// a pointer type, and string interning guarantees handle identity for
	// equal content. Comparing the interface values directly compares
	// dynamic type then pointer, which is exactly object identity.
	return a == b
}

// String renders v the way Print displays it (spec.md §4.4: nil, true/false,
// shortest round-trip numbers, unquoted strings).
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindObject:
		return v.object.String()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}

// TypeName returns a short description of v's runtime type.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObject:
		return v.object.TypeName()
	default:
		return "invalid"
	}
}

// Object is implemented by every heap-allocated value variant: ObjString and
// chunk.Function.
type Object interface {
	String() string
	TypeName() string
}
