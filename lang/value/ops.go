package value

import "errors"

// Sentinel runtime-operation errors, surfaced by the VM with the source line
// of the failing instruction (spec.md §4.4 "Runtime error reporting").
var (
	ErrOperandMustBeNumber       = errors.New("Operand must be a number.")
	ErrOperandsMustBeNumbers     = errors.New("Operands must be numbers.")
	ErrOperandsMustBeNumOrString = errors.New("Operands must be two numbers or two strings.")
	ErrDivideByZero              = errors.New("Illegal divide by zero.")
)

// Negate implements unary '-'. Numeric only per spec.md §4.4.
func Negate(v Value) (Value, error) {
	if !v.IsNumber() {
		return Value{}, ErrOperandMustBeNumber
	}
	return Number(-v.AsNumber()), nil
}

// Not implements unary '!': pushes the falsey-ness of v.
func Not(v Value) Value {
	return Bool(v.IsFalsey())
}

// Add implements binary '+': numeric sum, or string concatenation when both
// operands are strings (spec.md §4.4). newString is called to build and
// intern the concatenation result, keeping this package free of any
// knowledge of the VM's intern table.
func Add(a, b Value, newString func(string) Value) (Value, error) {
	if a.IsNumber() && b.IsNumber() {
		return Number(a.AsNumber() + b.AsNumber()), nil
	}
	as, aok := a.AsString(), a.IsObject()
	bs, bok := b.AsString(), b.IsObject()
	if aok && bok && as != nil && bs != nil {
		return newString(as.Value + bs.Value), nil
	}
	return Value{}, ErrOperandsMustBeNumOrString
}

// Subtract implements binary '-'. Numeric only.
func Subtract(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, ErrOperandsMustBeNumbers
	}
	return Number(a.AsNumber() - b.AsNumber()), nil
}

// Multiply implements binary '*'. Numeric only.
func Multiply(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, ErrOperandsMustBeNumbers
	}
	return Number(a.AsNumber() * b.AsNumber()), nil
}

// Divide implements binary '/'. Numeric only; division by zero is a runtime
// error rather than an IEEE infinity, a deliberate choice documented in
// spec.md §4.4 and §9.
func Divide(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, ErrOperandsMustBeNumbers
	}
	if b.AsNumber() == 0 {
		return Value{}, ErrDivideByZero
	}
	return Number(a.AsNumber() / b.AsNumber()), nil
}

// Less and Greater implement the numeric comparison operators. Both operands
// must be numbers.
func Less(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, ErrOperandsMustBeNumbers
	}
	return Bool(a.AsNumber() < b.AsNumber()), nil
}

func Greater(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, ErrOperandsMustBeNumbers
	}
	return Bool(a.AsNumber() > b.AsNumber()), nil
}
