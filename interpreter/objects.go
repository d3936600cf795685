package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// value is the interface implemented by every runtime value that a Lox program can manipulate: numbers, strings,
// booleans, nil, arrays, functions, classes, instances, and native callables.
type value interface {
	fmt.Stringer
	Type() string
}

// truther is implemented by values whose truthiness differs from the default (everything but nil and false is
// truthy).
type truther interface {
	Truthy() bool
}

func isTruthy(v value) bool {
	if t, ok := v.(truther); ok {
		return t.Truthy()
	}
	return true
}

// unaryOperand is implemented by values that support a unary operator other than !, which applies uniformly to
// every value.
type unaryOperand interface {
	UnaryOp(op token.Token) value
}

// binaryOperand is implemented by values that support binary operators other than == and !=, which apply uniformly
// to every value via equals.
type binaryOperand interface {
	BinaryOp(op token.Token, right value) value
}

// indexable is implemented by values that support the [] operator for reading.
type indexable interface {
	Index(bracket token.Token, index value) value
}

// indexSettable is implemented by values that support the [] operator for indexed assignment.
type indexSettable interface {
	SetIndex(bracket token.Token, index value, v value) value
}

// propertyAccessible is implemented by values that support the . operator for reading a property.
type propertyAccessible interface {
	Property(interp *Interpreter, name token.Token) value
}

// propertySettable is implemented by values that support the . operator for assigning a property.
type propertySettable interface {
	SetProperty(interp *Interpreter, name token.Token, v value) value
}

func equals(a, b value) bool {
	switch a := a.(type) {
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	case boolValue:
		bb, ok := b.(boolValue)
		return ok && a == bb
	case numberValue:
		bb, ok := b.(numberValue)
		return ok && a == bb
	case stringValue:
		bb, ok := b.(stringValue)
		return ok && a == bb
	default:
		return a == b // reference equality for arrays, functions, classes, and instances
	}
}

func newInvalidUnaryOpError(op token.Token, right value) error {
	return lox.RuntimeErrorf(op, "unsupported operand type for %s: %s", op.Lexeme, right.Type())
}

func newInvalidBinaryOpError(op token.Token, left, right value) error {
	return lox.RuntimeErrorf(op, "unsupported operand types for %s: %s and %s", op.Lexeme, left.Type(), right.Type())
}

// nilValue is the Lox nil value.
type nilValue struct{}

func (nilValue) String() string { return "nil" }
func (nilValue) Type() string   { return "nil" }
func (nilValue) Truthy() bool   { return false }

// boolValue is a Lox boolean.
type boolValue bool

func (b boolValue) String() string { return strconv.FormatBool(bool(b)) }
func (b boolValue) Type() string   { return "bool" }
func (b boolValue) Truthy() bool   { return bool(b) }

// numberValue is a Lox number, stored as a float64 regardless of whether it has a fractional part.
type numberValue float64

func (n numberValue) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n numberValue) Type() string { return "number" }

func (n numberValue) UnaryOp(op token.Token) value {
	if op.Type == token.Minus {
		return -n
	}
	panic(newInvalidUnaryOpError(op, n))
}

// BinaryOp implements the arithmetic and comparison operators, all of which require a numberValue on both sides.
// Plus is handled one level up, in the interpreter, since it needs to fall back to string concatenation.
func (n numberValue) BinaryOp(op token.Token, right value) value {
	r, ok := right.(numberValue)
	if !ok {
		panic(newInvalidBinaryOpError(op, n, right))
	}
	switch op.Type {
	case token.Minus:
		return n - r
	case token.Asterisk:
		return n * r
	case token.Slash:
		if r == 0 {
			panic(lox.RuntimeErrorf(op, "division by zero"))
		}
		return n / r
	case token.Less:
		return boolValue(n < r)
	case token.LessEqual:
		return boolValue(n <= r)
	case token.Greater:
		return boolValue(n > r)
	case token.GreaterEqual:
		return boolValue(n >= r)
	default:
		panic(newInvalidBinaryOpError(op, n, right))
	}
}

// stringValue is a Lox string. It has no BinaryOp of its own: + is handled by the interpreter, which falls back to
// stringifying and concatenating when either operand is a string, and every other binary operator requires two
// numbers.
type stringValue string

func (s stringValue) String() string { return string(s) }
func (s stringValue) Type() string   { return "string" }

func (s stringValue) Index(bracket token.Token, index value) value {
	n, ok := index.(numberValue)
	if !ok {
		panic(lox.RuntimeErrorf(bracket, "index must be a number"))
	}
	i := int(n)
	if i < 0 || i >= len(s) {
		panic(lox.ExceptionErrorf("invalid index"))
	}
	return stringValue(s[i])
}

// arrayValue is a Lox array. It's a pointer to a slice so that indexed assignment, which must mutate the array in
// place, is visible through every reference to it.
type arrayValue []value

func (a *arrayValue) String() string {
	elems := make([]string, len(*a))
	for i, e := range *a {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ",") + "]"
}

func (a *arrayValue) Type() string { return "array" }

// arrayValue has no BinaryOp: arrays support only indexing, not arithmetic.

func (a *arrayValue) Index(bracket token.Token, index value) value {
	i := a.resolveIndex(bracket, index)
	return (*a)[i]
}

func (a *arrayValue) SetIndex(bracket token.Token, index value, v value) value {
	i := a.resolveIndex(bracket, index)
	(*a)[i] = v
	return v
}

func (a *arrayValue) resolveIndex(bracket token.Token, index value) int {
	n, ok := index.(numberValue)
	if !ok {
		panic(lox.RuntimeErrorf(bracket, "index must be a number"))
	}
	i := int(n)
	if i < 0 || i >= len(*a) {
		panic(lox.ExceptionErrorf("invalid index"))
	}
	return i
}
