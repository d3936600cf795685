package interpreter

import (
	"fmt"

	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// environment holds the bindings visible in one lexical scope, chained to its enclosing scope.
type environment struct {
	parent *environment
	values map[string]value
}

func newEnvironment(parent *environment) *environment {
	return &environment{parent: parent, values: make(map[string]value)}
}

// Child creates a new child environment of e.
func (e *environment) Child() *environment {
	return newEnvironment(e)
}

// Declare introduces name into this scope without a value, so that reads of it before its initialiser has run can
// be distinguished from reads of an undeclared name.
func (e *environment) Declare(name string) {
	e.values[name] = nil
}

// Define declares name in this scope and binds it to value in the same step, as with a function parameter or a
// variable declaration with an initialiser expression.
func (e *environment) Define(name string, v value) {
	e.values[name] = v
}

// Initialise binds a value to a name already introduced by Declare in this scope.
func (e *environment) Initialise(name string, v value) {
	e.values[name] = v
}

// Assign assigns a new value to name, which must already be declared in this environment.
// If name has not been declared then a runtime error is raised.
func (e *environment) Assign(tok token.Token, v value) {
	if _, ok := e.values[tok.Lexeme]; !ok {
		panic(lox.RuntimeErrorf(tok, "%s has not been declared", tok.Lexeme))
	}
	e.values[tok.Lexeme] = v
}

// Get returns the value bound to name in this environment.
// If name has not been declared, or has been declared but not yet initialised, then a runtime error is raised.
func (e *environment) Get(tok token.Token) value {
	v, ok := e.values[tok.Lexeme]
	if !ok {
		panic(lox.RuntimeErrorf(tok, "%s has not been declared", tok.Lexeme))
	}
	if v == nil {
		panic(lox.RuntimeErrorf(tok, "can't read %s before it has been initialised", tok.Lexeme))
	}
	return v
}

// AssignAt assigns value to name in the environment distance scopes up the parent chain.
func (e *environment) AssignAt(distance int, tok token.Token, v value) {
	e.ancestor(distance).Assign(tok, v)
}

// GetAt returns the value bound to name in the environment distance scopes up the parent chain.
func (e *environment) GetAt(distance int, tok token.Token) value {
	return e.ancestor(distance).Get(tok)
}

// GetByName looks up name directly, bypassing the resolver's depth mechanism. It's used for bindings the
// interpreter introduces itself, such as this and the synthesised closures for bound methods, which are never
// targets of a VariableExpr and so never get a resolved depth.
func (e *environment) GetByName(name string) value {
	v, ok := e.values[name]
	if !ok || v == nil {
		panic(fmt.Sprintf("interpreter: %s not bound in environment", name))
	}
	return v
}

func (e *environment) ancestor(n int) *environment {
	env := e
	for range n {
		env = env.parent
		if env == nil {
			panic(fmt.Sprintf("interpreter: ancestor %d is out of range", n))
		}
	}
	return env
}
