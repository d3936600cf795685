package interpreter

import (
	"fmt"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// anyArity is returned by Callable.Arity to mean "accepts any number of arguments", used by the noop native so that
// it can stand in for any method that multiple-inheritance resolution fails to find.
const anyArity = -1

// callable is implemented by every value that can appear on the left of a call expression: user-defined functions
// and lambdas, classes (calling a class constructs an instance), and native functions.
type callable interface {
	value
	// Arity returns the number of arguments the callable accepts, or anyArity if it accepts any number.
	Arity() int
	Call(interp *Interpreter, callTok token.Token, args []value) value
}

// loxFunction is a user-defined function, method, getter, or lambda. Its identity is the combination of its
// declaration and the environment it closes over: binding the same declaration to a different instance via Bind
// produces a distinct loxFunction sharing the same declaration.
type loxFunction struct {
	name          string
	decl          *ast.FunctionStmt
	closure       *environment
	isInitialiser bool
	isGetter      bool
	isClassMethod bool
}

func newFunction(decl *ast.FunctionStmt, closure *environment, isInitialiser bool) *loxFunction {
	name := "-lambda-"
	if decl.Name != nil {
		name = decl.Name.Lexeme
	}
	return &loxFunction{
		name:          name,
		decl:          decl,
		closure:       closure,
		isInitialiser: isInitialiser,
		isGetter:      decl.IsGetter,
		isClassMethod: decl.IsClassMethod,
	}
}

var (
	_ value    = (*loxFunction)(nil)
	_ callable = (*loxFunction)(nil)
)

func (f *loxFunction) String() string {
	if f.decl.Name == nil {
		return "<fn -lambda->"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

func (f *loxFunction) Type() string { return "function" }

func (f *loxFunction) Arity() int { return len(f.decl.Params) }

// Bind returns a copy of f whose closure has this bound to receiver, used when a method or getter is looked up on
// an instance, or a class method is looked up on the class itself.
func (f *loxFunction) Bind(receiver value) *loxFunction {
	env := f.closure.Child()
	env.Define("this", receiver)
	bound := *f
	bound.closure = env
	return &bound
}

func (f *loxFunction) Call(interp *Interpreter, _ token.Token, args []value) value {
	env := f.closure.Child()
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	result := interp.execBlock(f.decl.Body, env)
	if f.isInitialiser {
		return f.closure.GetByName("this")
	}
	if result.kind == execReturn {
		return result.value
	}
	return nilValue{}
}

// nativeFunction is a built-in function implemented in Go, such as clock or len.
type nativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, callTok token.Token, args []value) value
}

var (
	_ value    = (*nativeFunction)(nil)
	_ callable = (*nativeFunction)(nil)
)

func newNative(name string, arity int, fn func(interp *Interpreter, callTok token.Token, args []value) value) *nativeFunction {
	return &nativeFunction{name: name, arity: arity, fn: fn}
}

func (n *nativeFunction) String() string { return fmt.Sprintf("<native fn: %s>", n.name) }
func (n *nativeFunction) Type() string   { return "function" }
func (n *nativeFunction) Arity() int     { return n.arity }

func (n *nativeFunction) Call(interp *Interpreter, callTok token.Token, args []value) value {
	return n.fn(interp, callTok, args)
}

// checkArity raises a runtime error if len(args) doesn't match arity, unless arity is anyArity.
func checkArity(callTok token.Token, name string, arity, gotArgs int) {
	if arity == anyArity || arity == gotArgs {
		return
	}
	panic(lox.RuntimeErrorf(callTok, "%s() expects %d argument(s) but got %d", name, arity, gotArgs))
}
