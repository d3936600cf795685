// Package interpreter evaluates a resolved abstract syntax tree.
package interpreter

import (
	"fmt"
	"os"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// execResultKind classifies how a statement finished executing: normally, via break, or via return. break and
// return are control-flow signals rather than errors, so they're threaded back up the call stack as ordinary
// return values instead of panics.
type execResultKind int

const (
	execNone execResultKind = iota
	execBreak
	execReturn
)

type execResult struct {
	kind  execResultKind
	value value
}

var resultNone = execResult{kind: execNone}

// Interpreter walks a resolved program, evaluating it for effect. It's re-entrant: an import statement drives a
// nested source file through the same Interpreter, so that the imported file's top-level declarations land in the
// same global environment as the importing file's.
type Interpreter struct {
	globals  *environment
	env      *environment
	locals   map[ast.Expr]int
	reporter lox.Reporter
	isREPL   bool
}

var _ lox.Interpreter = (*Interpreter)(nil)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithREPLMode marks the Interpreter as driving an interactive REPL: a bare expression statement prints its
// evaluated result, the way a REPL session echoes back the value of whatever was just typed.
func WithREPLMode() Option {
	return func(i *Interpreter) { i.isREPL = true }
}

// New constructs an Interpreter which reports runtime errors through reporter.
func New(reporter lox.Reporter, opts ...Option) *Interpreter {
	globals := newEnvironment(nil)
	registerNatives(globals)
	i := &Interpreter{
		globals:  globals,
		env:      globals,
		locals:   make(map[ast.Expr]int),
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Resolve records that expr refers to a variable declared depth enclosing scopes up from wherever expr is
// evaluated. It's called by the resolver, keyed by expr's own identity.
func (i *Interpreter) Resolve(expr ast.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret executes every statement in program in order. A runtime error or exception error anywhere aborts
// execution, is reported through the Interpreter's reporter, and is returned.
func (i *Interpreter) Interpret(program *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *lox.RuntimeError:
				i.reporter.RuntimeError(e)
				err = e
			case *lox.ExceptionError:
				i.reporter.ExceptionError(e)
				err = e
			case *errImportFailed:
				err = e.err
			default:
				panic(r)
			}
		}
	}()
	for _, stmt := range program.Stmts {
		i.execStmt(stmt, i.env)
	}
	return nil
}

func (i *Interpreter) execBlock(stmts []ast.Stmt, env *environment) execResult {
	for _, stmt := range stmts {
		if result := i.execStmt(stmt, env); result.kind != execNone {
			return result
		}
	}
	return resultNone
}

func (i *Interpreter) execStmt(stmt ast.Stmt, env *environment) execResult {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return i.execBlock(stmt.Stmts, env.Child())
	case *ast.ClassStmt:
		i.execClassStmt(stmt, env)
		return resultNone
	case *ast.BreakStmt:
		return execResult{kind: execBreak}
	case *ast.ExpressionStmt:
		v := i.evalExpr(stmt.Expr, env)
		if i.isREPL {
			fmt.Println(v.String())
		}
		return resultNone
	case *ast.FunctionStmt:
		env.Define(stmt.Name.Lexeme, newFunction(stmt, env, false))
		return resultNone
	case *ast.IfStmt:
		if isTruthy(i.evalExpr(stmt.Condition, env)) {
			return i.execStmt(stmt.Then, env)
		} else if stmt.Else != nil {
			return i.execStmt(stmt.Else, env)
		}
		return resultNone
	case *ast.ImportStmt:
		i.execImportStmt(stmt)
		return resultNone
	case *ast.PrintStmt:
		fmt.Println(i.evalExpr(stmt.Expr, env).String())
		return resultNone
	case *ast.ReturnStmt:
		v := value(nilValue{})
		if stmt.Value != nil {
			v = i.evalExpr(stmt.Value, env)
		}
		return execResult{kind: execReturn, value: v}
	case *ast.VarStmt:
		if stmt.Initialiser == nil {
			env.Declare(stmt.Name.Lexeme)
		} else {
			env.Define(stmt.Name.Lexeme, i.evalExpr(stmt.Initialiser, env))
		}
		return resultNone
	case *ast.WhileStmt:
		for isTruthy(i.evalExpr(stmt.Condition, env)) {
			result := i.execStmt(stmt.Body, env)
			if result.kind == execBreak {
				break
			}
			if result.kind == execReturn {
				return result
			}
		}
		return resultNone
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

func (i *Interpreter) execClassStmt(stmt *ast.ClassStmt, env *environment) {
	env.Declare(stmt.Name.Lexeme)

	superclasses := make([]*loxClass, len(stmt.Superclasses))
	for idx, sc := range stmt.Superclasses {
		v := i.lookupVariable(sc, sc.Name, env)
		class, ok := v.(*loxClass)
		if !ok {
			panic(lox.RuntimeErrorf(sc.Name, "superclass %s must be a class", sc.Name.Lexeme))
		}
		superclasses[idx] = class
	}

	methods := make(map[string]*loxFunction, len(stmt.InstanceMethods))
	for _, m := range stmt.InstanceMethods {
		methods[m.Name.Lexeme] = newFunction(m, env, m.Name.Lexeme == "init")
	}
	classMethods := make(map[string]*loxFunction, len(stmt.ClassMethods))
	for _, m := range stmt.ClassMethods {
		classMethods[m.Name.Lexeme] = newFunction(m, env, false)
	}
	getters := make(map[string]*loxFunction, len(stmt.Getters))
	for _, g := range stmt.Getters {
		getters[g.Name.Lexeme] = newFunction(g, env, false)
	}

	class := newClass(stmt.Name.Lexeme, superclasses, methods, classMethods, getters)
	env.Initialise(stmt.Name.Lexeme, class)
}

// errImportFailed signals that a nested Run (triggered by execImportStmt) already reported its own diagnostic
// through the shared reporter; the outer Interpret must abort without reporting the same failure a second time.
type errImportFailed struct{ err error }

func (e *errImportFailed) Error() string { return e.err.Error() }

// execImportStmt reads the file named by stmt.Filename and drives it through the same reporter and interpreter as
// the importing file, so that its top-level declarations join the current global environment.
func (i *Interpreter) execImportStmt(stmt *ast.ImportStmt) {
	data, err := os.ReadFile(stmt.Filename.Lexeme)
	if err != nil {
		panic(lox.RuntimeErrorf(stmt.Filename, "couldn't import %s: %s", stmt.Filename.Lexeme, err))
	}
	if err := i.reporter.Run(string(data), i); err != nil {
		panic(&errImportFailed{err: err})
	}
}

func (i *Interpreter) evalExpr(expr ast.Expr, env *environment) value {
	switch expr := expr.(type) {
	case *ast.ArrayExpr:
		elems := make(arrayValue, len(expr.Elements))
		for idx, e := range expr.Elements {
			elems[idx] = i.evalExpr(e, env)
		}
		return &elems
	case *ast.AssignExpr:
		v := i.evalExpr(expr.Value, env)
		if depth, ok := i.locals[expr]; ok {
			env.AssignAt(depth, expr.Name, v)
		} else {
			i.globals.Assign(expr.Name, v)
		}
		return v
	case *ast.BinaryExpr:
		return i.evalBinaryExpr(expr, env)
	case *ast.CallExpr:
		return i.evalCallExpr(expr, env)
	case *ast.IndexExpr:
		object := i.evalExpr(expr.Object, env)
		idx, ok := object.(indexable)
		if !ok {
			panic(lox.RuntimeErrorf(expr.Bracket, "%s is not indexable", object.Type()))
		}
		return idx.Index(expr.Bracket, i.evalExpr(expr.Index, env))
	case *ast.GetExpr:
		object := i.evalExpr(expr.Object, env)
		accessible, ok := object.(propertyAccessible)
		if !ok {
			panic(lox.RuntimeErrorf(expr.Name, "%s has no properties", object.Type()))
		}
		return accessible.Property(i, expr.Name)
	case *ast.GroupingExpr:
		return i.evalExpr(expr.Expr, env)
	case *ast.LambdaExpr:
		synthetic := &ast.FunctionStmt{Fun: expr.Fun, Params: expr.Params, Body: expr.Body}
		return newFunction(synthetic, env, false)
	case *ast.LiteralExpr:
		return wrapLiteral(expr.Value)
	case *ast.LogicalExpr:
		left := i.evalExpr(expr.Left, env)
		if expr.Op.Type == token.Or {
			if isTruthy(left) {
				return left
			}
			return i.evalExpr(expr.Right, env)
		}
		if !isTruthy(left) {
			return left
		}
		return i.evalExpr(expr.Right, env)
	case *ast.SetExpr:
		object := i.evalExpr(expr.Object, env)
		settable, ok := object.(propertySettable)
		if !ok {
			panic(lox.RuntimeErrorf(expr.Name, "%s has no settable properties", object.Type()))
		}
		return settable.SetProperty(i, expr.Name, i.evalExpr(expr.Value, env))
	case *ast.SetArrayExpr:
		object := i.evalExpr(expr.Object, env)
		settable, ok := object.(indexSettable)
		if !ok {
			panic(lox.RuntimeErrorf(expr.Bracket, "%s is not indexable", object.Type()))
		}
		return settable.SetIndex(expr.Bracket, i.evalExpr(expr.Index, env), i.evalExpr(expr.Value, env))
	case *ast.TernaryExpr:
		if isTruthy(i.evalExpr(expr.Condition, env)) {
			return i.evalExpr(expr.Then, env)
		}
		return i.evalExpr(expr.Else, env)
	case *ast.ThisExpr:
		return i.lookupVariable(expr, expr.Keyword, env)
	case *ast.UnaryExpr:
		right := i.evalExpr(expr.Right, env)
		if expr.Op.Type == token.Bang {
			return boolValue(!isTruthy(right))
		}
		unary, ok := right.(unaryOperand)
		if !ok {
			panic(newInvalidUnaryOpError(expr.Op, right))
		}
		return unary.UnaryOp(expr.Op)
	case *ast.VariableExpr:
		return i.lookupVariable(expr, expr.Name, env)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func (i *Interpreter) evalBinaryExpr(expr *ast.BinaryExpr, env *environment) value {
	left := i.evalExpr(expr.Left, env)
	if expr.Op.Type == token.Comma {
		return i.evalExpr(expr.Right, env)
	}
	right := i.evalExpr(expr.Right, env)
	switch expr.Op.Type {
	case token.Equal:
		return boolValue(equals(left, right))
	case token.NotEqual:
		return boolValue(!equals(left, right))
	case token.Plus:
		ln, lIsNum := left.(numberValue)
		rn, rIsNum := right.(numberValue)
		if lIsNum && rIsNum {
			return ln + rn
		}
		_, lIsStr := left.(stringValue)
		_, rIsStr := right.(stringValue)
		if lIsStr || rIsStr {
			return stringValue(left.String() + right.String())
		}
		panic(lox.RuntimeErrorf(expr.Op, "operands must be two numbers or two strings"))
	default:
		binary, ok := left.(binaryOperand)
		if !ok {
			panic(newInvalidBinaryOpError(expr.Op, left, right))
		}
		return binary.BinaryOp(expr.Op, right)
	}
}

func (i *Interpreter) evalCallExpr(expr *ast.CallExpr, env *environment) value {
	callee := i.evalExpr(expr.Callee, env)
	c, ok := callee.(callable)
	if !ok {
		panic(lox.RuntimeErrorf(expr.Paren, "%s is not callable", callee.Type()))
	}
	args := make([]value, len(expr.Args))
	for idx, a := range expr.Args {
		args[idx] = i.evalExpr(a, env)
	}
	checkArity(expr.Paren, calleeName(expr.Callee, c), c.Arity(), len(args))
	return c.Call(i, expr.Paren, args)
}

func calleeName(expr ast.Expr, c callable) string {
	switch expr := expr.(type) {
	case *ast.VariableExpr:
		return expr.Name.Lexeme
	case *ast.GetExpr:
		return expr.Name.Lexeme
	default:
		return c.String()
	}
}

// lookupVariable reads the value bound to name, using expr's resolved depth if the resolver recorded one, and
// falling back to a direct global lookup otherwise.
func (i *Interpreter) lookupVariable(expr ast.Expr, name token.Token, env *environment) value {
	if depth, ok := i.locals[expr]; ok {
		return env.GetAt(depth, name)
	}
	return i.globals.Get(name)
}

// wrapLiteral converts the decoded Go value carried by an ast.LiteralExpr into its runtime value.
func wrapLiteral(v any) value {
	switch v := v.(type) {
	case float64:
		return numberValue(v)
	case string:
		return stringValue(v)
	case bool:
		return boolValue(v)
	case nil:
		return nilValue{}
	default:
		panic(fmt.Sprintf("interpreter: unexpected literal value type %T", v))
	}
}
