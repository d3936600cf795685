// Package resolver performs a static analysis pass over a parsed program between parsing and interpretation. For
// every variable reference it works out how many enclosing scopes separate the reference from the scope it was
// declared in, and records that depth in the interpreter so that the interpreter can resolve the reference in
// constant time rather than walking the environment chain at runtime. It also enforces the handful of checks that
// depend on lexical, rather than runtime, structure: that this and return are only used where they make sense, that
// break only appears inside a loop, and that a local variable isn't read before it's fully initialised.
package resolver

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// Interpreter is the capability the resolver needs from an interpreter: somewhere to record the resolved depth of a
// variable-bearing expression, keyed by the expression's own identity.
type Interpreter interface {
	Resolve(expr ast.Expr, depth int)
}

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeLambda
	functionTypeMethod
	functionTypeClassMethod
	functionTypeGetter
	functionTypeInitialiser
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
)

// binding tracks the declaration state of a name in a single lexical scope: whether it's been defined yet (false
// between `var x` and its initialiser completing), whether it's been read, and the token of its declaration, used to
// attribute an "unused variable" diagnostic.
type binding struct {
	defined bool
	used    bool
	tok     token.Token
}

// Resolver walks a parsed program, recording lexical scope depths into an Interpreter and reporting static scoping
// errors through a lox.Reporter.
type Resolver struct {
	interp   Interpreter
	reporter lox.Reporter

	scopes []map[string]*binding

	currentFunction functionType
	currentClass    classType
	loopDepth       int

	// replMode relaxes the "declared but never used" check for the outermost local scope (a block, function body, or
	// lambda body at the top level of the program). Top-level declarations are globals and are never checked.
	replMode bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithREPLMode relaxes the unused-variable check for the outermost local scope; scopes nested inside it are still
// checked. Top-level declarations are globals and are never subject to the check, with or without this option.
func WithREPLMode() Option {
	return func(r *Resolver) { r.replMode = true }
}

// Resolve resolves program, recording variable depths into interp and reporting errors through reporter.
func Resolve(program *ast.Program, interp Interpreter, reporter lox.Reporter, opts ...Option) {
	r := &Resolver{interp: interp, reporter: reporter}
	for _, opt := range opts {
		opt(r)
	}
	r.resolveStmts(program.Stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()
	case *ast.ClassStmt:
		r.resolveClassStmt(stmt)
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.reporter.ParseError(stmt.Keyword, "break can only be used inside a loop")
		}
	case *ast.ExpressionStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.FunctionStmt:
		r.declare(*stmt.Name)
		r.define(*stmt.Name)
		r.resolveFunction(stmt, functionTypeFunction)
	case *ast.IfStmt:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *ast.ImportStmt:
		// Filenames are resolved and read at interpretation time; there's nothing lexical to check here.
	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.ReturnStmt:
		if r.currentFunction == functionTypeNone {
			r.reporter.ParseError(stmt.Keyword, "return can only be used inside a function")
		}
		if stmt.Value != nil {
			if r.currentFunction == functionTypeInitialiser {
				r.reporter.ParseError(stmt.Keyword, "can't return a value from an init method")
			}
			r.resolveExpr(stmt.Value)
		}
	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Initialiser != nil {
			r.resolveExpr(stmt.Initialiser)
		}
		r.define(stmt.Name)
	case *ast.WhileStmt:
		r.resolveExpr(stmt.Condition)
		r.loopDepth++
		r.resolveStmt(stmt.Body)
		r.loopDepth--
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClassStmt(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	for _, superclass := range stmt.Superclasses {
		if superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.reporter.ParseError(superclass.Name, "a class can't inherit from itself")
			continue
		}
		r.resolveExpr(superclass)
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = &binding{defined: true, used: true}

	for _, method := range stmt.InstanceMethods {
		r.resolveFunction(method, functionTypeMethod)
	}
	for _, method := range stmt.ClassMethods {
		r.resolveFunction(method, functionTypeClassMethod)
	}
	for _, getter := range stmt.Getters {
		r.resolveFunction(getter, functionTypeGetter)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	if typ == functionTypeMethod && fn.Name != nil && fn.Name.Lexeme == "init" {
		typ = functionTypeInitialiser
	}

	enclosingFunction := r.currentFunction
	r.currentFunction = typ
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.ArrayExpr:
		for _, elem := range expr.Elements {
			r.resolveExpr(elem)
		}
	case *ast.AssignExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case *ast.IndexExpr:
		r.resolveExpr(expr.Object)
		r.resolveExpr(expr.Index)
	case *ast.GetExpr:
		r.resolveExpr(expr.Object)
	case *ast.GroupingExpr:
		r.resolveExpr(expr.Expr)
	case *ast.LambdaExpr:
		enclosingFunction := r.currentFunction
		r.currentFunction = functionTypeLambda
		r.beginScope()
		for _, param := range expr.Params {
			r.declare(param)
			r.define(param)
		}
		r.resolveStmts(expr.Body)
		r.endScope()
		r.currentFunction = enclosingFunction
	case *ast.LiteralExpr:
		// Nothing to resolve.
	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *ast.SetArrayExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
		r.resolveExpr(expr.Index)
	case *ast.TernaryExpr:
		r.resolveExpr(expr.Condition)
		r.resolveExpr(expr.Then)
		r.resolveExpr(expr.Else)
	case *ast.ThisExpr:
		if r.currentClass == classTypeNone {
			r.reporter.ParseError(expr.Keyword, "this can only be used inside a method")
			return
		}
		r.resolveLocal(expr, expr.Keyword)
	case *ast.UnaryExpr:
		r.resolveExpr(expr.Right)
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !b.defined {
				r.reporter.ParseError(expr.Name, "can't read local variable in its own initialiser")
			}
		}
		r.resolveLocal(expr, expr.Name)
	default:
		panic("resolver: unhandled expression type")
	}
}

// resolveLocal records how many scopes separate expr from the scope that declares name, if any enclosing scope
// declares it at all. A name that resolves to no scope is assumed global and is looked up directly by the
// interpreter at runtime, so nothing is recorded.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			b.used = true
			r.interp.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]*binding{})
}

func (r *Resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	isOutermost := len(r.scopes) == 1
	r.scopes = r.scopes[:len(r.scopes)-1]

	if isOutermost && r.replMode {
		return
	}
	for name, b := range scope {
		if name != "this" && !b.used {
			r.reporter.ParseError(b.tok, "%s is declared but not used", name)
		}
	}
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ParseError(name, "%s is already declared in this scope", name.Lexeme)
	}
	scope[name.Lexeme] = &binding{tok: name}
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme].defined = true
}
