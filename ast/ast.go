// Package ast defines the types used to represent the abstract syntax tree of a Lox program.
//
// Every node is represented by a pointer type. This isn't just a style choice: the Resolver records the lexical
// depth of a variable-bearing Expr by using the Expr's identity (its pointer value) as a map key, and the
// Interpreter later looks the depth back up by that same identity. See the interpreter/identresolver design note in
// DESIGN.md.
package ast

import "github.com/loxlang/golox/token"

// Node is the interface implemented by every AST node. Tok returns the node's operative token, used to attribute
// diagnostics to a source location.
type Node interface {
	Tok() token.Token
}

// Program is the root node of a parsed source file.
type Program struct {
	Stmts []Stmt
}

// Stmt is the interface implemented by every statement node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is the interface implemented by every expression node.
type Expr interface {
	Node
	isExpr()
}

// BlockStmt is a block statement, such as { var a = 1; print a; }.
type BlockStmt struct {
	LeftBrace token.Token
	Stmts     []Stmt
}

func (s *BlockStmt) Tok() token.Token { return s.LeftBrace }
func (*BlockStmt) isStmt()            {}

// ClassStmt is a class declaration, such as class Foo < Bar, Baz { ... }.
type ClassStmt struct {
	Class           token.Token
	Name            token.Token
	Superclasses    []*VariableExpr
	ClassMethods    []*FunctionStmt
	InstanceMethods []*FunctionStmt
	Getters         []*FunctionStmt
}

func (s *ClassStmt) Tok() token.Token { return s.Class }
func (*ClassStmt) isStmt()            {}

// BreakStmt is a break statement.
type BreakStmt struct {
	Keyword token.Token
}

func (s *BreakStmt) Tok() token.Token { return s.Keyword }
func (*BreakStmt) isStmt()            {}

// ExpressionStmt is an expression statement, such as a bare function call or the comma-chained side effects of one.
type ExpressionStmt struct {
	Expr Expr
}

func (s *ExpressionStmt) Tok() token.Token { return s.Expr.Tok() }
func (*ExpressionStmt) isStmt()            {}

// FunctionStmt is a function, method, or getter declaration. Name is nil when the statement was synthesised by the
// interpreter to represent a lambda (see LambdaExpr); a parsed declaration always carries a Name.
//
// IsGetter marks a zero-parameter method declared with `{` instead of `(params)`, i.e. a property accessor.
// IsClassMethod marks a method declared with a leading `class` keyword, i.e. a class-side method.
type FunctionStmt struct {
	Fun           token.Token
	Name          *token.Token
	Params        []token.Token
	Body          []Stmt
	IsGetter      bool
	IsClassMethod bool
}

func (s *FunctionStmt) Tok() token.Token { return s.Fun }
func (*FunctionStmt) isStmt()            {}

// IfStmt is an if statement, with an optional else branch.
type IfStmt struct {
	If        token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) Tok() token.Token { return s.If }
func (*IfStmt) isStmt()            {}

// ImportStmt is an import statement, such as import other.lox;. Filename carries the text between the import keyword
// and the following semicolon as its Lexeme, with surrounding whitespace trimmed and embedded whitespace kept.
type ImportStmt struct {
	Import   token.Token
	Filename token.Token
}

func (s *ImportStmt) Tok() token.Token { return s.Import }
func (*ImportStmt) isStmt()            {}

// PrintStmt is a print statement, such as print "hi";.
type PrintStmt struct {
	Print token.Token
	Expr  Expr
}

func (s *PrintStmt) Tok() token.Token { return s.Print }
func (*PrintStmt) isStmt()            {}

// ReturnStmt is a return statement, with an optional value.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (s *ReturnStmt) Tok() token.Token { return s.Keyword }
func (*ReturnStmt) isStmt()            {}

// VarStmt is a variable declaration, such as var a = 1; or var b;.
type VarStmt struct {
	Var         token.Token
	Name        token.Token
	Initialiser Expr
}

func (s *VarStmt) Tok() token.Token { return s.Var }
func (*VarStmt) isStmt()            {}

// WhileStmt is a while statement.
type WhileStmt struct {
	While     token.Token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) Tok() token.Token { return s.While }
func (*WhileStmt) isStmt()            {}

// ArrayExpr is an array literal, such as [1, 2, 3].
type ArrayExpr struct {
	LeftBracket token.Token
	Elements    []Expr
}

func (e *ArrayExpr) Tok() token.Token { return e.LeftBracket }
func (*ArrayExpr) isExpr()            {}

// AssignExpr is a variable assignment, such as a = 2.
type AssignExpr struct {
	Name  token.Token
	Value Expr
}

func (e *AssignExpr) Tok() token.Token { return e.Name }
func (*AssignExpr) isExpr()            {}

// BinaryExpr is a binary operator expression, such as a + b.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *BinaryExpr) Tok() token.Token { return e.Op }
func (*BinaryExpr) isExpr()            {}

// CallExpr is a call expression, such as f(1, 2).
type CallExpr struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *CallExpr) Tok() token.Token { return e.Paren }
func (*CallExpr) isExpr()            {}

// IndexExpr is an array or string index expression, such as a[0].
type IndexExpr struct {
	Object  Expr
	Index   Expr
	Bracket token.Token
}

func (e *IndexExpr) Tok() token.Token { return e.Bracket }
func (*IndexExpr) isExpr()            {}

// GetExpr is a property access expression, such as a.b.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

func (e *GetExpr) Tok() token.Token { return e.Name }
func (*GetExpr) isExpr()            {}

// GroupingExpr is a parenthesised expression, such as (a + b).
type GroupingExpr struct {
	LeftParen token.Token
	Expr      Expr
}

func (e *GroupingExpr) Tok() token.Token { return e.LeftParen }
func (*GroupingExpr) isExpr()            {}

// LambdaExpr is an anonymous function expression, such as fun(x) { return x; }.
type LambdaExpr struct {
	Fun    token.Token
	Params []token.Token
	Body   []Stmt
}

func (e *LambdaExpr) Tok() token.Token { return e.Fun }
func (*LambdaExpr) isExpr()            {}

// LiteralExpr is a literal expression, such as 123, "abc", true, or nil. Value holds the decoded Go value: float64,
// string, bool, or nil.
type LiteralExpr struct {
	Token token.Token
	Value any
}

func (e *LiteralExpr) Tok() token.Token { return e.Token }
func (*LiteralExpr) isExpr()            {}

// LogicalExpr is an `and`/`or` expression. It's kept distinct from BinaryExpr because its right operand may not be
// evaluated.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *LogicalExpr) Tok() token.Token { return e.Op }
func (*LogicalExpr) isExpr()            {}

// SetExpr is a property assignment expression, such as a.b = 2.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *SetExpr) Tok() token.Token { return e.Name }
func (*SetExpr) isExpr()            {}

// SetArrayExpr is an indexed assignment expression, such as a[0] = 2.
type SetArrayExpr struct {
	Object  Expr
	Index   Expr
	Value   Expr
	Bracket token.Token
}

func (e *SetArrayExpr) Tok() token.Token { return e.Bracket }
func (*SetArrayExpr) isExpr()            {}

// TernaryExpr is a ternary conditional expression, such as a ? b : c.
type TernaryExpr struct {
	Condition Expr
	Question  token.Token
	Then      Expr
	Else      Expr
}

func (e *TernaryExpr) Tok() token.Token { return e.Question }
func (*TernaryExpr) isExpr()            {}

// ThisExpr represents a use of the `this` keyword.
type ThisExpr struct {
	Keyword token.Token
}

func (e *ThisExpr) Tok() token.Token { return e.Keyword }
func (*ThisExpr) isExpr()            {}

// UnaryExpr is a unary operator expression, such as !a or -a.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
}

func (e *UnaryExpr) Tok() token.Token { return e.Op }
func (*UnaryExpr) isExpr()            {}

// VariableExpr is a variable reference, such as a.
type VariableExpr struct {
	Name token.Token
}

func (e *VariableExpr) Tok() token.Token { return e.Name }
func (*VariableExpr) isExpr()            {}
