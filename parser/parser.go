// Package parser parses a sequence of tokens into an abstract syntax tree.
package parser

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

const maxParams = 255

// unwind is panicked to unwind the call stack back to the nearest statement boundary after a parse error, so that
// the parser doesn't have to check for an error after every single production.
type unwind struct{}

// Parser parses a fixed sequence of tokens, reporting syntax errors through a lox.Reporter.
type Parser struct {
	tokens   []token.Token
	pos      int
	reporter lox.Reporter

	hadErrorAt token.Token
	hadAnyErr  bool
}

// New constructs a Parser over tokens, which must end with an EOF token as produced by the scanner.
func New(tokens []token.Token, reporter lox.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses the token stream into a program. Parsing continues past errors where possible, so that as many are
// reported as possible in one pass; the returned program may be incomplete if any errors were reported.
func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		stmts = append(stmts, p.safelyParseDecl())
	}
	return &ast.Program{Stmts: stmts}
}

func (p *Parser) safelyParseDecl() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
			p.synchronise()
			stmt = &ast.ExpressionStmt{Expr: &ast.LiteralExpr{Token: p.cur(), Value: nil}}
		}
	}()
	return p.parseDecl()
}

// synchronise skips tokens until it reaches one that's likely to begin a new statement, to recover from a parse
// error.
func (p *Parser) synchronise() {
	start := p.pos
	for !p.check(token.EOF) {
		if p.prevType() == token.Semicolon && p.pos > start {
			return
		}
		switch p.cur().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return, token.Break, token.Import:
			return
		}
		p.advance()
	}
}

func (p *Parser) prevType() token.Type {
	if p.pos == 0 {
		return token.EOF
	}
	return p.tokens[p.pos-1].Type
}

func (p *Parser) parseDecl() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.parseClassStmt()
	case p.check(token.Fun) && p.checkNext(token.Ident):
		p.advance()
		return p.parseFunctionStmt(false)
	case p.match(token.Var):
		return p.parseVarStmt()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseClassStmt() ast.Stmt {
	classTok := p.prev()
	name := p.expect(token.Ident, "expected class name")

	var superclasses []*ast.VariableExpr
	if p.match(token.Less) {
		for {
			superName := p.expect(token.Ident, "expected superclass name")
			superclasses = append(superclasses, &ast.VariableExpr{Name: superName})
			if !p.match(token.Comma) {
				break
			}
		}
	}

	p.expect(token.OpenBrace, "expected '{' before class body")

	var classMethods, instanceMethods, getters []*ast.FunctionStmt
	for !p.check(token.CloseBrace) && !p.check(token.EOF) {
		isClassMethod := p.match(token.Class)
		fn := p.parseFunctionStmt(isClassMethod)
		switch {
		case isClassMethod:
			classMethods = append(classMethods, fn)
		case fn.IsGetter:
			getters = append(getters, fn)
		default:
			instanceMethods = append(instanceMethods, fn)
		}
	}
	p.expect(token.CloseBrace, "expected '}' after class body")

	return &ast.ClassStmt{
		Class:           classTok,
		Name:            name,
		Superclasses:    superclasses,
		ClassMethods:    classMethods,
		InstanceMethods: instanceMethods,
		Getters:         getters,
	}
}

// parseFunctionStmt parses a function, method, or getter declaration whose `fun`/`class` keyword (if any) has
// already been consumed. A class-side method (isClassMethod) always takes a parameter list: the getter form
// (identifier directly followed by '{') only exists for instance methods.
func (p *Parser) parseFunctionStmt(isClassMethod bool) *ast.FunctionStmt {
	funTok := p.cur()
	name := p.expect(token.Ident, "expected function name")

	if !isClassMethod && p.check(token.OpenBrace) {
		body := p.parseBlockStmts()
		return &ast.FunctionStmt{Fun: funTok, Name: &name, Body: body, IsGetter: true, IsClassMethod: isClassMethod}
	}

	p.expect(token.OpenParen, "expected '(' after function name")
	params := p.parseParams()
	p.expect(token.CloseParen, "expected ')' after parameters")
	p.expect(token.OpenBrace, "expected '{' before function body")
	body := p.parseBlockStmts()
	return &ast.FunctionStmt{Fun: funTok, Name: &name, Params: params, Body: body, IsClassMethod: isClassMethod}
}

func (p *Parser) parseParams() []token.Token {
	var params []token.Token
	if p.check(token.CloseParen) {
		return params
	}
	for {
		param := p.expect(token.Ident, "expected parameter name")
		if len(params) >= maxParams {
			p.reportError(param, "can't have more than %d parameters", maxParams)
		}
		params = append(params, param)
		if !p.match(token.Comma) {
			break
		}
	}
	return params
}

func (p *Parser) parseVarStmt() ast.Stmt {
	varTok := p.prev()
	name := p.expect(token.Ident, "expected variable name")
	var initialiser ast.Expr
	if p.match(token.Assign) {
		initialiser = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return &ast.VarStmt{Var: varTok, Name: name, Initialiser: initialiser}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.parsePrintStmt()
	case p.match(token.OpenBrace):
		return &ast.BlockStmt{LeftBrace: p.prev(), Stmts: p.parseBlockStmts()}
	case p.match(token.If):
		return p.parseIfStmt()
	case p.match(token.While):
		return p.parseWhileStmt()
	case p.match(token.For):
		return p.parseForStmt()
	case p.match(token.Break):
		return p.parseBreakStmt()
	case p.match(token.Return):
		return p.parseReturnStmt()
	case p.match(token.Import):
		return p.parseImportStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	printTok := p.prev()
	expr := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after value")
	return &ast.PrintStmt{Print: printTok, Expr: expr}
}

// parseBlockStmts parses the statements of a block whose opening '{' has already been consumed, consuming the
// closing '}'.
func (p *Parser) parseBlockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.CloseBrace) && !p.check(token.EOF) {
		stmts = append(stmts, p.safelyParseDecl())
	}
	p.expect(token.CloseBrace, "expected '}' after block")
	return stmts
}

func (p *Parser) parseIfStmt() ast.Stmt {
	ifTok := p.prev()
	p.expect(token.OpenParen, "expected '(' after 'if'")
	condition := p.parseExpr()
	p.expect(token.CloseParen, "expected ')' after condition")
	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.match(token.Else) {
		elseStmt = p.parseStmt()
	}
	return &ast.IfStmt{If: ifTok, Condition: condition, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	whileTok := p.prev()
	p.expect(token.OpenParen, "expected '(' after 'while'")
	condition := p.parseExpr()
	p.expect(token.CloseParen, "expected ')' after condition")
	body := p.parseStmt()
	return &ast.WhileStmt{While: whileTok, Condition: condition, Body: body}
}

// parseForStmt desugars `for (init; cond; update) body` into `{ init; while (cond) { body; update; } }`.
func (p *Parser) parseForStmt() ast.Stmt {
	forTok := p.prev()
	p.expect(token.OpenParen, "expected '(' after 'for'")

	var initialiser ast.Stmt
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		initialiser = p.parseVarStmt()
	default:
		initialiser = p.parseExpressionStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after loop condition")

	var update ast.Expr
	if !p.check(token.CloseParen) {
		update = p.parseExpr()
	}
	p.expect(token.CloseParen, "expected ')' after for clauses")

	body := p.parseStmt()

	if update != nil {
		body = &ast.BlockStmt{LeftBrace: forTok, Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: update}}}
	}
	if condition == nil {
		condition = &ast.LiteralExpr{Token: forTok, Value: true}
	}
	var loop ast.Stmt = &ast.WhileStmt{While: forTok, Condition: condition, Body: body}
	if initialiser != nil {
		loop = &ast.BlockStmt{LeftBrace: forTok, Stmts: []ast.Stmt{initialiser, loop}}
	}
	return loop
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	keyword := p.prev()
	p.expect(token.Semicolon, "expected ';' after 'break'")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	keyword := p.prev()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) parseImportStmt() ast.Stmt {
	importTok := p.prev()
	p.expect(token.Semicolon, "expected ';' after import filename")
	return &ast.ImportStmt{Import: importTok, Filename: importTok}
}

func (p *Parser) parseExpressionStmt() ast.Stmt {
	expr := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

// parseExpr parses the comma operator, the lowest-precedence production.
func (p *Parser) parseExpr() ast.Expr {
	expr := p.parseAssignment()
	for p.match(token.Comma) {
		op := p.prev()
		right := p.parseAssignment()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseAssignment() ast.Expr {
	expr := p.parseTernary()
	if p.match(token.Assign) {
		eq := p.prev()
		value := p.parseAssignment()
		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		case *ast.IndexExpr:
			return &ast.SetArrayExpr{Object: target.Object, Index: target.Index, Value: value, Bracket: target.Bracket}
		default:
			p.reportError(eq, "invalid assignment target")
			return expr
		}
	}
	return expr
}

func (p *Parser) parseTernary() ast.Expr {
	expr := p.parseLogicalOr()
	if p.match(token.Question) {
		question := p.prev()
		then := p.parseAssignment()
		p.expect(token.Colon, "expected ':' in ternary expression")
		elseExpr := p.parseTernary()
		return &ast.TernaryExpr{Condition: expr, Question: question, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expr {
	expr := p.parseLogicalAnd()
	for p.match(token.Or) {
		op := p.prev()
		right := p.parseLogicalAnd()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	expr := p.parseEquality()
	for p.match(token.And) {
		op := p.prev()
		right := p.parseEquality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.match(token.Equal, token.NotEqual) {
		op := p.prev()
		right := p.parseComparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.match(token.Less, token.LessEqual, token.Greater, token.GreaterEqual) {
		op := p.prev()
		right := p.parseTerm()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.match(token.Plus, token.Minus) {
		op := p.prev()
		right := p.parseFactor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.match(token.Asterisk, token.Slash) {
		op := p.prev()
		right := p.parseUnary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.prev()
		right := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.parseCallOrIndex()
}

func (p *Parser) parseCallOrIndex() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.OpenParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.expect(token.Ident, "expected property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: name}
		case p.match(token.OpenBracket):
			bracket := p.prev()
			index := p.parseAssignment()
			p.expect(token.CloseBracket, "expected ']' after index")
			expr = &ast.IndexExpr{Object: expr, Index: index, Bracket: bracket}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.CloseParen) {
		for {
			if len(args) >= maxParams {
				p.reportError(p.cur(), "can't have more than %d arguments", maxParams)
			}
			args = append(args, p.parseAssignment())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.expect(token.CloseParen, "expected ')' after arguments")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.match(token.Number, token.String, token.True, token.False, token.Nil):
		tok := p.prev()
		return &ast.LiteralExpr{Token: tok, Value: literalValue(tok)}
	case p.match(token.This):
		return &ast.ThisExpr{Keyword: p.prev()}
	case p.match(token.Ident):
		return &ast.VariableExpr{Name: p.prev()}
	case p.match(token.Fun):
		return p.parseLambda()
	case p.match(token.OpenBracket):
		return p.parseArrayLiteral()
	case p.match(token.OpenParen):
		leftParen := p.prev()
		expr := p.parseExpr()
		p.expect(token.CloseParen, "expected ')' after expression")
		return &ast.GroupingExpr{LeftParen: leftParen, Expr: expr}

	// Error productions: a binary operator with no left operand.
	case p.match(token.Equal, token.NotEqual, token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.Plus, token.Asterisk, token.Slash, token.Comma, token.Question):
		tok := p.prev()
		p.reportError(tok, "binary operator %s must have a left operand", tok.Lexeme)
		var right ast.Expr
		switch tok.Type {
		case token.Equal, token.NotEqual:
			right = p.parseComparison()
		case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
			right = p.parseTerm()
		case token.Plus:
			right = p.parseFactor()
		case token.Asterisk, token.Slash:
			right = p.parseUnary()
		case token.Comma:
			right = p.parseAssignment()
		case token.Question:
			right = p.parseTernary()
		}
		return &ast.BinaryExpr{Op: tok, Right: right}

	default:
		p.reportError(p.cur(), "expected expression")
		panic(unwind{})
	}
}

func (p *Parser) parseLambda() ast.Expr {
	funTok := p.prev()
	p.expect(token.OpenParen, "expected '(' after 'fun'")
	params := p.parseParams()
	p.expect(token.CloseParen, "expected ')' after parameters")
	p.expect(token.OpenBrace, "expected '{' before function body")
	body := p.parseBlockStmts()
	return &ast.LambdaExpr{Fun: funTok, Params: params, Body: body}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	leftBracket := p.prev()
	var elements []ast.Expr
	if !p.check(token.CloseBracket) {
		for {
			elements = append(elements, p.parseAssignment())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.CloseBracket, "expected ']' after array elements")
	return &ast.ArrayExpr{LeftBracket: leftBracket, Elements: elements}
}

func literalValue(tok token.Token) any {
	switch tok.Type {
	case token.True:
		return true
	case token.False:
		return false
	case token.Nil:
		return nil
	default:
		return tok.Literal
	}
}

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) prev() token.Token { return p.tokens[p.pos-1] }

func (p *Parser) check(t token.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) checkNext(t token.Type) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(t token.Type, format string, args ...any) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.reportError(p.cur(), format, args...)
	panic(unwind{})
}

// reportError reports a parse error at tok, suppressing a second report at the exact same token to avoid a
// cascade of errors caused by a single bad token.
func (p *Parser) reportError(tok token.Token, format string, args ...any) {
	if p.hadAnyErr && tok == p.hadErrorAt {
		return
	}
	p.hadAnyErr = true
	p.hadErrorAt = tok
	p.reporter.ParseError(tok, format, args...)
}
