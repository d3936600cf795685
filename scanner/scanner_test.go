package scanner_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/scanner"
	"github.com/loxlang/golox/token"
)

// fakeReporter is a minimal lox.Reporter that just records Error calls; the scanner never calls the other methods.
type fakeReporter struct {
	errs []string
}

var _ lox.Reporter = (*fakeReporter)(nil)

func (f *fakeReporter) Error(line, column int, format string, args ...any) {
	f.errs = append(f.errs, fmt.Sprintf("%d:%d: %s", line, column, fmt.Sprintf(format, args...)))
}
func (f *fakeReporter) ParseError(token.Token, string, ...any) {}
func (f *fakeReporter) RuntimeError(*lox.RuntimeError)         {}
func (f *fakeReporter) ExceptionError(*lox.ExceptionError)    {}
func (f *fakeReporter) Run(string, lox.Interpreter) error     { return nil }
func (f *fakeReporter) HadError() bool                        { return len(f.errs) > 0 }
func (f *fakeReporter) HadRuntimeError() bool                 { return false }
func (f *fakeReporter) Reset()                                { f.errs = nil }

var _ lox.Interpreter = (*noopInterpreter)(nil)

type noopInterpreter struct{}

func (noopInterpreter) Interpret(*ast.Program) error { return nil }

func scan(t *testing.T, src string) ([]token.Token, *fakeReporter) {
	t.Helper()
	r := &fakeReporter{}
	return scanner.New(src, r).Scan(), r
}

func TestScan_PunctuationAndOperators(t *testing.T) {
	tokens, r := scan(t, "( ) { } [ ] , . ; ? : = == ! != < <= > >= + - * /")
	if len(r.errs) != 0 {
		t.Fatalf("unexpected errors: %v", r.errs)
	}
	var gotTypes []token.Type
	for _, tok := range tokens {
		gotTypes = append(gotTypes, tok.Type)
	}
	want := []token.Type{
		token.OpenParen, token.CloseParen, token.OpenBrace, token.CloseBrace,
		token.OpenBracket, token.CloseBracket, token.Comma, token.Dot, token.Semicolon,
		token.Question, token.Colon, token.Assign, token.Equal, token.Bang, token.NotEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.Plus, token.Minus, token.Asterisk, token.Slash, token.EOF,
	}
	if diff := cmp.Diff(want, gotTypes); diff != "" {
		t.Errorf("token types differ (-want +got):\n%s", diff)
	}
}

func TestScan_Keywords(t *testing.T) {
	tokens, _ := scan(t, "print var true false nil if else and or while for fun return class this break")
	want := []token.Type{
		token.Print, token.Var, token.True, token.False, token.Nil, token.If, token.Else,
		token.And, token.Or, token.While, token.For, token.Fun, token.Return, token.Class,
		token.This, token.Break, token.EOF,
	}
	var gotTypes []token.Type
	for _, tok := range tokens {
		gotTypes = append(gotTypes, tok.Type)
	}
	if diff := cmp.Diff(want, gotTypes); diff != "" {
		t.Errorf("token types differ (-want +got):\n%s", diff)
	}
}

func TestScan_Number(t *testing.T) {
	tokens, _ := scan(t, "123 3.14")
	if len(tokens) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d", len(tokens))
	}
	if diff := cmp.Diff(123.0, tokens[0].Literal); diff != "" {
		t.Errorf("first literal differs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(3.14, tokens[1].Literal); diff != "" {
		t.Errorf("second literal differs (-want +got):\n%s", diff)
	}
}

func TestScan_StringAllowsNewlines(t *testing.T) {
	tokens, r := scan(t, "\"line one\nline two\"")
	if len(r.errs) != 0 {
		t.Fatalf("unexpected errors: %v", r.errs)
	}
	if diff := cmp.Diff("line one\nline two", tokens[0].Literal); diff != "" {
		t.Errorf("literal differs (-want +got):\n%s", diff)
	}
}

func TestScan_UnterminatedStringReportsError(t *testing.T) {
	_, r := scan(t, `"unterminated`)
	if len(r.errs) != 1 {
		t.Fatalf("expected 1 error, got %v", r.errs)
	}
}

func TestScan_ImportCapturesRawFilename(t *testing.T) {
	tokens, _ := scan(t, "import foo/bar baz.lox;")
	if tokens[0].Type != token.Import {
		t.Fatalf("expected first token to be Import, got %s", tokens[0].Type)
	}
	if diff := cmp.Diff("foo/bar baz.lox", tokens[0].Lexeme); diff != "" {
		t.Errorf("import filename differs (-want +got):\n%s", diff)
	}
	if tokens[1].Type != token.Semicolon {
		t.Errorf("expected next token to be Semicolon, got %s", tokens[1].Type)
	}
}

func TestScan_LineAndBlockComments(t *testing.T) {
	tokens, r := scan(t, "1 // a comment\n/* nested /* block */ comment */ 2")
	if len(r.errs) != 0 {
		t.Fatalf("unexpected errors: %v", r.errs)
	}
	if diff := cmp.Diff(1.0, tokens[0].Literal); diff != "" {
		t.Errorf("first literal differs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(2.0, tokens[1].Literal); diff != "" {
		t.Errorf("second literal differs (-want +got):\n%s", diff)
	}
}

func TestScan_UnterminatedBlockCommentReportsError(t *testing.T) {
	_, r := scan(t, "/* never closed")
	if len(r.errs) != 1 {
		t.Fatalf("expected 1 error, got %v", r.errs)
	}
}
