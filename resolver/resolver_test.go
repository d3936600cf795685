package resolver_test

import (
	"fmt"
	"testing"

	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/resolver"
	"github.com/loxlang/golox/scanner"
	"github.com/loxlang/golox/token"
)

type fakeReporter struct {
	parseErrs []string
}

var _ lox.Reporter = (*fakeReporter)(nil)

func (f *fakeReporter) Error(int, int, string, ...any) {}
func (f *fakeReporter) ParseError(tok token.Token, format string, args ...any) {
	f.parseErrs = append(f.parseErrs, fmt.Sprintf("%s: "+format, append([]any{tok.Lexeme}, args...)...))
}
func (f *fakeReporter) RuntimeError(*lox.RuntimeError)     {}
func (f *fakeReporter) ExceptionError(*lox.ExceptionError) {}
func (f *fakeReporter) Run(string, lox.Interpreter) error  { return nil }
func (f *fakeReporter) HadError() bool                     { return len(f.parseErrs) > 0 }
func (f *fakeReporter) HadRuntimeError() bool              { return false }
func (f *fakeReporter) Reset()                             { f.parseErrs = nil }

type recordingInterp struct {
	depths map[ast.Expr]int
}

func (r *recordingInterp) Resolve(expr ast.Expr, depth int) {
	if r.depths == nil {
		r.depths = make(map[ast.Expr]int)
	}
	r.depths[expr] = depth
}

func parseProgram(t *testing.T, src string) (*ast.Program, *fakeReporter) {
	t.Helper()
	r := &fakeReporter{}
	tokens := scanner.New(src, r).Scan()
	p := parser.New(tokens, r)
	program := p.Parse()
	return program, r
}

func TestResolve_BreakOutsideLoopReportsError(t *testing.T) {
	program, r := parseProgram(t, "break;")
	if r.HadError() {
		t.Fatalf("unexpected parse error: %v", r.parseErrs)
	}
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for break outside a loop")
	}
}

func TestResolve_BreakInsideLoopIsFine(t *testing.T) {
	program, r := parseProgram(t, "while (true) { break; }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if r.HadError() {
		t.Errorf("unexpected resolver error: %v", r.parseErrs)
	}
}

func TestResolve_ReturnOutsideFunctionReportsError(t *testing.T) {
	program, r := parseProgram(t, "return 1;")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for return outside a function")
	}
}

func TestResolve_ReturnValueFromInitialiserReportsError(t *testing.T) {
	program, r := parseProgram(t, "class A { init() { return 1; } }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for returning a value from init")
	}
}

func TestResolve_ThisOutsideMethodReportsError(t *testing.T) {
	program, r := parseProgram(t, "print this;")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for this outside a method")
	}
}

func TestResolve_SelfInheritanceReportsError(t *testing.T) {
	program, r := parseProgram(t, "class A < A {}")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for a class inheriting from itself")
	}
}

func TestResolve_ReadOwnInitialiserReportsError(t *testing.T) {
	program, r := parseProgram(t, "{ var a = a; }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for reading a variable in its own initialiser")
	}
}

func TestResolve_UnusedLocalReportsError(t *testing.T) {
	program, r := parseProgram(t, "{ var a = 1; }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for an unused local variable")
	}
}

func TestResolve_UnusedTopLevelIsFine(t *testing.T) {
	program, r := parseProgram(t, "var a = 1;")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if r.HadError() {
		t.Errorf("unexpected resolver error for unused top-level variable: %v", r.parseErrs)
	}
}

func TestResolve_REPLModeRelaxesOutermostBlock(t *testing.T) {
	program, r := parseProgram(t, "{ var a = 1; }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r, resolver.WithREPLMode())
	if r.HadError() {
		t.Errorf("REPL mode should relax the unused check for the outermost block: %v", r.parseErrs)
	}
}

func TestResolve_REPLModeStillFlagsNestedUnused(t *testing.T) {
	program, r := parseProgram(t, "{ { var a = 1; } }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r, resolver.WithREPLMode())
	if !r.HadError() {
		t.Fatal("REPL mode should still flag unused locals inside a block nested below the outermost one")
	}
}

func TestResolve_LocalVariableRecordsDepth(t *testing.T) {
	program, r := parseProgram(t, "{ var a = 1; print a; }")
	if r.HadError() {
		t.Fatalf("unexpected parse error: %v", r.parseErrs)
	}
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if r.HadError() {
		t.Fatalf("unexpected resolver error: %v", r.parseErrs)
	}
	if len(interp.depths) != 1 {
		t.Fatalf("expected exactly one resolved expression, got %d", len(interp.depths))
	}
	for _, depth := range interp.depths {
		if depth != 0 {
			t.Errorf("expected depth 0 for a variable read in its own block, got %d", depth)
		}
	}
}

func TestResolve_DuplicateDeclarationInSameScopeReportsError(t *testing.T) {
	program, r := parseProgram(t, "{ var a = 1; var a = 2; print a; }")
	interp := &recordingInterp{}
	resolver.Resolve(program, interp, r)
	if !r.HadError() {
		t.Fatal("expected resolver to report an error for redeclaring a in the same scope")
	}
}
