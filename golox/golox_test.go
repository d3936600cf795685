package golox_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loxlang/golox/golox"
	"github.com/loxlang/golox/interpreter"
)

// run scans, parses, resolves, and interprets src, returning everything written to stdout by print statements and
// the diagnostics the reporter printed (errors are never colourised here since errBuf isn't a terminal).
func run(t *testing.T, src string) (stdout, diagnostics string) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %s", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	var errBuf bytes.Buffer
	reporter := golox.New(&errBuf)
	interp := interpreter.New(reporter)

	// Run's error return mirrors what's already in errBuf (a runtime/exception error, or a propagated import
	// failure): callers assert against the diagnostics text, not this return value, so it's intentionally ignored.
	_ = reporter.Run(src, interp)

	w.Close()
	var out bytes.Buffer
	io.Copy(&out, r)
	os.Stdout = origStdout

	return out.String(), errBuf.String()
}

func TestRun_HelloWorld(t *testing.T) {
	stdout, diag := run(t, `print "hello, world";`)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("hello, world\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_Arithmetic(t *testing.T) {
	stdout, _ := run(t, `print 1 + 2 * 3 - (4 / 2);`)
	if diff := cmp.Diff("5\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_ClosuresAndFunctions(t *testing.T) {
	src := `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`
	stdout, diag := run(t, src)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("1\n2\n3\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_Lambda(t *testing.T) {
	stdout, _ := run(t, `print (fun (x) { return x * x; })(5);`)
	if diff := cmp.Diff("25\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_TernaryAndComma(t *testing.T) {
	stdout, _ := run(t, `print (1 < 2 ? "yes" : "no"); print (1, 2, 3);`)
	if diff := cmp.Diff("yes\n3\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_BreakExitsLoop(t *testing.T) {
	src := `
		var i = 0;
		while (true) {
			if (i == 3) break;
			print i;
			i = i + 1;
		}
	`
	stdout, _ := run(t, src)
	if diff := cmp.Diff("0\n1\n2\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_ForLoopDesugaring(t *testing.T) {
	stdout, _ := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if diff := cmp.Diff("0\n1\n2\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_ArraysIndexAndMutate(t *testing.T) {
	src := `
		var a = [1, 2, 3];
		a[1] = 99;
		print a[1];
		print a;
	`
	stdout, _ := run(t, src)
	if diff := cmp.Diff("99\n[1,99,3]\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_StringIndexing(t *testing.T) {
	stdout, _ := run(t, `var s = "abcde"; print s[0]; print s[4];`)
	if diff := cmp.Diff("a\ne\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_NegativeArrayIndexIsOutOfRange(t *testing.T) {
	// Out-of-range is an index/exception error (no token), not a runtime error: see lox.ExceptionError.
	stdout, diag := run(t, `var a = [1, 2, 3]; print a[-1];`)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(diag, "error") {
		t.Errorf("expected an error diagnostic, got %q", diag)
	}
}

func TestRun_NonIntegerIndexIsTruncated(t *testing.T) {
	stdout, diag := run(t, `var a = [10, 20, 30]; print a[1.9];`)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("20\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_ClassesAndMultipleInheritance(t *testing.T) {
	src := `
		class A {
			greet() { return "A"; }
		}
		class B {
			greet() { return "B"; }
		}
		class C < A, B {}
		print C().greet();
	`
	stdout, diag := run(t, src)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("A\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_GettersAndClassMethods(t *testing.T) {
	src := `
		class Circle {
			init(radius) { this.radius = radius; }
			class area() { return 1; }
			pi { return 3.14159; }
		}
		var c = Circle(2);
		print c.pi;
		print Circle.area();
	`
	stdout, _ := run(t, src)
	if diff := cmp.Diff("3.14159\n1\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_PlusStringifiesWhenEitherOperandIsAString(t *testing.T) {
	stdout, diag := run(t, `print 1 + "two"; print "count: " + 3;`)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("1two\ncount: 3\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_RuntimeErrorReported(t *testing.T) {
	stdout, diag := run(t, `print true + false;`)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(diag, "runtime error") {
		t.Errorf("expected a runtime error diagnostic, got %q", diag)
	}
}

func TestRun_SyntaxErrorReported(t *testing.T) {
	stdout, diag := run(t, `print ;`)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(diag, "syntax error") {
		t.Errorf("expected a syntax error diagnostic, got %q", diag)
	}
}

func TestRun_NativeFunctions(t *testing.T) {
	src := `
		var a = array(3);
		print len(a);
		print int(4.9);
		print int("A");
		print chr(65);
	`
	stdout, _ := run(t, src)
	if diff := cmp.Diff("3\n4\n65\nA\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_DivisionByZeroIsRuntimeError(t *testing.T) {
	stdout, diag := run(t, `print 1 / 0;`)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(diag, "runtime error") {
		t.Errorf("expected a runtime error diagnostic, got %q", diag)
	}
}

func TestRun_ReadingUninitialisedVariableIsRuntimeError(t *testing.T) {
	stdout, diag := run(t, `var x; print x;`)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(diag, "runtime error") {
		t.Errorf("expected a runtime error diagnostic, got %q", diag)
	}
}

func TestRun_Fibonacci(t *testing.T) {
	src := `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`
	stdout, diag := run(t, src)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("55\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_FieldShadowsGetter(t *testing.T) {
	src := `
		class Box {
			value { return "from getter"; }
		}
		var b = Box();
		b.value = "from field";
		print b.value;
	`
	stdout, diag := run(t, src)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("from field\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_InnerDispatchesToSuperclassImplementation(t *testing.T) {
	src := `
		class A {
			class greet() { print "A"; }
		}
		class B < A {
			class greet() {
				inner(B, B, "greet")();
				print "B";
			}
		}
		B.greet();
	`
	stdout, diag := run(t, src)
	if diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("A\nB\n", stdout); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}

func TestRun_REPLModePrintsExpressionStatementResults(t *testing.T) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %s", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	var errBuf bytes.Buffer
	reporter := golox.New(&errBuf).WithREPLMode()
	interp := interpreter.New(reporter, interpreter.WithREPLMode())

	if err := reporter.Run("1 + 2;", interp); err != nil {
		t.Fatalf("Run returned an error: %s", err)
	}

	w.Close()
	var out bytes.Buffer
	io.Copy(&out, r)
	os.Stdout = origStdout

	if diag := errBuf.String(); diag != "" {
		t.Fatalf("unexpected diagnostics: %s", diag)
	}
	if diff := cmp.Diff("3\n", out.String()); diff != "" {
		t.Errorf("stdout differs (-want +got):\n%s", diff)
	}
}
