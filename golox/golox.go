// Package golox wires the compiler pipeline together: it provides DefaultReporter, a terminal-friendly
// implementation of lox.Reporter, and the Run entry point that drives a source string through the scanner, parser,
// resolver, and interpreter in turn.
package golox

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/loxlang/golox/interpreter"
	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/resolver"
	"github.com/loxlang/golox/scanner"
	"github.com/loxlang/golox/token"
)

// DefaultReporter is the standard lox.Reporter implementation: it prints diagnostics to an io.Writer, colourising
// them when it's writing to a terminal, and remembers whether an error has been reported since the last Reset so
// that a driver can choose the right exit code.
type DefaultReporter struct {
	w        io.Writer
	colour   bool
	replMode bool // relaxes the resolver's unused-variable check; see WithREPLMode below

	src string // the source of the most recent call to Run, used to render the offending line under a diagnostic

	hadError        bool
	hadRuntimeError bool
}

var _ lox.Reporter = (*DefaultReporter)(nil)

// New constructs a DefaultReporter which writes to w. Colour is enabled automatically if w is a terminal.
func New(w io.Writer) *DefaultReporter {
	colour := false
	if f, ok := w.(*os.File); ok {
		colour = term.IsTerminal(int(f.Fd()))
	}
	return &DefaultReporter{w: w, colour: colour}
}

// WithREPLMode marks r as driving an interactive REPL, which relaxes the resolver's unused-variable check for the
// outermost local scope (see resolver.WithREPLMode). Top-level declarations are globals and are never checked.
func (r *DefaultReporter) WithREPLMode() *DefaultReporter {
	r.replMode = true
	return r
}

func (r *DefaultReporter) print(e *lox.Error) {
	prevNoColor := color.NoColor
	color.NoColor = !r.colour
	defer func() { color.NoColor = prevNoColor }()
	fmt.Fprintln(r.w, e.Error())
}

// Error reports a lexing error at the given line and column.
func (r *DefaultReporter) Error(line, column int, format string, args ...any) {
	r.hadError = true
	r.print(&lox.Error{
		Line:    line,
		Column:  column,
		Kind:    "syntax error",
		Msg:     fmt.Sprintf(format, args...),
		SrcLine: lineText(r.src, line),
	})
}

// ParseError reports a parser or resolver error attributed to tok.
func (r *DefaultReporter) ParseError(tok token.Token, format string, args ...any) {
	r.hadError = true
	msg := fmt.Sprintf(format, args...)
	if tok.Type == token.EOF {
		msg = "at end: " + msg
	} else {
		msg = fmt.Sprintf("at %q: %s", tok.Lexeme, msg)
	}
	r.print(&lox.Error{
		Line:    tok.Line,
		Column:  tok.Column,
		Kind:    "syntax error",
		Msg:     msg,
		SrcLine: lineText(r.src, tok.Line),
	})
}

// RuntimeError reports a failed runtime check.
func (r *DefaultReporter) RuntimeError(err *lox.RuntimeError) {
	r.hadRuntimeError = true
	r.print(&lox.Error{
		Line:    err.Token.Line,
		Column:  err.Token.Column,
		Kind:    "runtime error",
		Msg:     err.Msg,
		SrcLine: lineText(r.src, err.Token.Line),
	})
}

// ExceptionError reports an index or native-call failure that has no associated token.
func (r *DefaultReporter) ExceptionError(err *lox.ExceptionError) {
	r.hadRuntimeError = true
	r.print(&lox.Error{Kind: "error", Msg: err.Msg})
}

// HadError reports whether any static error has been reported since the last call to Reset.
func (r *DefaultReporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether any runtime or exception error has been reported since the last call to Reset.
func (r *DefaultReporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears the HadError/HadRuntimeError flags, for reuse across REPL lines.
func (r *DefaultReporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

// Run scans, parses, resolves, and interprets source using interp, which holds interpreter state (globals, the
// resolver's locals map) across calls. It's the re-entrancy point used by the import statement: a nested Run call
// shares interp with its caller but scopes error reporting to its own source text.
func (r *DefaultReporter) Run(source string, interp lox.Interpreter) error {
	prevSrc := r.src
	r.src = source
	defer func() { r.src = prevSrc }()

	s := scanner.New(source, r)
	tokens := s.Scan()
	if r.HadError() {
		return nil
	}

	p := parser.New(tokens, r)
	program := p.Parse()
	if r.HadError() {
		return nil
	}

	in, ok := interp.(*interpreter.Interpreter)
	if !ok {
		return fmt.Errorf("golox: interp must be *interpreter.Interpreter, got %T", interp)
	}
	var opts []resolver.Option
	if r.replMode {
		opts = append(opts, resolver.WithREPLMode())
	}
	resolver.Resolve(program, in, r, opts...)
	if r.HadError() {
		return nil
	}

	return interp.Interpret(program)
}

func lineText(src string, line int) string {
	if src == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
