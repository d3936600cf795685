package lox

import (
	"github.com/loxlang/golox/ast"
	"github.com/loxlang/golox/token"
)

// Interpreter is the capability that Reporter.Run needs from an interpreter in order to run a resolved program.
// interpreter.Interpreter satisfies this interface; Reporter lives below interpreter in the dependency graph so it
// can't import that package's concrete type without creating a cycle.
type Interpreter interface {
	Interpret(program *ast.Program) error
}

// Reporter is the interface that the scanner, parser, resolver, and interpreter report diagnostics through. It's
// the one seam between the compiler pipeline (the CORE) and the embedding program.
type Reporter interface {
	// Error reports a lexing error at the given line and column.
	Error(line, column int, format string, args ...any)
	// ParseError reports a parser or resolver error attributed to tok.
	ParseError(tok token.Token, format string, args ...any)
	// RuntimeError reports a failed runtime check.
	RuntimeError(err *RuntimeError)
	// ExceptionError reports an index or native-call failure that has no associated token.
	ExceptionError(err *ExceptionError)
	// Run scans, parses, resolves, and interprets source, using interp to hold state across calls. It's the
	// re-entrancy point used by the import statement.
	Run(source string, interp Interpreter) error
	// HadError reports whether any static error has been reported since the last call to Reset.
	HadError() bool
	// HadRuntimeError reports whether any runtime or exception error has been reported since the last call to Reset.
	HadRuntimeError() bool
	// Reset clears the HadError/HadRuntimeError flags, for reuse across REPL lines.
	Reset()
}
