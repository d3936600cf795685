// Package lox declares the Reporter interface that the scanner, parser, resolver, and interpreter report
// diagnostics through, along with the diagnostic types (Error, RuntimeError, ExceptionError) that flow through it.
// It sits at the bottom of the dependency graph so that every pipeline stage can depend on it without creating an
// import cycle; the concrete Reporter implementation and the Run entry point that drives a source string through
// the whole pipeline live in package golox.
package lox

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/loxlang/golox/token"
)

// Error describes a single diagnostic attributed to a line and column of Lox source code.
type Error struct {
	Line    int
	Column  int
	Kind    string // e.g. "syntax error", "runtime error"
	Msg     string
	SrcLine string // the source line the error occurred on, if known; used to render a caret
}

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// Error renders the diagnostic in the style of:
//
//	2:7: syntax error: unterminated string literal
//	print "bar;
//	      ^
func (e *Error) Error() string {
	var b strings.Builder
	bold.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	red.Fprintf(&b, "%s: ", e.Kind)
	fmt.Fprint(&b, e.Msg)
	if e.SrcLine != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, e.SrcLine)
		col := e.Column - 1
		if col < 0 {
			col = 0
		}
		if col > len(e.SrcLine) {
			col = len(e.SrcLine)
		}
		fmt.Fprint(&b, strings.Repeat(" ", runewidth.StringWidth(e.SrcLine[:col])))
		red.Fprint(&b, "^")
	}
	return b.String()
}

// Errors is a list of *Error. It implements error so that a possibly-empty accumulator can be returned directly.
type Errors []*Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns e as an error if it's non-empty, otherwise nil. This should be preferred over returning Errors
// directly so that a caller's `err != nil` check behaves correctly on an empty accumulator.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// RuntimeError is a runtime type/arity/scope check failure. It always carries the token whose evaluation or
// execution triggered it.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: runtime error: %s", e.Token.Line, e.Token.Column, e.Msg)
}

// RuntimeErrorf constructs a *RuntimeError attributed to tok.
func RuntimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// ExceptionError is an index or native-call failure. Unlike RuntimeError, it isn't attributed to a token: the
// failing site is identified by name in the message (e.g. the native function's name).
type ExceptionError struct {
	Msg string
}

func (e *ExceptionError) Error() string {
	return "error: " + e.Msg
}

// ExceptionErrorf constructs an *ExceptionError.
func ExceptionErrorf(format string, args ...any) *ExceptionError {
	return &ExceptionError{Msg: fmt.Sprintf(format, args...)}
}
