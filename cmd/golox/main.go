// Command golox runs Lox source files, or starts an interactive REPL if none is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"

	"github.com/loxlang/golox/golox"
	"github.com/loxlang/golox/interpreter"
)

var cmd = flag.String("c", "", "program passed in as a string")

// Exit codes follow the convention used by most Unix interpreters: a usage error exits 64, a syntax error in the
// input program exits 65, and a runtime error exits 70.
const (
	exitUsageError   = 64
	exitSyntaxError  = 65
	exitRuntimeError = 70
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: golox [options] [script]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *cmd != "" {
		os.Exit(runSource(*cmd))
	}

	switch len(flag.Args()) {
	case 0:
		os.Exit(runREPL())
	case 1:
		os.Exit(runFile(flag.Arg(0)))
	default:
		usage()
		os.Exit(exitUsageError)
	}
}

func runSource(source string) int {
	reporter := golox.New(os.Stderr)
	interp := interpreter.New(reporter)
	if err := reporter.Run(source, interp); err != nil {
		// Already reported through reporter above; this error only signals exit status.
		return exitRuntimeError
	}
	switch {
	case reporter.HadError():
		return exitSyntaxError
	case reporter.HadRuntimeError():
		return exitRuntimeError
	default:
		return 0
	}
}

func runFile(name string) int {
	data, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return runSource(string(data))
}

func runREPL() int {
	cfg := &readline.Config{Prompt: ">>> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".golox_history")
	} else {
		fmt.Fprintf(os.Stderr, "can't find home directory (%s); command history won't be saved\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting REPL: %s\n", err)
		return exitRuntimeError
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "Welcome to Lox!")

	reporter := golox.New(os.Stderr).WithREPLMode()
	interp := interpreter.New(reporter, interpreter.WithREPLMode())
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintf(os.Stderr, "reading input: %s\n", err)
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		reporter.Reset()
		// Run's error return is already reported through reporter; nothing further to do with it here.
		_ = reporter.Run(line, interp)
	}
	return 0
}
