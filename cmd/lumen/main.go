/*
File    : lumen/cmd/lumen/main.go
Package : main
*/

// Package main is the Lumen command-line entry point. It provides two
// modes of operation:
//  1. REPL mode (no arguments): interactive read-eval-print loop
//  2. File mode (one argument): run a Lumen source file once and exit
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/lexer"
	"github.com/kristofer-hale/lumen/natives"
	"github.com/kristofer-hale/lumen/parser"
	"github.com/kristofer-hale/lumen/repl"
	"github.com/kristofer-hale/lumen/resolver"
)

const (
	version = "v0.1.0"
	author  = "kristofer-hale"
	license = "MIT"
	prompt  = "> "
)

var banner = `
 ██╗     ██╗   ██╗███╗   ███╗███████╗███╗   ██╗
 ██║     ██║   ██║████╗ ████║██╔════╝████╗  ██║
 ██║     ██║   ██║██╔████╔██║█████╗  ██╔██╗ ██║
 ██║     ██║   ██║██║╚██╔╝██║██╔══╝  ██║╚██╗██║
 ███████╗╚██████╔╝██║ ╚═╝ ██║███████╗██║ ╚████║
 ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝
`

var line = "----------------------------------------------------------------"

var redColor = color.New(color.FgRed)

// main dispatches on argument count: no args starts the REPL, one arg
// runs that file, anything else prints a usage message and exits 1.
func main() {
	switch len(os.Args) {
	case 1:
		repler := repl.NewRepl(banner, version, author, line, license, prompt)
		repler.Start(os.Stdin, os.Stdout)
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Printf("Usage: %s [script]\n", os.Args[0])
		os.Exit(1)
	}
}

// runFile reads and runs a single Lumen source file, exiting 0 on
// success and 1 on any lexical, syntactic, resolution, or runtime
// error.
func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	sink := diag.New(os.Stderr)
	interp := interpreter.New(os.Stdout)
	natives.Register(interp)

	tokens := lexer.New(string(source), sink).ScanTokens()
	if sink.HadError() {
		os.Exit(1)
	}

	statements := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		os.Exit(1)
	}

	resolver.New(interp, sink).Resolve(statements)
	if sink.HadError() {
		os.Exit(1)
	}

	if err := interp.Interpret(statements); err != nil {
		if rerr, ok := err.(*interpreter.RuntimeError); ok {
			sink.ReportRuntime(rerr.Token.Line, rerr.Message)
		} else {
			sink.ReportRuntime(0, err.Error())
		}
		os.Exit(1)
	}
}
