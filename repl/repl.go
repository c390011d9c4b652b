/*
File    : lumen/repl/repl.go
Package : repl
*/

// Package repl implements the Read-Eval-Print Loop for Lumen. Each line
// the user enters runs through the full pipeline — lexer, parser,
// resolver, interpreter — against a single Interpreter instance that
// persists across lines, so a variable or function defined on one line
// is visible on the next. The diagnostic sink is reset between lines so
// a mistake never suppresses the lines that follow it.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/lexer"
	"github.com/kristofer-hale/lumen/natives"
	"github.com/kristofer-hale/lumen/parser"
	"github.com/kristofer-hale/lumen/resolver"
)

// Color definitions for REPL output. Only the startup banner is
// colored; diagnostics and "print" output are written uncolored.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl with the given banner and prompt configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and basic usage
// instructions to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Lumen!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop until the user exits or stdin closes.
// Writer receives both banner/diagnostic output and "print" output from
// running Lumen code. A single Interpreter persists across the whole
// session; a single diag.Sink is reused and Reset after every line.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sink := diag.New(writer)
	interp := interpreter.New(writer)
	natives.Register(interp)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" || line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		sink.Reset()
		r.runLine(line, sink, interp)
	}
}

// runLine drives one line through the lexer, parser, resolver, and
// interpreter, reporting the first stage that fails and skipping
// the stages after it. It never aborts the REPL: a bad line only
// affects itself.
func (r *Repl) runLine(line string, sink *diag.Sink, interp *interpreter.Interpreter) {
	tokens := lexer.New(line, sink).ScanTokens()
	if sink.HadError() {
		return
	}

	statements := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		return
	}

	resolver.New(interp, sink).Resolve(statements)
	if sink.HadError() {
		return
	}

	if err := interp.Interpret(statements); err != nil {
		if rerr, ok := err.(*interpreter.RuntimeError); ok {
			sink.ReportRuntime(rerr.Token.Line, rerr.Message)
		} else {
			sink.ReportRuntime(0, err.Error())
		}
	}
}
