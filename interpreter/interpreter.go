/*
File    : lumen/interpreter/interpreter.go
Package : interpreter
*/

// Package interpreter tree-walks the parsed, resolved AST and produces
// program effects (print output, runtime errors). It evaluates
// statements sequentially against a chain of environment.Environment
// frames rooted at a single globals environment, dispatching on AST
// node type with a plain Go type switch rather than a visitor, exactly
// as the resolver does.
//
// Non-local control flow ("return") is modeled as an explicit result
// sum threaded back up through statement execution (execResult:
// Normal or Returning(value)) instead of a thrown signal, avoiding
// panic/recover on every function call. Every exit path (including the
// error path) restores the caller's current environment pointer before
// returning, so block scopes never leak past the construct that
// created them.
package interpreter

import (
	"fmt"
	"io"

	"github.com/kristofer-hale/lumen/ast"
	"github.com/kristofer-hale/lumen/environment"
	"github.com/kristofer-hale/lumen/token"
)

// execResult is the Normal | Returning(value) sum that statement
// execution threads back up through nested blocks, loops, and
// functions.
type execResult struct {
	isReturn bool
	value    Value
}

var normalResult = execResult{}

func returning(value Value) execResult {
	return execResult{isReturn: true, value: value}
}

// Interpreter holds the running program's global and current
// environments plus the resolver's expr→depth side-table.
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	locals  map[ast.Expr]int
	stdout  io.Writer
}

// New creates an Interpreter that writes "print" output to stdout.
// Globals start empty; callers install the standard library of native
// functions with natives.Register (kept in a separate package so this
// one has no dependency on what natives exist).
func New(stdout io.Writer) *Interpreter {
	globals := environment.New(nil)
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  make(map[ast.Expr]int),
		stdout:  stdout,
	}
}

// Resolve records that expr, when evaluated, should find its binding
// depth scopes out from the environment live at that point. Called by
// the resolver; an expression never passed here is treated as a
// global reference.
func (interp *Interpreter) Resolve(expr ast.Expr, depth int) {
	interp.locals[expr] = depth
}

// Interpret executes a fully parsed and resolved program. Statements
// run sequentially; a runtime error aborts the statement it occurred in
// (every block environment entered so far has already been restored by
// the time the error reaches here) and is returned to the caller, which
// decides how to report it and whether to keep running (the REPL does;
// file mode does not).
func (interp *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if _, err := interp.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (interp *Interpreter) execute(stmt ast.Stmt) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := interp.evaluate(s.Expr)
		return normalResult, err

	case *ast.PrintStmt:
		value, err := interp.evaluate(s.Expr)
		if err != nil {
			return normalResult, err
		}
		fmt.Fprintln(interp.stdout, stringify(value))
		return normalResult, nil

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			var err error
			value, err = interp.evaluate(s.Initializer)
			if err != nil {
				return normalResult, err
			}
		}
		interp.env.Define(s.Name.Lexeme, value)
		return normalResult, nil

	case *ast.BlockStmt:
		return interp.executeBlock(s.Statements, environment.New(interp.env))

	case *ast.IfStmt:
		return interp.executeIf(s)

	case *ast.WhileStmt:
		return interp.executeWhile(s)

	case *ast.FunctionStmt:
		fn := NewFunction(s, interp.env, false)
		interp.env.Define(s.Name.Lexeme, fn)
		return normalResult, nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			var err error
			value, err = interp.evaluate(s.Value)
			if err != nil {
				return normalResult, err
			}
		}
		return returning(value), nil

	case *ast.ClassStmt:
		return interp.executeClass(s)
	}

	return normalResult, nil
}

// executeBlock runs statements against env, restoring the interpreter's
// previous current-environment pointer on every exit path (normal
// completion, an early return, or an error) so a failure partway
// through a block never leaves the interpreter pointed at a scope that
// should already have been torn down.
func (interp *Interpreter) executeBlock(statements []ast.Stmt, env *environment.Environment) (execResult, error) {
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()

	for _, stmt := range statements {
		result, err := interp.execute(stmt)
		if err != nil {
			return normalResult, err
		}
		if result.isReturn {
			return result, nil
		}
	}
	return normalResult, nil
}

func (interp *Interpreter) executeIf(s *ast.IfStmt) (execResult, error) {
	cond, err := interp.evaluate(s.Cond)
	if err != nil {
		return normalResult, err
	}
	if isTruthy(cond) {
		return interp.execute(s.Then)
	}
	if s.Else != nil {
		return interp.execute(s.Else)
	}
	return normalResult, nil
}

func (interp *Interpreter) executeWhile(s *ast.WhileStmt) (execResult, error) {
	for {
		cond, err := interp.evaluate(s.Cond)
		if err != nil {
			return normalResult, err
		}
		if !isTruthy(cond) {
			return normalResult, nil
		}
		result, err := interp.execute(s.Body)
		if err != nil {
			return normalResult, err
		}
		if result.isReturn {
			return result, nil
		}
	}
}

func (interp *Interpreter) executeClass(s *ast.ClassStmt) (execResult, error) {
	var superclass *Class
	if s.Superclass != nil {
		superVal, err := interp.evaluate(s.Superclass)
		if err != nil {
			return normalResult, err
		}
		sc, ok := superVal.(*Class)
		if !ok {
			return normalResult, newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	interp.env.Define(s.Name.Lexeme, nil)

	classEnv := interp.env
	if s.Superclass != nil {
		classEnv = environment.New(interp.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, methodDecl := range s.Methods {
		methods[methodDecl.Name.Lexeme] = NewFunction(methodDecl, classEnv, methodDecl.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	interp.env.AssignAt(0, s.Name.Lexeme, class)
	return normalResult, nil
}

// lookupVariable reads nameTok's value: via the resolved depth when the
// resolver recorded one for expr, otherwise from globals.
func (interp *Interpreter) lookupVariable(nameTok token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := interp.locals[expr]; ok {
		return interp.env.GetAt(depth, nameTok.Lexeme), nil
	}
	value, err := interp.Globals.GetGlobal(nameTok.Lexeme)
	if err != nil {
		return nil, newRuntimeError(nameTok, "%s", err.Error())
	}
	return value, nil
}

// assignVariable writes value to nameTok's binding: via the resolved
// depth when the resolver recorded one for expr, otherwise in globals.
func (interp *Interpreter) assignVariable(nameTok token.Token, expr ast.Expr, value Value) error {
	if depth, ok := interp.locals[expr]; ok {
		interp.env.AssignAt(depth, nameTok.Lexeme, value)
		return nil
	}
	if err := interp.Globals.AssignGlobal(nameTok.Lexeme, value); err != nil {
		return newRuntimeError(nameTok, "%s", err.Error())
	}
	return nil
}
