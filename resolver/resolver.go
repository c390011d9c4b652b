/*
File    : lumen/resolver/resolver.go
Package : resolver
*/

// Package resolver performs the single static pass between parsing and
// interpretation: for every variable-reading expression it computes how
// many enclosing lexical scopes to walk at runtime to find the
// binding, and records that depth in the interpreter's side-table
// (keyed on the ast.Expr node's own identity, since every node is a
// distinct pointer). Expressions never visited by resolveLocal are
// left out of the table entirely; the interpreter treats an absent
// entry as "look in globals".
//
// The resolver also catches the handful of errors that can only be
// detected with a view of lexical structure: reading a local in its
// own initializer, returning from top-level code, returning a value
// from an initializer, and using "this" outside a class.
package resolver

import (
	"github.com/kristofer-hale/lumen/ast"
	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/token"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classInClass
	classInSubclass
)

// Resolver walks an already-parsed AST once, maintaining a stack of
// lexical scopes plus the single-valued currentFunction/currentClass
// context needed to validate return/this/super placement.
type Resolver struct {
	interp *interpreter.Interpreter
	sink   *diag.Sink

	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver that records resolved depths into interp and
// reports resolution errors to sink.
func New(interp *interpreter.Interpreter, sink *diag.Sink) *Resolver {
	return &Resolver{interp: interp, sink: sink}
}

// Resolve resolves every statement in the program. Given a syntactically
// valid AST, repeated calls over the same tree produce the same
// side-table: the pass has no hidden state beyond the scope stack it
// builds and tears down as it goes.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.sink.Report(s.Keyword.Line, " at '"+s.Keyword.Lexeme+"'", "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.sink.Report(s.Keyword.Line, " at '"+s.Keyword.Lexeme+"'", "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classInClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.sink.Report(s.Superclass.Name.Line, "", "A class can't inherit from itself.")
		}
		r.currentClass = classInSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declType := fnMethod
		if method.Name.Lexeme == "init" {
			declType = fnInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.sink.Report(e.Name.Line, " at '"+e.Name.Lexeme+"'", "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)

	case *ast.LiteralExpr:
		// No sub-expressions, nothing to resolve.

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.sink.Report(e.Keyword.Line, " at 'this'", "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.SuperExpr:
		if r.currentClass == classNone {
			r.sink.Report(e.Keyword.Line, " at 'super'", "Can't use 'super' outside of a class.")
		} else if r.currentClass != classInSubclass {
			r.sink.Report(e.Keyword.Line, " at 'super'", "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	}
}

// resolveLocal walks the scope stack from innermost outward; if name is
// found at depth d (0 = innermost), records (expr → d). An unresolved
// name is left out of the table, which the interpreter treats as a
// global reference.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interp.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present-but-undefined in the innermost local
// scope. Declaring the same name twice in one local scope is an error;
// globals are never declared this way (the global scope isn't on the
// stack) so redeclaration at top level is always fine.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.Report(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully defined in the innermost local scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
