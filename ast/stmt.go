/*
File    : lumen/ast/stmt.go
Package : ast
*/
package ast

import "github.com/kristofer-hale/lumen/token"

// Stmt is any statement node, sealed to this package the same way Expr
// is.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates Expr for its side effects and discards the
// result.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt evaluates Expr and writes its stringified value followed by
// a newline to the program's stdout.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares Name in the current scope, optionally initializing
// it to Initializer's value (nil means "initialize to nil").
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if not present
}

// BlockStmt is a brace-delimited sequence of statements executed
// against a fresh child environment.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt executes Then when Cond is truthy, otherwise Else (which may
// be nil).
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else-branch
}

// WhileStmt repeatedly executes Body while Cond is truthy. "for" loops
// are desugared into this plus a BlockStmt by the parser, so the
// interpreter only ever has to implement one loop construct.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function (or, when nested inside a
// ClassStmt.Methods, a method) with Params bound positionally to call
// arguments.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt unwinds the nearest enclosing function call with Value
// (nil means "return nil"). Keyword is kept for error reporting.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare "return;"
}

// ClassStmt declares a class named Name with a fixed set of Methods.
// Single inheritance is expressed by Superclass (nil for no parent).
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if the class has no superclass
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}
