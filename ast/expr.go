/*
File    : lumen/ast/expr.go
Package : ast
*/

// Package ast defines the abstract syntax tree produced by the parser.
// Expressions and statements are modeled as tagged variants (an
// interface with an unexported sealing method, plus one pointer-typed
// struct per variant) rather than a visitor hierarchy: every consumer
// (resolver, interpreter) dispatches with a plain Go type switch
// instead of Accept/Visit boilerplate.
//
// Every Expr is a pointer to its concrete struct, so the Expr interface
// value itself is a stable identity: the resolver keys its
// expression-to-depth side-table on the Expr value directly rather than
// assigning a separate integer id, since two distinct expression nodes
// in Go never share a pointer.
package ast

import "github.com/kristofer-hale/lumen/token"

// Expr is any expression node. The method is unexported so only this
// package can introduce new variants.
type Expr interface {
	exprNode()
}

// LiteralExpr is a literal value baked into the source: a number,
// string, boolean, or nil.
type LiteralExpr struct {
	Value interface{} // float64, string, bool, or nil
}

// UnaryExpr applies a prefix operator (! or -) to Right.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
}

// BinaryExpr applies an infix operator to Left and Right. Both operands
// are always evaluated.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// LogicalExpr applies "and"/"or" to Left and Right with short-circuit
// evaluation: Right is evaluated only when necessary.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// GroupingExpr is a parenthesized sub-expression, kept as its own node
// so printers/tools can distinguish it from its Inner expression.
type GroupingExpr struct {
	Inner Expr
}

// VariableExpr reads the value bound to Name.
type VariableExpr struct {
	Name token.Token
}

// AssignExpr assigns Value to the variable Name and evaluates to Value.
type AssignExpr struct {
	Name  token.Token
	Value Expr
}

// CallExpr invokes Callee with Args. ClosingParen is kept for error
// reporting (arity/callability errors point at the call site).
type CallExpr struct {
	Callee       Expr
	ClosingParen token.Token
	Args         []Expr
}

// GetExpr reads a property (or bound method) named Name off Object.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

// SetExpr assigns Value to the property Name on Object.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// ThisExpr resolves to the receiver inside a method body.
type ThisExpr struct {
	Keyword token.Token
}

// SuperExpr resolves Method on the receiver's superclass, used for
// explicit superclass method dispatch inside an overriding method
// (e.g. "super.speak()"). Supplements the core grammar for classes
// declared with a superclass.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
}

func (*LiteralExpr) exprNode()  {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*GetExpr) exprNode()      {}
func (*SetExpr) exprNode()      {}
func (*ThisExpr) exprNode()     {}
func (*SuperExpr) exprNode()    {}
