/*
File    : lumen/parser/parser.go
Package : parser
*/

// Package parser implements a recursive-descent, precedence-climbing
// parser for Lumen. It turns the flat token.Token sequence from the
// lexer into a list of ast.Stmt, with almost one grammar rule per
// method (program, declaration, statement, expression, assignment,
// logic_or, ..., primary).
//
// Parse errors do not panic the process: a parse error is an internal
// control-flow signal (a Go panic/recover pair scoped to this package,
// thrown at the point of failure and caught at the nearest statement
// boundary) caught by the declaration-level loop, which reports it
// through the diag.Sink and synchronizes by discarding tokens up to
// the next likely statement boundary. This lets a single parse surface
// every syntax error in the input instead of stopping at the first
// one.
package parser

import (
	"github.com/kristofer-hale/lumen/ast"
	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/token"
)

// Parser consumes a token slice and produces an AST.
type Parser struct {
	tokens  []token.Token
	current int
	sink    *diag.Sink
}

// New creates a Parser over tokens that reports syntax errors to sink.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// parseError is the internal control-flow signal thrown by consume and
// the primary-expression parser when the input doesn't match the
// grammar. It is always recovered by parseDeclaration.
type parseError struct{}

// Parse runs program → declaration* EOF and returns every statement
// that parsed successfully. A failed declaration contributes no
// statement to the result; parsing continues past it via
// synchronize.
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// parseDeclaration → classDecl | funDecl | varDecl | statement, with
// panic-mode recovery: any parseError thrown while parsing this
// declaration is caught here, reported, and followed by
// synchronize so the next declaration gets a clean start.
func (p *Parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl → "class" IDENT ("<" IDENT)? "{" function* "}"
//
// The optional "<" IDENT clause names a single superclass; method
// bodies are parsed the same way funDecl parses a function body.
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function → IDENT "(" params? ")" block, shared by funDecl and class
// method declarations (kind is "function" or "method", used only for
// error messages).
func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// varDecl → "var" IDENT ("=" expression)? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

// statement → exprStmt | printStmt | block | ifStmt | whileStmt |
// forStmt | returnStmt
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStmt → "for" "(" (varDecl | exprStmt | ";") expression? ";" expression? ")" statement
//
// Desugared at parse time into a block containing the initializer
// followed by a while loop whose body is a block of [original body,
// update]. A missing condition becomes literal true so the loop runs
// unconditionally in the absence of one.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.check(token.VAR):
		p.advance()
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}

	if condition == nil {
		condition = &ast.LiteralExpr{Value: true}
	}
	body = &ast.WhileStmt{Cond: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

// ifStmt → "if" "(" expression ")" statement ("else" statement)?
func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch}
}

// printStmt → "print" expression ";"
func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

// returnStmt → "return" expression? ";"
func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

// block → "{" declaration* "}"
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

// exprStmt → expression ";"
func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

// expression → assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → (call ".")? IDENT "=" assignment | logic_or
//
// Assignment is right-associative. The left-hand side is parsed as a
// plain r-value first; if '=' follows, that l-value is re-interpreted
// as an assignment target (Variable becomes Assign, Get becomes Set).
// Any other target is a reported error that does not throw, so parsing
// can continue with the (unmodified) expression already parsed.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

// logic_or → logic_and ("or" logic_and)*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// logic_and → equality ("and" equality)*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality → comparison (("!="|"==") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison → term ((">"|">="|"<"|"<=") term)*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term → factor (("-"|"+") factor)*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor → unary (("/"|"*") unary)*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary → ("!"|"-") unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

// call → primary (("(" args? ")") | ("." IDENT))*
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// finishCall parses the argument list and closing ')' of a call whose
// callee has already been parsed, enforcing the same 255-argument
// ceiling as parameter lists.
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	closingParen := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, ClosingParen: closingParen, Args: args}
}

// primary → NUMBER | STRING | "true" | "false" | "nil"
//
//	| "(" expression ")" | IDENT | "this"
//	| "super" "." IDENT
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: false}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: true}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.LiteralExpr{Value: p.previous().Literal}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.THIS):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Inner: expr}
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}

// synchronize discards tokens until it lands just after a ';' or right
// before a token that begins a new statement, guaranteeing parsing
// always makes progress past an error.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}

// consume advances past the current token if it has type typ, else
// reports message at the current token and throws a parseError.
func (p *Parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt reports a syntax error positioned at tok and returns the
// parseError signal for the caller to panic with (errorAt does not
// panic itself, so call sites that should recover from a missing
// token, like the parameter-count check, can report without
// unwinding).
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.sink.Report(tok.Line, where, message)
	return parseError{}
}

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}
