/*
File    : lumen/interpreter/expressions.go
Package : interpreter
*/
package interpreter

import (
	"github.com/kristofer-hale/lumen/ast"
	"github.com/kristofer-hale/lumen/token"
)

// evaluate dispatches on expr's concrete type, mirroring execute's
// plain type switch over statements.
func (interp *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return e.Value, nil

	case *ast.GroupingExpr:
		return interp.evaluate(e.Inner)

	case *ast.UnaryExpr:
		return interp.evaluateUnary(e)

	case *ast.BinaryExpr:
		return interp.evaluateBinary(e)

	case *ast.LogicalExpr:
		return interp.evaluateLogical(e)

	case *ast.VariableExpr:
		return interp.lookupVariable(e.Name, e)

	case *ast.AssignExpr:
		value, err := interp.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := interp.assignVariable(e.Name, e, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.CallExpr:
		return interp.evaluateCall(e)

	case *ast.GetExpr:
		return interp.evaluateGet(e)

	case *ast.SetExpr:
		return interp.evaluateSet(e)

	case *ast.ThisExpr:
		return interp.lookupVariable(e.Keyword, e)

	case *ast.SuperExpr:
		return interp.evaluateSuper(e)
	}

	return nil, nil
}

func (interp *Interpreter) evaluateUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return -num, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	return nil, nil
}

func (interp *Interpreter) evaluateLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return interp.evaluate(e.Right)
}

func (interp *Interpreter) evaluateBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l - r, nil
	case token.SLASH:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l / r, nil
	case token.STAR:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l * r, nil
	case token.PLUS:
		if l, r, ok := numberOperands(left, right); ok {
			return l + r, nil
		}
		if l, r, ok := stringOperands(left, right); ok {
			return l + r, nil
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	case token.GREATER:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l > r, nil
	case token.GREATER_EQUAL:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l >= r, nil
	case token.LESS:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l < r, nil
	case token.LESS_EQUAL:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return l <= r, nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	return nil, nil
}

func numberOperands(left, right Value) (float64, float64, bool) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	return l, r, lok && rok
}

func stringOperands(left, right Value) (string, string, bool) {
	l, lok := left.(string)
	r, rok := right.(string)
	return l, r, lok && rok
}

func (interp *Interpreter) evaluateCall(e *ast.CallExpr) (Value, error) {
	callee, err := interp.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, argExpr := range e.Args {
		arg, err := interp.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(e.ClosingParen, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(interp, args)
}

func (interp *Interpreter) evaluateGet(e *ast.GetExpr) (Value, error) {
	object, err := interp.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	value, found := instance.get(e.Name.Lexeme)
	if !found {
		return nil, newRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return value, nil
}

func (interp *Interpreter) evaluateSet(e *ast.SetExpr) (Value, error) {
	object, err := interp.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := interp.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.set(e.Name.Lexeme, value)
	return value, nil
}

func (interp *Interpreter) evaluateSuper(e *ast.SuperExpr) (Value, error) {
	depth := interp.locals[e]
	superVal := interp.env.GetAt(depth, "super")
	superclass, _ := superVal.(*Class)

	// "this" is always defined one environment layer closer than
	// "super" — resolveClass opens the "super" scope first, then the
	// "this" scope, which at runtime is the layer bind adds over the
	// method's closure.
	thisVal := interp.env.GetAt(depth-1, "this")
	instance, _ := thisVal.(*Instance)

	method, found := superclass.FindMethod(e.Method.Lexeme)
	if !found {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}
