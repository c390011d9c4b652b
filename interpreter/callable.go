/*
File    : lumen/interpreter/callable.go
Package : interpreter
*/
package interpreter

import (
	"github.com/kristofer-hale/lumen/ast"
	"github.com/kristofer-hale/lumen/environment"
)

// Callable is any Value that can appear as the callee of a CallExpr:
// native functions, user-defined functions/methods, and classes
// (calling a class constructs an instance).
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method. It owns a reference
// to its closure environment (the environment live at its declaration
// site), its parameter list, and its body; arity is fixed once at
// construction. isInitializer marks a class's "init" method, which
// returns "this" for a bare "return;" instead of nil.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *environment.Environment
	isInitializer bool
}

// NewFunction wraps decl as a Function closing over closure.
func NewFunction(decl *ast.FunctionStmt, closure *environment.Environment, isInitializer bool) *Function {
	return &Function{declaration: decl, closure: closure, isInitializer: isInitializer}
}

// Arity is the fixed parameter count of the function.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call creates a new environment parented at the function's closure,
// binds parameters to args positionally, and executes the body as a
// block. An early "return value;" unwinds through any nested blocks and
// yields value; a function that completes normally yields nil. In an
// initializer, a bare "return;" yields the receiver instead.
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	callEnv := environment.New(f.closure)
	for i, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	result, err := interp.executeBlock(f.declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.isReturn {
		return result.value, nil
	}
	return nil, nil
}

// bind returns a copy of the method whose closure additionally binds
// "this" to instance, implementing bound-method dispatch: every
// instance gets its own environment layer over the class's defining
// environment.
func (f *Function) bind(instance *Instance) *Function {
	env := environment.New(f.closure)
	env.Define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// NativeFunction exposes a host-implemented callable to Lumen code,
// such as the global clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

// NewNativeFunction wraps a Go function as a Lumen-callable native.
func NewNativeFunction(name string, arity int, fn func(interp *Interpreter, args []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

// DefineGlobal installs a native function directly into the
// interpreter's global environment. Used by the natives package to
// register its builtins at startup without exposing Globals' field
// layout.
func (interp *Interpreter) DefineGlobal(name string, fn *NativeFunction) {
	interp.Globals.Define(name, fn)
}

// Arity returns the native function's fixed argument count.
func (n *NativeFunction) Arity() int { return n.arity }

// Call invokes the native Go function backing this value.
func (n *NativeFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	return n.fn(interp, args)
}

func (n *NativeFunction) String() string {
	return "<native fn " + n.name + ">"
}
