/*
File    : lumen/resolver/resolver_test.go
Package : resolver_test
*/
package resolver_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/lexer"
	"github.com/kristofer-hale/lumen/parser"
	"github.com/kristofer-hale/lumen/resolver"
)

// resolve lexes and parses source (which must be syntactically valid),
// then resolves it against a fresh Interpreter, returning whatever the
// diag.Sink recorded.
func resolve(t *testing.T, source string) (*diag.Sink, string) {
	t.Helper()

	var buf bytes.Buffer
	sink := diag.New(&buf)

	tokens := lexer.New(source, sink).ScanTokens()
	require.False(t, sink.HadError())

	statements := parser.New(tokens, sink).Parse()
	require.False(t, sink.HadError())

	sink.Reset()
	interp := interpreter.New(&bytes.Buffer{})
	resolver.New(interp, sink).Resolve(statements)

	return sink, buf.String()
}

func TestResolve_ValidProgramReportsNoErrors(t *testing.T) {
	sink, _ := resolve(t, `
		var a = 1;
		fun add(x, y) { return x + y; }
		print add(a, 2);
	`)
	assert.False(t, sink.HadError())
}

func TestResolve_SelfReadInOwnInitializerIsError(t *testing.T) {
	sink, out := resolve(t, `{ var a = a; }`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't read local variable in its own initializer."))
}

func TestResolve_GlobalSelfReadInInitializerIsAllowed(t *testing.T) {
	sink, _ := resolve(t, `var a = a;`)
	assert.False(t, sink.HadError())
}

func TestResolve_DuplicateLocalDeclarationIsError(t *testing.T) {
	sink, out := resolve(t, `{ var a = 1; var a = 2; }`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Already a variable with this name in this scope."))
}

func TestResolve_DuplicateGlobalDeclarationIsAllowed(t *testing.T) {
	sink, _ := resolve(t, `var a = 1; var a = 2;`)
	assert.False(t, sink.HadError())
}

func TestResolve_ReturnFromTopLevelIsError(t *testing.T) {
	sink, out := resolve(t, `return 1;`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't return from top-level code."))
}

func TestResolve_ReturnValueFromInitializerIsError(t *testing.T) {
	sink, out := resolve(t, `
		class Foo {
			init() { return 1; }
		}
	`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't return a value from an initializer."))
}

func TestResolve_BareReturnFromInitializerIsAllowed(t *testing.T) {
	sink, _ := resolve(t, `
		class Foo {
			init() { return; }
		}
	`)
	assert.False(t, sink.HadError())
}

func TestResolve_ThisOutsideClassIsError(t *testing.T) {
	sink, out := resolve(t, `print this;`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't use 'this' outside of a class."))
}

func TestResolve_ThisInsideMethodIsAllowed(t *testing.T) {
	sink, _ := resolve(t, `
		class Foo {
			bar() { return this; }
		}
	`)
	assert.False(t, sink.HadError())
}

func TestResolve_SuperOutsideClassIsError(t *testing.T) {
	sink, out := resolve(t, `print super.foo();`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't use 'super' outside of a class."))
}

func TestResolve_SuperInClassWithNoSuperclassIsError(t *testing.T) {
	sink, out := resolve(t, `
		class Foo {
			bar() { return super.bar(); }
		}
	`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "Can't use 'super' in a class with no superclass."))
}

func TestResolve_SuperInSubclassIsAllowed(t *testing.T) {
	sink, _ := resolve(t, `
		class Base {
			bar() { return 1; }
		}
		class Derived < Base {
			bar() { return super.bar(); }
		}
	`)
	assert.False(t, sink.HadError())
}

func TestResolve_ClassInheritingFromItselfIsError(t *testing.T) {
	sink, out := resolve(t, `class Foo < Foo {}`)
	assert.True(t, sink.HadError())
	assert.True(t, strings.Contains(out, "A class can't inherit from itself."))
}

func TestResolve_FunctionParametersShadowEnclosingScope(t *testing.T) {
	sink, _ := resolve(t, `
		var x = 1;
		fun f(x) { return x; }
		print f(2);
	`)
	assert.False(t, sink.HadError())
}
