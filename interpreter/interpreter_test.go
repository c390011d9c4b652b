/*
File    : lumen/interpreter/interpreter_test.go
Package : interpreter_test
*/
package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer-hale/lumen/diag"
	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/lexer"
	"github.com/kristofer-hale/lumen/natives"
	"github.com/kristofer-hale/lumen/parser"
	"github.com/kristofer-hale/lumen/resolver"
)

// run drives source through the full lexer/parser/resolver/interpreter
// pipeline against a fresh Interpreter and returns everything written to
// stdout ("print" output), its diag.Sink (for error inspection), and
// the error Interpret returned, if any.
func run(t *testing.T, source string) (string, *diag.Sink, error) {
	t.Helper()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	sink := diag.New(&stderr)

	tokens := lexer.New(source, sink).ScanTokens()
	require.False(t, sink.HadError(), "lexer errors: %s", stderr.String())

	statements := parser.New(tokens, sink).Parse()
	require.False(t, sink.HadError(), "parser errors: %s", stderr.String())

	interp := interpreter.New(&stdout)
	natives.Register(interp)
	resolver.New(interp, sink).Resolve(statements)
	require.False(t, sink.HadError(), "resolver errors: %s", stderr.String())

	err := interp.Interpret(statements)
	return stdout.String(), sink, err
}

func TestInterpret_ArithmeticPrint(t *testing.T) {
	out, _, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_FloatStringifyStripsTrailingZero(t *testing.T) {
	out, _, err := run(t, `print 6 / 2;`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestInterpret_FloatStringifyKeepsFraction(t *testing.T) {
	out, _, err := run(t, `print 1 / 4;`)
	require.NoError(t, err)
	assert.Equal(t, "0.25\n", out)
}

func TestInterpret_StringConcatenation(t *testing.T) {
	out, _, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpret_AddingStringAndNumberIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print "foo" + 1;`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Operands must be two numbers or two strings.", rerr.Message)
}

func TestInterpret_SubtractingNonNumbersIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print "foo" - 1;`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Operands must be numbers.", rerr.Message)
}

func TestInterpret_ClosureCounterSharesMutableState(t *testing.T) {
	out, _, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_BlockShadowingLeavesOuterUntouched(t *testing.T) {
	out, _, err := run(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpret_ForLoopAccumulates(t *testing.T) {
	out, _, err := run(t, `
		var total = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			total = total + i;
		}
		print total;
	`)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestInterpret_WhileLoopWithLogicalShortCircuit(t *testing.T) {
	out, _, err := run(t, `
		var i = 0;
		var seen = false;
		while (i < 3 and !seen) {
			i = i + 1;
			if (i == 2) seen = true;
		}
		print i;
	`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestInterpret_FunctionReturnUnwindsNestedBlocks(t *testing.T) {
	out, _, err := run(t, `
		fun first(n) {
			if (n > 0) {
				{
					return n;
				}
			}
			return -1;
		}
		print first(5);
	`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print nope;`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Undefined variable 'nope'.", rerr.Message)
}

func TestInterpret_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `
		var x = 1;
		x();
	`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Can only call functions and classes.", rerr.Message)
}

func TestInterpret_WrongArityIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `
		fun needsTwo(a, b) { return a + b; }
		needsTwo(1);
	`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Expected 2 arguments but got 1.", rerr.Message)
}

func TestInterpret_ClassInstanceFieldsAndMethods(t *testing.T) {
	out, _, err := run(t, `
		class Counter {
			init(start) {
				this.count = start;
			}
			increment() {
				this.count = this.count + 1;
				return this.count;
			}
		}
		var c = Counter(10);
		print c.increment();
		print c.increment();
	`)
	require.NoError(t, err)
	assert.Equal(t, "11\n12\n", out)
}

func TestInterpret_SingleInheritanceSuperCall(t *testing.T) {
	out, _, err := run(t, `
		class Animal {
			speak() {
				return "...";
			}
			describe() {
				return "says " + this.speak();
			}
		}
		class Dog < Animal {
			speak() {
				return "woof";
			}
			loudDescribe() {
				return "really " + super.describe();
			}
		}
		var d = Dog();
		print d.describe();
		print d.loudDescribe();
	`)
	require.NoError(t, err)
	assert.Equal(t, "says woof\nreally says woof\n", out)
}

func TestInterpret_AccessingMissingPropertyIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `
		class Empty {}
		var e = Empty();
		print e.nothing;
	`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.True(t, strings.Contains(rerr.Message, "Undefined property 'nothing'"))
}

func TestInterpret_NativeClockIsCallableAndReturnsNumber(t *testing.T) {
	out, _, err := run(t, `
		var t = clock();
		print t >= 0;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestInterpret_NativeClockRejectsArguments(t *testing.T) {
	_, _, err := run(t, `clock(1);`)
	require.Error(t, err)
	rerr, ok := err.(*interpreter.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Expected 0 arguments but got 1.", rerr.Message)
}
