/*
File    : lumen/natives/natives_test.go
Package : natives_test
*/
package natives_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer-hale/lumen/interpreter"
	"github.com/kristofer-hale/lumen/natives"
)

func TestRegister_ClockIsCallableWithZeroArity(t *testing.T) {
	var out bytes.Buffer
	interp := interpreter.New(&out)
	natives.Register(interp)

	clock, err := interp.Globals.GetGlobal("clock")
	require.NoError(t, err)

	callable, ok := clock.(interpreter.Callable)
	require.True(t, ok)
	assert.Equal(t, 0, callable.Arity())

	result, err := callable.Call(interp, nil)
	require.NoError(t, err)
	seconds, ok := result.(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, seconds, 0.0)
}
