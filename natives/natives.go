/*
File    : lumen/natives/natives.go
Package : natives
*/

// Package natives registers the host-implemented global functions every
// Interpreter starts with. It is the extension point for adding more
// without touching the interpreter package itself: each builtin is a
// name, fixed arity, and callback collected into one slice and
// installed into an Interpreter's globals by Register.
package natives

import (
	"time"

	"github.com/kristofer-hale/lumen/interpreter"
)

type builtin struct {
	name  string
	arity int
	fn    func(interp *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error)
}

var builtins = []builtin{
	{
		name:  "clock",
		arity: 0,
		fn: func(_ *interpreter.Interpreter, _ []interpreter.Value) (interpreter.Value, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	},
}

// Register installs every native function into interp's globals.
// Interpreter.New leaves globals empty on purpose so this package can
// depend on interpreter without creating an import cycle; callers
// (the REPL, the file runner, tests) call Register once on a freshly
// constructed Interpreter before running any Lumen code.
func Register(interp *interpreter.Interpreter) {
	for _, b := range builtins {
		interp.DefineGlobal(b.name, interpreter.NewNativeFunction(b.name, b.arity, b.fn))
	}
}
