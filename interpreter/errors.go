/*
File    : lumen/interpreter/errors.go
Package : interpreter
*/
package interpreter

import (
	"fmt"

	"github.com/kristofer-hale/lumen/token"
)

// RuntimeError is the single error kind every user-visible interpreter
// failure takes: the offending token (for line reporting) plus a
// human-readable message. Raising one aborts the current top-level
// statement — every pending block environment on the call stack
// restores on the way out via ordinary Go error propagation — and is
// surfaced to the diagnostic sink by the driver.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func newRuntimeError(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
