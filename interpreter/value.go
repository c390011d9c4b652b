/*
File    : lumen/interpreter/value.go
Package : interpreter
*/
package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is any Lumen runtime value: nil, bool, float64, string, one of
// the Callable implementations (*Function, *NativeFunction, *Class), or
// an *Instance. There is no dedicated wrapper struct per variant;
// a plain type switch on the dynamic type is all evaluation ever needs.
type Value = interface{}

// isTruthy implements the language's truthiness rule: nil and false are
// falsey, everything else — including 0 and "" — is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements structural equality on primitives and identity
// equality on everything else (callables, classes, instances compare
// equal only to themselves). Cross-kind comparisons are simply false,
// never an error.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value the way "print" does: nil becomes "nil",
// numbers whose textual form ends in ".0" have that suffix stripped,
// everything else uses its natural string form.
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case float64:
		text := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return strings.TrimSuffix(text, ".0")
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
