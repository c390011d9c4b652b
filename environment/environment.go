/*
File    : lumen/environment/environment.go
Package : environment
*/

// Package environment implements the scoped variable bindings the
// interpreter evaluates against: a mapping from identifier to runtime
// value with an optional parent link, forming a tree rooted at a single
// globals environment. A function's closure is a live reference to one
// of these; mutating a binding through AssignAt/AssignGlobal is visible
// through every other reference to the same Environment, exactly as a
// shared, possibly-cyclic structure (an environment can outlive the
// call frame that created it once a closure retains it, and a closure
// stored back into that same environment creates a cycle) rather than
// anything copy-on-write or uniquely owned.
//
// Values are stored as interface{} rather than a package-specific
// value type so this package has no dependency on the interpreter's
// value representation — it is pure scope-chain bookkeeping, exposing
// both name-based lookup and the compile-time resolved depth lookups
// (GetAt/AssignAt) a static resolver pass can drive.
package environment

import "fmt"

// Environment is one scope frame: its own bindings plus an optional
// parent. A nil Parent marks the root (globals) environment.
type Environment struct {
	values map[string]interface{}
	Parent *Environment
}

// New creates a child environment of parent. Pass nil to create a new
// root (globals) environment.
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]interface{}), Parent: parent}
}

// Define binds name to value in this environment only, overwriting any
// existing binding. Used for var declarations, function parameters, the
// "this" binding a bound method's closure introduces, and the "super"
// binding of a subclass's method environment.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// GetAt follows Parent exactly depth times, then fetches name from that
// ancestor. The resolver guarantees the binding is present at that
// depth for any expression it recorded a depth for, so a missing name
// here is a bug in the resolver/interpreter pairing, not a user error.
func (e *Environment) GetAt(depth int, name string) interface{} {
	return e.ancestor(depth).values[name]
}

// AssignAt follows Parent exactly depth times, then overwrites name in
// that ancestor.
func (e *Environment) AssignAt(depth int, name string, value interface{}) {
	e.ancestor(depth).values[name] = value
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.Parent
	}
	return env
}

// GetGlobal fetches name from the root of this environment's chain.
// Used when the resolver recorded no depth for a reference, meaning it
// is global.
func (e *Environment) GetGlobal(name string) (interface{}, error) {
	root := e.root()
	if value, ok := root.values[name]; ok {
		return value, nil
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// AssignGlobal overwrites name at the root of the chain. Missing name
// is a runtime error, matching GetGlobal.
func (e *Environment) AssignGlobal(name string, value interface{}) error {
	root := e.root()
	if _, ok := root.values[name]; !ok {
		return fmt.Errorf("Undefined variable '%s'.", name)
	}
	root.values[name] = value
	return nil
}

func (e *Environment) root() *Environment {
	env := e
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}
