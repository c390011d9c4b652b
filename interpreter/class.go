/*
File    : lumen/interpreter/class.go
Package : interpreter
*/
package interpreter

// Class is a runtime class value: a name, an optional superclass
// (single inheritance), and its own methods. Calling a Class as a
// Callable constructs a new Instance and, if an "init" method exists,
// runs it against that instance before returning it.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// FindMethod looks up name on the class itself, then its superclass
// chain. The returned Function is unbound; callers that intend to
// invoke it on an instance must bind it first.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if method, ok := c.Methods[name]; ok {
		return method, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of the class's "init" method, or 0 if it has none.
func (c *Class) Arity() int {
	if initializer, ok := c.FindMethod("init"); ok {
		return initializer.Arity()
	}
	return 0
}

// Call constructs a new Instance of the class and runs its initializer
// (if any) against it.
func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if initializer, ok := c.FindMethod("init"); ok {
		if _, err := initializer.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}

// Instance is a runtime instance of a Class: its own field values plus
// a reference to the class that produced it (for method lookup).
// Equality on instances is identity-based, the default behavior of
// comparing two *Instance pointers.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// get reads a property named name off the instance: its own fields
// first, then a bound method from the class (and its superclass
// chain). Property/method resolution failures are reported as runtime
// errors by the caller, which has the token needed for line reporting.
func (i *Instance) get(name string) (Value, bool) {
	if value, ok := i.fields[name]; ok {
		return value, true
	}
	if method, ok := i.class.FindMethod(name); ok {
		return method.bind(i), true
	}
	return nil, false
}

// set assigns value to field name on the instance, creating the field
// if it doesn't already exist (Lumen instances have no fixed field
// list — any property can be set).
func (i *Instance) set(name string, value Value) {
	i.fields[name] = value
}

func (i *Instance) String() string {
	return i.class.Name + " instance"
}
