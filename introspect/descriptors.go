package introspect

// SetterKind selects whether a field's setter is absent, can be invoked
// through a const (shared) reference, or requires a mutable reference.
type SetterKind uint8

const (
	SetterNone SetterKind = iota
	SetterConst
	SetterMut
)

// Getter reads a field off a type-erased reference and converts it to a
// tagged Value. self is whatever the owning Introspectable's Fields method
// closed over — concretely a pointer to the struct the field lives on.
type Getter func(self any) Value

// Setter writes a tagged Value back into a type-erased reference, converting
// it to the field's native type. It must leave the field unchanged and
// return a typed error on conversion failure; it must never panic on bad
// input.
type Setter func(self any, v Value) error

// FieldDescriptor names one field of an Introspectable and the closures used
// to read and write it dynamically.
type FieldDescriptor struct {
	Name         string
	Get          Getter
	SetKind      SetterKind
	Set          Setter
	Serializable bool
}

// InvokerKind selects whether a method is invoked through a const or mutable
// receiver.
type InvokerKind uint8

const (
	InvokeConst InvokerKind = iota
	InvokeMut
)

// Invoker calls a method on a type-erased self with tagged-value arguments,
// returning either nothing, a tagged value, or a structured error.
type Invoker func(self any, args []Value) (*Value, error)

// MethodDescriptor names one method of an Introspectable and its invoker.
type MethodDescriptor struct {
	Name   string
	Kind   InvokerKind
	Invoke Invoker
}

// Introspectable is implemented by every component, resource, and math type
// that wants uniform dynamic field/method access. Concrete types implement it
// with hand-written methods; no code generator ships with this module. See
// package component for the additional capabilities components layer on
// top.
type Introspectable interface {
	ClassName() string
	Fields() []FieldDescriptor
	Methods() []MethodDescriptor
}

func findField(obj Introspectable, name string) (FieldDescriptor, bool) {
	for _, f := range obj.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

func findMethod(obj Introspectable, name string) (MethodDescriptor, bool) {
	for _, m := range obj.Methods() {
		if m.Name == name {
			return m, true
		}
	}
	return MethodDescriptor{}, false
}

// GetField reads a field by name off self through obj's descriptor set.
func GetField(obj Introspectable, self any, name string) (Value, error) {
	f, ok := findField(obj, name)
	if !ok {
		return None(), unknownField(name)
	}
	return f.Get(self), nil
}

// SetField writes a field by name on self through obj's descriptor set. A
// nil Set closure, or SetKind == SetterNone, is reported as not writable.
func SetField(obj Introspectable, self any, name string, v Value) error {
	f, ok := findField(obj, name)
	if !ok {
		return unknownField(name)
	}
	if f.SetKind == SetterNone || f.Set == nil {
		return fieldNotWritable(name)
	}
	return f.Set(self, v)
}

// CallMethod invokes a method by name on self with the given arguments.
func CallMethod(obj Introspectable, self any, name string, args []Value) (*Value, error) {
	m, ok := findMethod(obj, name)
	if !ok {
		return nil, unknownMethod(name)
	}
	return m.Invoke(self, args)
}

// FieldNames returns the ordered list of field names an Introspectable
// exposes, in declaration order.
func FieldNames(obj Introspectable) []string {
	fields := obj.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// MethodNames returns the ordered list of method names an Introspectable
// exposes, in declaration order.
func MethodNames(obj Introspectable) []string {
	methods := obj.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

// ExpectArgs validates an argument count for a method invoker, returning a
// WrongArgumentCount error when it doesn't match.
func ExpectArgs(method string, args []Value, expected int) error {
	if len(args) != expected {
		return wrongArgumentCount(method, len(args), expected)
	}
	return nil
}

// ArgIncorrect builds an IncorrectArgument error for the given method/index,
// for use by hand-written setters and invokers when a tagged-value
// conversion fails.
func ArgIncorrect(method string, index int) error {
	return incorrectArgument(method, index)
}
