// Package component defines the capability contract every component type
// must satisfy to live inside an archetype column: introspectable field and
// method access plus a fixed-layout byte encoding used by snapshots and by
// row copies during archetype migration.
package component

import "github.com/forgecs/ecs/introspect"

// Component is implemented by every type that can be attached to an entity.
// Components are plain structs; the archetype storage never depends on their
// concrete Go type, only on this interface.
type Component interface {
	introspect.Introspectable

	// ByteSize returns the number of bytes Encode writes.
	ByteSize() int

	// Encode writes the component's fixed-layout byte representation into
	// buf, which is guaranteed by the caller to have length >= ByteSize(),
	// and returns the number of bytes written.
	Encode(buf []byte) int

	// Decode reads a fixed-layout byte representation previously produced by
	// Encode and overwrites the receiver's fields with it.
	Decode(buf []byte)

	// Clone returns a heap-allocated deep copy of the component.
	Clone() Component
}

// Factory constructs a zero-value component of a registered class, used by
// snapshot restore to materialize a Component before calling Decode or
// SetField on it.
type Factory func() Component

// Registry maps component class names to factories, so generic code (restore,
// editors, scripting bindings) can construct a component given only its class
// name as recorded in a snapshot or introspection Record.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty component registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register associates a class name with a factory. Re-registering the same
// class overwrites the previous factory.
func (r *Registry) Register(class string, f Factory) {
	r.factories[class] = f
}

// New constructs a new zero-value component of the named class. The second
// return value is false if no factory was registered for that class.
func (r *Registry) New(class string) (Component, bool) {
	f, ok := r.factories[class]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Classes returns the registered class names in no particular order.
func (r *Registry) Classes() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}

// ClassName, Fields, and Methods satisfy introspect.Introspectable so a
// Registry can be published into a resource.Container and resolved by
// loaders or restore code via resource.Require[*component.Registry].
func (r *Registry) ClassName() string                     { return "ComponentRegistry" }
func (r *Registry) Fields() []introspect.FieldDescriptor   { return nil }
func (r *Registry) Methods() []introspect.MethodDescriptor { return nil }
