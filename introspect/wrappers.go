package introspect

import (
	"fmt"
	"sync"
)

// Shared is a composable capability adapter granting shared ownership over
// an Introspectable. It forwards the introspection contract but forbids
// mut-setters at runtime, mirroring a reference-counted const handle.
type Shared[T Introspectable] struct {
	inner T
}

// NewShared wraps obj in a shared-ownership adapter.
func NewShared[T Introspectable](obj T) *Shared[T] {
	return &Shared[T]{inner: obj}
}

// Get returns the wrapped object.
func (s *Shared[T]) Get() T { return s.inner }

// ClassName prefixes the inner class name, per the wrapper rule.
func (s *Shared[T]) ClassName() string {
	return fmt.Sprintf("Arc<%s>", s.inner.ClassName())
}

// Fields forwards the inner descriptors with mut-setters disabled.
func (s *Shared[T]) Fields() []FieldDescriptor {
	inner := s.inner.Fields()
	out := make([]FieldDescriptor, len(inner))
	for i, f := range inner {
		out[i] = f
		if f.SetKind == SetterMut {
			out[i].SetKind = SetterNone
			out[i].Set = nil
		}
	}
	return out
}

// Methods forwards the inner method descriptors unchanged.
func (s *Shared[T]) Methods() []MethodDescriptor {
	return s.inner.Methods()
}

// Locked is a composable capability adapter granting interior mutability
// over an Introspectable via a readers-writer lock. It forwards the
// introspection contract and upgrades mut-setters to const-setters that
// acquire the write lock internally, so callers holding only a shared
// reference can still mutate through it.
type Locked[T Introspectable] struct {
	mu    sync.RWMutex
	inner T
}

// NewLocked wraps obj in a lockable adapter.
func NewLocked[T Introspectable](obj T) *Locked[T] {
	return &Locked[T]{inner: obj}
}

// RLock / RUnlock / Lock / Unlock expose the interior lock directly to
// callers that need to hold it across several operations.
func (l *Locked[T]) RLock()   { l.mu.RLock() }
func (l *Locked[T]) RUnlock() { l.mu.RUnlock() }
func (l *Locked[T]) Lock()    { l.mu.Lock() }
func (l *Locked[T]) Unlock()  { l.mu.Unlock() }

// Read runs fn with a read lock held.
func (l *Locked[T]) Read(fn func(T)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.inner)
}

// Write runs fn with a write lock held.
func (l *Locked[T]) Write(fn func(T)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.inner)
}

// ClassName prefixes the inner class name, per the wrapper rule.
func (l *Locked[T]) ClassName() string {
	return fmt.Sprintf("RwLock<%s>", l.inner.ClassName())
}

// Fields forwards the inner descriptors, upgrading mut-setters to acquire
// the write lock internally before delegating to the inner setter.
func (l *Locked[T]) Fields() []FieldDescriptor {
	inner := l.inner.Fields()
	out := make([]FieldDescriptor, len(inner))
	for i, f := range inner {
		out[i] = f
		if f.SetKind == SetterMut {
			field := f
			out[i].SetKind = SetterConst
			out[i].Set = func(self any, v Value) error {
				l.mu.Lock()
				defer l.mu.Unlock()
				return field.Set(self, v)
			}
		}
		get := f.Get
		out[i].Get = func(self any) Value {
			l.mu.RLock()
			defer l.mu.RUnlock()
			return get(self)
		}
	}
	return out
}

// Methods forwards the inner method descriptors, serializing const
// invocations through a read lock and mut invocations through a write lock.
func (l *Locked[T]) Methods() []MethodDescriptor {
	inner := l.inner.Methods()
	out := make([]MethodDescriptor, len(inner))
	for i, m := range inner {
		out[i] = m
		invoke := m.Invoke
		kind := m.Kind
		out[i].Invoke = func(self any, args []Value) (*Value, error) {
			if kind == InvokeMut {
				l.mu.Lock()
				defer l.mu.Unlock()
			} else {
				l.mu.RLock()
				defer l.mu.RUnlock()
			}
			return invoke(self, args)
		}
	}
	return out
}
