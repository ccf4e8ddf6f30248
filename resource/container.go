// Package resource implements the process-wide, concurrently-accessible
// registry of named, shared, lockable objects that every long-lived service
// (entity store, scheduler, graphics device, loaded assets) is published
// through.
package resource

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"github.com/forgecs/ecs/introspect"
)

// Container is a concurrent name -> introspectable registry with a secondary
// lookup path by dynamic type, used to implement Require.
type Container struct {
	logger  zerolog.Logger
	lock    sync.RWMutex
	byName  map[string]introspect.Introspectable
	loaders map[string]Loader
}

// New builds an empty resource container, logging internal invariant
// violations (see Require) through logger.
func New(logger zerolog.Logger) *Container {
	return &Container{
		logger:  logger,
		byName:  make(map[string]introspect.Introspectable),
		loaders: make(map[string]Loader),
	}
}

// Add inserts obj under name. A second insertion under the same name
// overwrites the previous resource; callers already holding a reference to
// the old object keep it alive.
func (c *Container) Add(name string, obj introspect.Introspectable) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.byName[name] = obj
}

// Get performs a type-agnostic lookup by name.
func (c *Container) Get(name string) (introspect.Introspectable, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	v, ok := c.byName[name]
	return v, ok
}

// Remove deletes the resource registered under name. It reports ErrNotFound
// if no such resource exists.
func (c *Container) Remove(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.byName[name]; !ok {
		return ErrNotFound
	}
	delete(c.byName, name)
	return nil
}

// Range visits every registered (name, resource) pair in no particular
// order. fn returning false stops iteration early.
func (c *Container) Range(fn func(name string, obj introspect.Introspectable) bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	for k, v := range c.byName {
		if !fn(k, v) {
			return
		}
	}
}

// Lookup searches the container for the unique resource assignable to K,
// returning ok=false if zero or more than one match.
func Lookup[K any](c *Container) (k K, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	want := reflect.TypeOf((*K)(nil)).Elem()
	var found K
	count := 0
	for _, v := range c.byName {
		rv := reflect.ValueOf(v)
		if rv.IsValid() && rv.Type().AssignableTo(want) {
			found = rv.Interface().(K)
			count++
		}
	}
	if count != 1 {
		return k, false
	}
	return found, true
}

// Require resolves the unique resource of abstract kind K. Per the resource
// contract, absence (or ambiguity) of K is an unrecoverable internal
// invariant violation: the process logs a fatal error and aborts rather than
// returning an error value, because callers write code assuming K always
// exists once registered at startup.
func Require[K any](c *Container) K {
	v, ok := Lookup[K](c)
	if !ok {
		var zero K
		c.logger.Fatal().
			Str("kind", reflect.TypeOf(zero).String()).
			Msg("resource: required resource kind not uniquely registered")
	}
	return v
}
