// Package world wires the resource container, entity store, component
// registry, and scheduler into the single object an application actually
// constructs and holds, mirroring the pattern as a set of functional
// options over independently useful pieces.
package world

import (
	"github.com/rs/zerolog"

	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/resource"
	"github.com/forgecs/ecs/scheduler"
	"github.com/forgecs/ecs/store"
)

// World is the top-level handle an application holds. Every field is
// independently constructible and independently testable; World exists only
// to wire their lifetimes together and publish the store and registry into
// the resource container under conventional names, so scheduler callbacks —
// which see only the resource container, per the scheduler's contract —
// resolve them via resource.Require instead of a back-pointer to World
// itself.
type World struct {
	resources     *resource.Container
	registry      *component.Registry
	store         *store.Store
	scheduler     *scheduler.Scheduler
	schedulerOpts []scheduler.Option
}

// Option configures a World at construction time.
type Option func(*World)

// WithResources overrides the default empty resource container.
func WithResources(c *resource.Container) Option {
	return func(w *World) {
		if c != nil {
			w.resources = c
		}
	}
}

// WithRegistry overrides the default empty component registry.
func WithRegistry(r *component.Registry) Option {
	return func(w *World) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithSchedulerOptions forwards options to the scheduler constructed for
// this world.
func WithSchedulerOptions(opts ...scheduler.Option) Option {
	return func(w *World) { w.schedulerOpts = append(w.schedulerOpts, opts...) }
}

// New constructs a world with a fresh resource container, component
// registry, entity store, and scheduler bound to that resource container,
// then publishes the store and registry into the resource container under
// their conventional names so a scheduler.Callback can recover them with
// resource.Require[*store.Store](res) and
// resource.Require[*component.Registry](res).
func New(logger zerolog.Logger, opts ...Option) *World {
	w := &World{}
	for _, opt := range opts {
		opt(w)
	}
	if w.resources == nil {
		w.resources = resource.New(logger)
	}
	if w.registry == nil {
		w.registry = component.NewRegistry()
	}
	w.store = store.New(logger)
	w.scheduler = scheduler.New(w.resources, append([]scheduler.Option{scheduler.WithLogger(logger)}, w.schedulerOpts...)...)

	w.resources.Add("entity_store", w.store)
	w.resources.Add("component_registry", w.registry)
	return w
}

// Resources returns the world's resource container.
func (w *World) Resources() *resource.Container { return w.resources }

// Registry returns the world's component registry.
func (w *World) Registry() *component.Registry { return w.registry }

// Store returns the world's entity store.
func (w *World) Store() *store.Store { return w.store }

// Scheduler returns the world's system scheduler.
func (w *World) Scheduler() *scheduler.Scheduler { return w.scheduler }

// Close releases the world's scheduler worker pool.
func (w *World) Close() { w.scheduler.Close() }
