// Package store implements the entity store: the authoritative mapping from
// entity identifier to archetype/row, entity-level CRUD, and delegation into
// the query engine. Its locking discipline follows the ambient lock-ordering
// rule: the index map lock is acquired outermost for every structural
// mutation, with the archetype-list lock and each archetype's own internal
// locks nested inside it in increasing order, so a thread already holding a
// higher-numbered lock never reaches back for a lower-numbered one.
package store

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/archetype"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/introspect"
	"github.com/forgecs/ecs/query"
	"github.com/forgecs/ecs/signal"
)

type location struct {
	arch *archetype.Archetype
	row  int
}

// Store owns every entity in a world: it assigns identifiers, routes each
// entity to the archetype matching its component set, and offers entity
// CRUD, iteration, and query delegation.
type Store struct {
	ids *ecs.IDAllocator

	indexMu sync.RWMutex
	index   map[uint64]location

	archMu     sync.RWMutex
	archetypes []*archetype.Archetype
	archByKey  map[string]int

	onDeleted *signal.Signal[ecs.EntityID]
	logger    zerolog.Logger
}

// New constructs an empty entity store.
func New(logger zerolog.Logger) *Store {
	return &Store{
		ids:       ecs.NewIDAllocator(),
		index:     make(map[uint64]location),
		archByKey: make(map[string]int),
		onDeleted: signal.New[ecs.EntityID](),
		logger:    logger,
	}
}

// OnDeleted returns the signal emitted once per successful Remove, carrying
// the removed entity's id.
func (s *Store) OnDeleted() *signal.Signal[ecs.EntityID] { return s.onDeleted }

// ClassName, Fields, and Methods satisfy introspect.Introspectable so a Store
// can be published into a resource.Container and resolved by systems via
// resource.Require[*store.Store]. A store has no introspectable fields or
// methods of its own; systems reach its entity-level operations through the
// Go API directly, not through dynamic dispatch.
func (s *Store) ClassName() string                     { return "EntityStore" }
func (s *Store) Fields() []introspect.FieldDescriptor   { return nil }
func (s *Store) Methods() []introspect.MethodDescriptor { return nil }

func entityTypeOf(comps []component.Component) component.EntityType {
	classes := make([]string, len(comps))
	for i, c := range comps {
		classes[i] = c.ClassName()
	}
	return component.NewEntityType(classes...)
}

// getOrCreateArchetype resolves the archetype storing exactly entity type t,
// creating it if no entity has ever used that exact component set before.
// Acquires archMu, nested inside whatever lock (indexMu) the caller already
// holds — moving from a lower-numbered lock to a higher-numbered one, which
// the ordering discipline permits.
func (s *Store) getOrCreateArchetype(t component.EntityType) *archetype.Archetype {
	key := t.Key()

	s.archMu.RLock()
	if idx, ok := s.archByKey[key]; ok {
		a := s.archetypes[idx]
		s.archMu.RUnlock()
		return a
	}
	s.archMu.RUnlock()

	s.archMu.Lock()
	defer s.archMu.Unlock()
	if idx, ok := s.archByKey[key]; ok {
		return s.archetypes[idx]
	}
	a := archetype.New(t)
	s.archByKey[key] = len(s.archetypes)
	s.archetypes = append(s.archetypes, a)
	return a
}

// Create allocates a fresh entity id, routes it to the archetype matching
// comps' classes, and returns the new id.
func (s *Store) Create(name string, enabled bool, comps []component.Component) ecs.EntityID {
	id := s.ids.Next()
	s.insert(id, name, enabled, comps)
	return id
}

// CreateWithID inserts an entity under a caller-supplied id, used by snapshot
// restore. The allocator is advanced so future Create calls never collide
// with id.
func (s *Store) CreateWithID(id ecs.EntityID, name string, enabled bool, comps []component.Component) {
	s.ids.Observe(id)
	s.insert(id, name, enabled, comps)
}

func (s *Store) insert(id ecs.EntityID, name string, enabled bool, comps []component.Component) {
	t := entityTypeOf(comps)

	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	arch := s.getOrCreateArchetype(t)
	row := arch.InsertRow(uint64(id), name, enabled, comps)
	s.index[uint64(id)] = location{arch: arch, row: row}
}

// Remove deletes id from the store, swap-removing its row from its
// archetype and patching the index map for whichever entity the swap moved,
// then emits OnDeleted. Returns ecs.ErrEntityNotFound if id is not present.
func (s *Store) Remove(id ecs.EntityID) error {
	s.indexMu.Lock()
	loc, ok := s.index[uint64(id)]
	if !ok {
		s.indexMu.Unlock()
		return ecs.ErrEntityNotFound
	}
	delete(s.index, uint64(id))
	movedID, hadMove := loc.arch.RemoveRow(loc.row)
	if hadMove {
		s.index[movedID] = location{arch: loc.arch, row: loc.row}
	}
	s.indexMu.Unlock()

	s.onDeleted.Emit(id)
	return nil
}

// Exists reports whether id currently names a live entity.
func (s *Store) Exists(id ecs.EntityID) bool {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	_, ok := s.index[uint64(id)]
	return ok
}

// Get returns id's current name, enabled flag, and component snapshot
// (shared references, not copies). ok is false if id is not live.
func (s *Store) Get(id ecs.EntityID) (name string, enabled bool, comps []component.Component, ok bool) {
	s.indexMu.RLock()
	loc, found := s.index[uint64(id)]
	s.indexMu.RUnlock()
	if !found {
		return "", false, nil, false
	}

	loc.arch.RLockStructure()
	defer loc.arch.RUnlockStructure()

	view := loc.arch.RowAt(loc.row, false)
	defer view.Release()
	name = view.Name()
	enabled = view.Enabled()
	for _, class := range loc.arch.Classes() {
		comps = append(comps, view.Instances(class)...)
	}
	return name, enabled, comps, true
}

// AddComponent attaches comp to id. If id already carries at least one
// component of comp's class, comp is appended to that class's existing group
// in place, with no archetype move. Otherwise the entity moves to the
// archetype for its expanded component set.
func (s *Store) AddComponent(id ecs.EntityID, comp component.Component) error {
	class := comp.ClassName()

	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	loc, ok := s.index[uint64(id)]
	if !ok {
		return ecs.ErrEntityNotFound
	}

	if loc.arch.HasColumn(class) {
		loc.arch.RLockStructure()
		view := loc.arch.RowAt(loc.row, true)
		instances := append(view.MutInstances(class), comp)
		view.ReplaceInstances(class, instances)
		view.Release()
		loc.arch.RUnlockStructure()
		return nil
	}

	return s.moveEntity(id, loc, loc.arch.Type().With(class), comp)
}

// RemoveComponent detaches every instance of class from id, moving it to the
// archetype for its shrunken component set. Returns ecs.ErrComponentNotFound
// if id does not carry class.
func (s *Store) RemoveComponent(id ecs.EntityID, class string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	loc, ok := s.index[uint64(id)]
	if !ok {
		return ecs.ErrEntityNotFound
	}
	if !loc.arch.HasColumn(class) {
		return ecs.ErrComponentNotFound
	}
	return s.moveEntity(id, loc, loc.arch.Type().Without(class), nil)
}

// moveEntity relocates id from its current archetype to the archetype for
// newType, carrying over every existing component except those of the class
// being dropped (when extra is nil) and appending extra (when adding a new
// class). Called with indexMu already held.
func (s *Store) moveEntity(id ecs.EntityID, loc location, newType component.EntityType, extra component.Component) error {
	loc.arch.RLockStructure()
	view := loc.arch.RowAt(loc.row, true)
	name := view.Name()
	enabled := view.Enabled()
	comps := make([]component.Component, 0, len(loc.arch.Classes()))
	for _, class := range loc.arch.Classes() {
		if newType.Contains(class) {
			comps = append(comps, view.Instances(class)...)
		}
	}
	view.Release()
	loc.arch.RUnlockStructure()
	if extra != nil {
		comps = append(comps, extra)
	}

	newArch := s.getOrCreateArchetype(newType)

	movedID, hadMove := loc.arch.RemoveRow(loc.row)
	if hadMove {
		s.index[movedID] = location{arch: loc.arch, row: loc.row}
	}

	newRow := newArch.InsertRow(uint64(id), name, enabled, comps)
	s.index[uint64(id)] = location{arch: newArch, row: newRow}
	return nil
}

// Clear removes every entity from the store. The id allocator is not reset:
// identifiers are never reused within a run, even across a Clear.
func (s *Store) Clear() {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	s.archMu.Lock()
	defer s.archMu.Unlock()

	s.index = make(map[uint64]location)
	s.archetypes = nil
	s.archByKey = make(map[string]int)
}

// Query snapshots the current archetype list and delegates iteration to the
// query package. The snapshot is taken under archMu so concurrent archetype
// creation (from a Create/AddComponent on another entity) cannot be observed
// mid-query, matching the "iteration order over archetypes is unspecified"
// rule — it need not be live, just consistent for the query's lifetime.
func (s *Store) Query(params ...query.Param) *query.Iterator {
	s.archMu.RLock()
	snapshot := make([]*archetype.Archetype, len(s.archetypes))
	copy(snapshot, s.archetypes)
	s.archMu.RUnlock()
	return query.New(snapshot, params)
}

// Each visits every live entity exactly once, in unspecified order, invoking
// fn with the entity's id, name, enabled flag, and its components sorted by
// class name (the snapshot canonicalization the external interface
// guarantees). fn returning false stops iteration early.
func (s *Store) Each(fn func(id ecs.EntityID, name string, enabled bool, comps []component.Component) bool) {
	s.archMu.RLock()
	archetypes := make([]*archetype.Archetype, len(s.archetypes))
	copy(archetypes, s.archetypes)
	s.archMu.RUnlock()

	for _, a := range archetypes {
		a.RLockStructure()
		n := a.LenLocked()
		classes := append([]string(nil), a.Classes()...)
		sort.Strings(classes)
		for row := 0; row < n; row++ {
			view := a.RowAt(row, false)
			id := ecs.EntityID(view.ID())
			name := view.Name()
			enabled := view.Enabled()
			var comps []component.Component
			for _, class := range classes {
				comps = append(comps, view.Instances(class)...)
			}
			view.Release()
			if !fn(id, name, enabled, comps) {
				a.RUnlockStructure()
				return
			}
		}
		a.RUnlockStructure()
	}
}
