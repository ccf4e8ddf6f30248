// Package archetype implements the homogeneous, Structure-of-Arrays storage
// for every entity sharing one exact component-type set: parallel arrays for
// identity fields, one lockable Column per component class, and a per-row
// readers-writer lock shared across all of that row's columns.
package archetype

import (
	"sort"
	"sync"

	"github.com/forgecs/ecs/component"
)

// groupByClass partitions comps by their introspection class name,
// preserving each class's relative insertion order. An entity carrying two
// instances of the same class yields a two-element group for that class.
func groupByClass(comps []component.Component) map[string][]component.Component {
	grouped := make(map[string][]component.Component, len(comps))
	for _, c := range comps {
		class := c.ClassName()
		grouped[class] = append(grouped[class], c)
	}
	return grouped
}

// Archetype groups every entity sharing exactly the same sorted component
// class list. All parallel arrays and all columns always have equal length,
// the archetype's row count.
type Archetype struct {
	entityType component.EntityType

	structMu sync.RWMutex
	entityIDs []uint64
	names     []string
	enabled   []bool
	rowLocks  []*sync.RWMutex

	columns     map[string]*Column
	columnOrder []string
}

// New constructs an empty archetype for the given entity type.
func New(t component.EntityType) *Archetype {
	cols := make(map[string]*Column, len(t))
	order := append(component.EntityType(nil), t...)
	sort.Strings(order)
	for _, class := range order {
		cols[class] = newColumn(class)
	}
	return &Archetype{
		entityType:  t,
		columns:     cols,
		columnOrder: order,
	}
}

// Type returns the archetype's entity type identifier.
func (a *Archetype) Type() component.EntityType { return a.entityType }

// HasColumn reports whether the archetype stores components of class.
func (a *Archetype) HasColumn(class string) bool {
	_, ok := a.columns[class]
	return ok
}

// Classes returns the archetype's component classes in sorted order.
func (a *Archetype) Classes() []string { return a.columnOrder }

// Len reports the archetype's current row count.
func (a *Archetype) Len() int {
	a.structMu.RLock()
	defer a.structMu.RUnlock()
	return len(a.entityIDs)
}

// InsertRow appends a new row for id, pushing comps into their matching
// columns (grouped by class) and returns the new row index. Insertion never
// invalidates an existing row index or an existing row-lock reference,
// because no row's position moves — only the tail grows.
func (a *Archetype) InsertRow(id uint64, name string, enabled bool, comps []component.Component) int {
	grouped := groupByClass(comps)

	a.structMu.Lock()
	defer a.structMu.Unlock()

	row := len(a.entityIDs)
	a.entityIDs = append(a.entityIDs, id)
	a.names = append(a.names, name)
	a.enabled = append(a.enabled, enabled)
	a.rowLocks = append(a.rowLocks, &sync.RWMutex{})
	for class, col := range a.columns {
		col.insert(grouped[class])
	}
	return row
}

// RemoveRow swap-removes row i: the last row's data (if i is not already the
// last row) is copied into position i, then the arrays shrink by one. The
// caller must update its own index from the returned movedID/hadMove before
// releasing whatever lock protects that index, so external observers never
// see a torn view.
func (a *Archetype) RemoveRow(i int) (movedID uint64, hadMove bool) {
	a.structMu.Lock()
	defer a.structMu.Unlock()

	last := len(a.entityIDs) - 1
	rowLock := a.rowLocks[i]
	rowLock.Lock()

	if i != last {
		a.entityIDs[i] = a.entityIDs[last]
		a.names[i] = a.names[last]
		a.enabled[i] = a.enabled[last]
		movedID = a.entityIDs[i]
		hadMove = true
		for _, col := range a.columns {
			col.removeSwap(i, last)
		}
	} else {
		for _, col := range a.columns {
			col.removeSwap(i, last)
		}
	}

	a.entityIDs = a.entityIDs[:last]
	a.names = a.names[:last]
	a.enabled = a.enabled[:last]
	a.rowLocks = a.rowLocks[:last]

	rowLock.Unlock()
	return movedID, hadMove
}

// LenLocked returns the row count without acquiring the structure lock. The
// caller must already hold it, typically via RLockStructure, as the query
// engine does across a multi-row scan.
func (a *Archetype) LenLocked() int { return len(a.entityIDs) }

// RLockStructure/RUnlockStructure let callers (the query engine) hold the
// structure read-lock across a multi-row scan, so the row count observed at
// the start of iteration cannot change underneath them.
func (a *Archetype) RLockStructure()   { a.structMu.RLock() }
func (a *Archetype) RUnlockStructure() { a.structMu.RUnlock() }

// RowAt resolves a read- or write-scoped view of row i. The caller must have
// the structure lock held (via RLockStructure or by virtue of being inside
// Insert/RemoveRow) when forWrite's row-lock must coexist safely with
// concurrent structural changes; ordinary callers typically wrap a single
// RowAt call in RLockStructure/RUnlockStructure.
func (a *Archetype) RowAt(i int, forWrite bool) *RowView {
	lock := a.rowLocks[i]
	if forWrite {
		lock.Lock()
	} else {
		lock.RLock()
	}
	return &RowView{a: a, row: i, forWrite: forWrite, lock: lock}
}
