package archetype

import (
	"sync"

	"github.com/forgecs/ecs/component"
)

// RowView is a transient handle returned by Archetype.RowAt. It must not be
// retained past the call that produced it: row indices shift on swap-remove,
// so a stale RowView can silently describe a different entity than the one
// the caller resolved. Release must be called exactly once.
type RowView struct {
	a        *Archetype
	row      int
	forWrite bool
	lock     *sync.RWMutex
}

// Release drops the row lock acquired by RowAt.
func (v *RowView) Release() {
	if v.forWrite {
		v.lock.Unlock()
	} else {
		v.lock.RUnlock()
	}
}

// Row returns the row index this view was resolved against.
func (v *RowView) Row() int { return v.row }

// ID returns the entity identifier stored at this row.
func (v *RowView) ID() uint64 { return v.a.entityIDs[v.row] }

// Name returns the entity name stored at this row.
func (v *RowView) Name() string { return v.a.names[v.row] }

// Enabled returns the enabled flag stored at this row.
func (v *RowView) Enabled() bool { return v.a.enabled[v.row] }

// SetEnabled overwrites the enabled flag. The caller must have resolved this
// view with forWrite=true.
func (v *RowView) SetEnabled(b bool) { v.a.enabled[v.row] = b }

// Instances returns the component group of class stored at this row, under a
// transient column read lock. The slice is a live reference; treat as
// read-only.
func (v *RowView) Instances(class string) []component.Component {
	col, ok := v.a.columns[class]
	if !ok {
		return nil
	}
	return col.read(v.row)
}

// MutInstances returns the component group of class stored at this row,
// under a transient column write lock. The caller may mutate the returned
// components in place (via their Introspectable setters); it must not change
// the length of the slice — that would desynchronize the group from whatever
// count was recorded on insert.
func (v *RowView) MutInstances(class string) []component.Component {
	col, ok := v.a.columns[class]
	if !ok {
		return nil
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.rows[v.row]
}

// ReplaceInstances overwrites the full component group of class stored at
// this row under a transient column write lock. The store uses it to append
// another instance of a class the entity already carries, which does not
// change the entity's archetype.
func (v *RowView) ReplaceInstances(class string, group []component.Component) {
	col, ok := v.a.columns[class]
	if !ok {
		return
	}
	col.write(v.row, group)
}
