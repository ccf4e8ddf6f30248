package query

import "github.com/forgecs/ecs/archetype"

// Iterator is a pull-based, lazy cursor over every entity matching a query's
// parameter list. Dropping it without exhausting it still releases whatever
// locks it currently holds, as long as the caller calls Close (directly, or
// via a defer immediately after New).
type Iterator struct {
	archetypes []*archetype.Archetype
	params     []Param
	writeMode  bool

	archIdx  int
	curArch  *archetype.Archetype
	rowCount int
	rowIdx   int

	curView *archetype.RowView
	tuples  [][]Binding
	tupleAt int

	done bool
}

// New builds an iterator over archetypes, keeping only those that carry the
// class of every with/with_mut parameter; the other parameter kinds do not
// filter. Archetype iteration order, and row iteration order within an
// archetype, are unspecified.
func New(archetypes []*archetype.Archetype, params []Param) *Iterator {
	write := false
	for _, p := range params {
		if p.needsWrite() {
			write = true
			break
		}
	}
	filtered := make([]*archetype.Archetype, 0, len(archetypes))
	for _, a := range archetypes {
		if matches(a, params) {
			filtered = append(filtered, a)
		}
	}
	return &Iterator{archetypes: filtered, params: params, writeMode: write}
}

func matches(a *archetype.Archetype, params []Param) bool {
	for _, p := range params {
		if p.filtersArchetype() && !a.HasColumn(p.class) {
			return false
		}
	}
	return true
}

// Next advances to the next tuple, returning ok=false once every matching
// entity has been visited. The returned slice is only valid until the next
// call to Next or Close.
func (it *Iterator) Next() ([]Binding, bool) {
	if it.done {
		return nil, false
	}
	for {
		if it.tupleAt < len(it.tuples) {
			t := it.tuples[it.tupleAt]
			it.tupleAt++
			return t, true
		}
		if !it.advanceRow() {
			return nil, false
		}
	}
}

// advanceRow releases the current row (if any) and positions the iterator at
// the next enabled row's tuple set, opening/closing archetype structure locks
// as it crosses archetype boundaries. It returns false once every archetype
// is exhausted, leaving the iterator in the done state.
func (it *Iterator) advanceRow() bool {
	it.releaseRow()

	for {
		if it.curArch == nil {
			if it.archIdx >= len(it.archetypes) {
				it.done = true
				return false
			}
			it.curArch = it.archetypes[it.archIdx]
			it.archIdx++
			it.curArch.RLockStructure()
			it.rowCount = it.curArch.LenLocked()
			it.rowIdx = 0
		}

		for it.rowIdx < it.rowCount {
			row := it.rowIdx
			it.rowIdx++
			view := it.curArch.RowAt(row, it.writeMode)
			if !view.Enabled() {
				view.Release()
				continue
			}
			it.curView = view
			it.tuples = buildTuples(it.params, view)
			it.tupleAt = 0
			return true
		}

		it.curArch.RUnlockStructure()
		it.curArch = nil
	}
}

func (it *Iterator) releaseRow() {
	if it.curView != nil {
		it.curView.Release()
		it.curView = nil
	}
}

// Close releases any row-lock and archetype structure-lock the iterator is
// currently holding. Safe to call multiple times and after exhaustion.
func (it *Iterator) Close() {
	it.releaseRow()
	if it.curArch != nil {
		it.curArch.RUnlockStructure()
		it.curArch = nil
	}
	it.done = true
}
