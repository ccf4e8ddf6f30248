package archetype

import (
	"sync"

	"github.com/forgecs/ecs/component"
)

// Column stores every instance of one component class, one slot per row, in
// the same row order as the archetype's parallel identity arrays. A slot
// holds a slice rather than a single component because an entity may carry
// more than one component of the same class (see groupByClass); the common
// case is a one-element slice.
type Column struct {
	mu    sync.RWMutex
	class string
	rows  [][]component.Component
}

func newColumn(class string) *Column {
	return &Column{class: class}
}

// Class returns the component class name this column stores.
func (c *Column) Class() string { return c.class }

func (c *Column) insert(group []component.Component) {
	c.mu.Lock()
	c.rows = append(c.rows, group)
	c.mu.Unlock()
}

// removeSwap overwrites row i with the data from row last and truncates by
// one, mirroring the swap-remove performed on the archetype's parallel
// identity arrays. Called with the archetype's structure lock and the
// affected row's row-lock already held.
func (c *Column) removeSwap(i, last int) {
	c.mu.Lock()
	if i != last {
		c.rows[i] = c.rows[last]
	}
	c.rows = c.rows[:last]
	c.mu.Unlock()
}

// read returns the component group stored at row i under a column read lock.
func (c *Column) read(i int) []component.Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows[i]
}

// write replaces the component group stored at row i under a column write
// lock.
func (c *Column) write(i int, group []component.Component) {
	c.mu.Lock()
	c.rows[i] = group
	c.mu.Unlock()
}

// len reports the column's row count under a read lock.
func (c *Column) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}
