package component

import (
	"sort"
	"strings"
)

// EntityType is the sorted, de-duplicated set of component class names
// attached to an entity. Two entities with the same EntityType live in the
// same archetype.
type EntityType []string

// NewEntityType builds an EntityType from an arbitrary set of class names,
// sorting and de-duplicating them.
func NewEntityType(classes ...string) EntityType {
	if len(classes) == 0 {
		return EntityType{}
	}
	cp := append(EntityType(nil), classes...)
	sort.Strings(cp)
	out := cp[:1]
	for _, c := range cp[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// With returns a new EntityType with class added, unless already present.
func (t EntityType) With(class string) EntityType {
	if t.Contains(class) {
		return t
	}
	return NewEntityType(append(append(EntityType(nil), t...), class)...)
}

// Without returns a new EntityType with class removed, if present.
func (t EntityType) Without(class string) EntityType {
	if !t.Contains(class) {
		return t
	}
	out := make(EntityType, 0, len(t)-1)
	for _, c := range t {
		if c != class {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether class is a member of the type.
func (t EntityType) Contains(class string) bool {
	i := sort.SearchStrings(t, class)
	return i < len(t) && t[i] == class
}

// Equal reports whether two EntityTypes contain exactly the same classes.
// Both must already be sorted, which NewEntityType/With/Without guarantee.
func (t EntityType) Equal(other EntityType) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string identifying the type, suitable for use as a
// map key when locating the archetype that stores this exact component set.
func (t EntityType) Key() string {
	return strings.Join(t, "\x1f")
}
