// Package query implements the parameter-kind vocabulary and the pull-based
// iterator that composes them into tuples across a store's archetype list.
// It depends only on archetype and component, not on store, so the entity
// store can snapshot its archetype list and delegate iteration here without
// an import cycle.
package query

// Kind identifies a parameter's role in a query's parameter list.
type Kind uint8

const (
	KindEntity Kind = iota
	KindID
	KindName
	KindEnabled
	KindWith
	KindWithMut
	KindOptional
)

// Param is one element of a query's ordered parameter list.
type Param struct {
	kind    Kind
	class   string
	mutable bool
}

// Entity yields an EntityRef carrying the entity's id and row index. The
// archetype is not part of the reference.
func Entity() Param { return Param{kind: KindEntity} }

// ID yields the entity's identifier.
func ID() Param { return Param{kind: KindID} }

// Name yields the entity's name.
func Name() Param { return Param{kind: KindName} }

// Enabled yields the entity's enabled flag.
func Enabled() Param { return Param{kind: KindEnabled} }

// With requires the archetype to carry class and yields one read handle per
// instance of class on the matching entity.
func With(class string) Param { return Param{kind: KindWith, class: class} }

// WithMut requires the archetype to carry class and yields one write handle
// per instance of class on the matching entity.
func WithMut(class string) Param { return Param{kind: KindWithMut, class: class} }

// Optional does not filter archetypes by class. It yields a present handle
// per instance of class when the archetype carries it, or a single absent
// binding otherwise. mutable selects read or write access to the handle when
// present.
func Optional(class string, mutable bool) Param {
	return Param{kind: KindOptional, class: class, mutable: mutable}
}

func (p Param) needsWrite() bool {
	return p.kind == KindWithMut || (p.kind == KindOptional && p.mutable)
}

func (p Param) filtersArchetype() bool {
	return p.kind == KindWith || p.kind == KindWithMut
}
