package query

import (
	"github.com/forgecs/ecs/archetype"
	"github.com/forgecs/ecs/component"
)

// EntityRef identifies an entity yielded by Entity(): its id and its row
// index within the archetype being iterated. It does not record which
// archetype that is. It is valid only for the lifetime of the row lock held
// during the iterator step that produced it.
type EntityRef struct {
	ID  uint64
	Row int
}

// Binding is one parameter's contribution to a yielded tuple. Which fields
// are meaningful depends on Kind, mirroring the parameter that produced it:
// Entity/ID/Name/Enabled, or Component (set when Present is true) for
// with/with_mut/optional.
type Binding struct {
	Kind      Kind
	Entity    EntityRef
	ID        uint64
	Name      string
	Enabled   bool
	Component component.Component
	Present   bool
}

func bindingsForParam(p Param, view *archetype.RowView) []Binding {
	switch p.kind {
	case KindEntity:
		return []Binding{{Kind: p.kind, Entity: EntityRef{ID: view.ID(), Row: view.Row()}}}
	case KindID:
		return []Binding{{Kind: p.kind, ID: view.ID()}}
	case KindName:
		return []Binding{{Kind: p.kind, Name: view.Name()}}
	case KindEnabled:
		return []Binding{{Kind: p.kind, Enabled: view.Enabled()}}
	case KindWith, KindWithMut:
		var instances []component.Component
		if p.kind == KindWithMut {
			instances = view.MutInstances(p.class)
		} else {
			instances = view.Instances(p.class)
		}
		return componentBindings(p.kind, instances)
	case KindOptional:
		var instances []component.Component
		if p.mutable {
			instances = view.MutInstances(p.class)
		} else {
			instances = view.Instances(p.class)
		}
		if len(instances) == 0 {
			return []Binding{{Kind: p.kind, Present: false}}
		}
		return componentBindings(p.kind, instances)
	default:
		return nil
	}
}

func componentBindings(kind Kind, instances []component.Component) []Binding {
	out := make([]Binding, len(instances))
	for i, c := range instances {
		out[i] = Binding{Kind: kind, Component: c, Present: true}
	}
	return out
}

// cartesian computes the cartesian product of per-parameter binding
// sequences, preserving parameter order within each resulting tuple.
func cartesian(sequences [][]Binding) [][]Binding {
	result := [][]Binding{{}}
	for _, seq := range sequences {
		next := make([][]Binding, 0, len(result)*len(seq))
		for _, prefix := range result {
			for _, b := range seq {
				tuple := make([]Binding, len(prefix)+1)
				copy(tuple, prefix)
				tuple[len(prefix)] = b
				next = append(next, tuple)
			}
		}
		result = next
	}
	return result
}

func buildTuples(params []Param, view *archetype.RowView) [][]Binding {
	sequences := make([][]Binding, len(params))
	for i, p := range params {
		sequences[i] = bindingsForParam(p, view)
	}
	return cartesian(sequences)
}
