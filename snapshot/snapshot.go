// Package snapshot implements serialize/restore of an entire entity store as
// a tree of tagged introspect.Values, per the snapshot grammar:
//
//	Snapshot     := Array(EntityRecord*)
//	EntityRecord := Record{class_name:"Entity",
//	                       fields:{entity_id:U64, name:String, enabled:Bool,
//	                               components:Array(ComponentRecord*)}}
//	ComponentRecord := Record{class_name:<component class>,
//	                          fields:{<serializable field>:<tagged value>*}}
package snapshot

import (
	"github.com/rs/zerolog"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/introspect"
	"github.com/forgecs/ecs/store"
)

// Snapshot serializes every live entity in s into a tagged-value array.
// Components are canonicalized by class name so two stores holding the same
// logical data produce identical snapshots regardless of insertion order.
func Snapshot(s *store.Store) introspect.Value {
	var records []introspect.Value

	s.Each(func(id ecs.EntityID, name string, enabled bool, comps []component.Component) bool {
		componentRecords := make([]introspect.Value, 0, len(comps))
		for _, c := range comps {
			componentRecords = append(componentRecords, encodeComponent(c))
		}

		rec := introspect.NewRecord("Entity")
		rec.Set("entity_id", introspect.U64(uint64(id)))
		rec.Set("name", introspect.String(name))
		rec.Set("enabled", introspect.Bool(enabled))
		rec.Set("components", introspect.Array(componentRecords))
		records = append(records, introspect.RecordValue(rec))
		return true
	})

	return introspect.Array(records)
}

func encodeComponent(c component.Component) introspect.Value {
	rec := introspect.NewRecord(c.ClassName())
	for _, f := range c.Fields() {
		if !f.Serializable {
			continue
		}
		rec.Set(f.Name, f.Get(c))
	}
	return introspect.RecordValue(rec)
}

// Restore clears s and reconstructs it from snap, using registry to
// construct a zero-value component for each recorded class name. Component
// records with an unregistered class, or a field that fails to convert, are
// logged and skipped; restore never fails the overall operation, matching
// the best-effort contract of §7.
func Restore(s *store.Store, snap introspect.Value, registry *component.Registry, log zerolog.Logger) {
	s.Clear()

	entries, ok := snap.AsArray()
	if !ok {
		log.Error().Msg("snapshot: restore root is not an array")
		return
	}

	for _, entryVal := range entries {
		rec, ok := entryVal.AsRecord()
		if !ok {
			log.Error().Msg("snapshot: entity entry is not a record, skipping")
			continue
		}
		if rec.Class != "Entity" {
			log.Error().Str("class", rec.Class).Msg("snapshot: malformed entity record, skipping")
			continue
		}

		id, name, enabled, ok := decodeEntityHeader(rec, log)
		if !ok {
			continue
		}

		componentsVal, ok := rec.Get("components")
		if !ok {
			log.Error().Uint64("entity_id", uint64(id)).Msg("snapshot: entity record missing components array, skipping")
			continue
		}
		componentRecords, ok := componentsVal.AsArray()
		if !ok {
			log.Error().Uint64("entity_id", uint64(id)).Msg("snapshot: entity components field is not an array, skipping")
			continue
		}

		comps := make([]component.Component, 0, len(componentRecords))
		for _, cv := range componentRecords {
			c, ok := decodeComponent(cv, registry, log)
			if !ok {
				continue
			}
			comps = append(comps, c)
		}

		s.CreateWithID(id, name, enabled, comps)
	}
}

func decodeEntityHeader(rec *introspect.Record, log zerolog.Logger) (ecs.EntityID, string, bool, bool) {
	idVal, ok := rec.Get("entity_id")
	if !ok {
		log.Error().Msg("snapshot: entity record missing entity_id, skipping")
		return 0, "", false, false
	}
	idRaw, ok := idVal.AsUint64()
	if !ok {
		log.Error().Msg("snapshot: entity_id is not an unsigned integer, skipping")
		return 0, "", false, false
	}

	nameVal, _ := rec.Get("name")
	name, _ := nameVal.AsString()

	enabledVal, _ := rec.Get("enabled")
	enabled, _ := enabledVal.AsBool()

	return ecs.EntityID(idRaw), name, enabled, true
}

func decodeComponent(cv introspect.Value, registry *component.Registry, log zerolog.Logger) (component.Component, bool) {
	rec, ok := cv.AsRecord()
	if !ok {
		log.Error().Msg("snapshot: component entry is not a record, skipping")
		return nil, false
	}
	c, ok := registry.New(rec.Class)
	if !ok {
		log.Error().Str("class", rec.Class).Msg("snapshot: no constructor registered for component class, skipping")
		return nil, false
	}
	for _, name := range rec.Order {
		v, _ := rec.Get(name)
		if err := introspect.SetField(c, c, name, v); err != nil {
			log.Error().Str("class", rec.Class).Str("field", name).Err(err).Msg("snapshot: component field restore failed, leaving field at default")
		}
	}
	return c, true
}
