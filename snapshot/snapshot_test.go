package snapshot_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/introspect"
	"github.com/forgecs/ecs/snapshot"
	"github.com/forgecs/ecs/store"
)

type pos struct{ X, Y float64 }

func (p *pos) ClassName() string { return "Position" }
func (p *pos) Fields() []introspect.FieldDescriptor {
	return []introspect.FieldDescriptor{
		{
			Name: "x", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.F64(self.(*pos).X) },
			Set: func(self any, v introspect.Value) error {
				f, ok := v.AsFloat64()
				if !ok {
					return introspect.ArgIncorrect("x", 0)
				}
				self.(*pos).X = f
				return nil
			},
		},
		{
			Name: "y", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.F64(self.(*pos).Y) },
			Set: func(self any, v introspect.Value) error {
				f, ok := v.AsFloat64()
				if !ok {
					return introspect.ArgIncorrect("y", 0)
				}
				self.(*pos).Y = f
				return nil
			},
		},
	}
}
func (p *pos) Methods() []introspect.MethodDescriptor { return nil }
func (p *pos) ByteSize() int                          { return 16 }
func (p *pos) Encode(buf []byte) int                  { return 16 }
func (p *pos) Decode(buf []byte)                      {}
func (p *pos) Clone() component.Component             { cp := *p; return &cp }

func newRegistry() *component.Registry {
	reg := component.NewRegistry()
	reg.Register("Position", func() component.Component { return &pos{} })
	return reg
}

func TestSnapshotRoundTripThousandEntities(t *testing.T) {
	s := store.New(zerolog.Nop())
	for i := 0; i < 1000; i++ {
		s.Create("", true, []component.Component{&pos{float64(i), float64(i) * 2}})
	}

	snap := snapshot.Snapshot(s)

	s2 := store.New(zerolog.Nop())
	snapshot.Restore(s2, snap, newRegistry(), zerolog.Nop())

	seen := make(map[float64]bool)
	count := 0
	s2.Each(func(id ecs.EntityID, name string, enabled bool, comps []component.Component) bool {
		count++
		require.Len(t, comps, 1)
		seen[comps[0].(*pos).X] = true
		return true
	})
	assert.Equal(t, 1000, count)
	assert.Len(t, seen, 1000)
}

func TestSnapshotRestoreExactValues(t *testing.T) {
	s := store.New(zerolog.Nop())
	s.Create("hero", true, []component.Component{&pos{1.5, 2.5}})

	snap := snapshot.Snapshot(s)
	arr, ok := snap.AsArray()
	require.True(t, ok)
	require.Len(t, arr, 1)

	rec, ok := arr[0].AsRecord()
	require.True(t, ok)
	assert.Equal(t, "Entity", rec.Class)
	name, _ := rec.Fields["name"].AsString()
	assert.Equal(t, "hero", name)

	s2 := store.New(zerolog.Nop())
	snapshot.Restore(s2, snap, newRegistry(), zerolog.Nop())

	var gotName string
	var gotComps []component.Component
	s2.Each(func(_ ecs.EntityID, name string, enabled bool, comps []component.Component) bool {
		gotName = name
		gotComps = comps
		return true
	})
	assert.Equal(t, "hero", gotName)
	require.Len(t, gotComps, 1)
	assert.Equal(t, 1.5, gotComps[0].(*pos).X)
	assert.Equal(t, 2.5, gotComps[0].(*pos).Y)
}

func TestRestoreSkipsUnregisteredComponentClass(t *testing.T) {
	rec := introspect.NewRecord("Entity")
	rec.Set("entity_id", introspect.U64(1))
	rec.Set("name", introspect.String("x"))
	rec.Set("enabled", introspect.Bool(true))
	compRec := introspect.NewRecord("Unknown")
	rec.Set("components", introspect.Array([]introspect.Value{introspect.RecordValue(compRec)}))
	snap := introspect.Array([]introspect.Value{introspect.RecordValue(rec)})

	s := store.New(zerolog.Nop())
	snapshot.Restore(s, snap, component.NewRegistry(), zerolog.Nop())

	var comps []component.Component
	s.Each(func(_ ecs.EntityID, name string, enabled bool, c []component.Component) bool {
		comps = c
		return true
	})
	assert.Empty(t, comps, "entity still restored, just without the unknown component")
}
