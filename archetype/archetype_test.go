package archetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgecs/ecs/archetype"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/introspect"
)

type position struct {
	X, Y float64
}

func (p *position) ClassName() string                     { return "Position" }
func (p *position) Fields() []introspect.FieldDescriptor   { return nil }
func (p *position) Methods() []introspect.MethodDescriptor { return nil }
func (p *position) ByteSize() int                          { return 16 }
func (p *position) Encode(buf []byte) int                  { return 16 }
func (p *position) Decode(buf []byte)                      {}
func (p *position) Clone() component.Component             { cp := *p; return &cp }

type velocity struct{ DX, DY float64 }

func (v *velocity) ClassName() string                     { return "Velocity" }
func (v *velocity) Fields() []introspect.FieldDescriptor   { return nil }
func (v *velocity) Methods() []introspect.MethodDescriptor { return nil }
func (v *velocity) ByteSize() int                          { return 16 }
func (v *velocity) Encode(buf []byte) int                  { return 16 }
func (v *velocity) Decode(buf []byte)                      {}
func (v *velocity) Clone() component.Component             { cp := *v; return &cp }

func TestInsertAndReadRow(t *testing.T) {
	et := component.NewEntityType("Position", "Velocity")
	a := archetype.New(et)

	row := a.InsertRow(1, "A", true, []component.Component{&position{1, 2}, &velocity{3, 4}})
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, a.Len())

	view := a.RowAt(row, false)
	assert.Equal(t, uint64(1), view.ID())
	assert.Equal(t, "A", view.Name())
	assert.True(t, view.Enabled())
	pos := view.Instances("Position")
	require.Len(t, pos, 1)
	assert.Equal(t, &position{1, 2}, pos[0])
	view.Release()
}

func TestRemoveRowSwapsLast(t *testing.T) {
	et := component.NewEntityType("Position")
	a := archetype.New(et)

	r0 := a.InsertRow(1, "first", true, []component.Component{&position{0, 0}})
	r1 := a.InsertRow(2, "second", true, []component.Component{&position{1, 1}})
	require.Equal(t, 0, r0)
	require.Equal(t, 1, r1)

	movedID, hadMove := a.RemoveRow(0)
	assert.True(t, hadMove)
	assert.Equal(t, uint64(2), movedID)
	assert.Equal(t, 1, a.Len())

	view := a.RowAt(0, false)
	assert.Equal(t, uint64(2), view.ID())
	assert.Equal(t, "second", view.Name())
	pos := view.Instances("Position")
	require.Len(t, pos, 1)
	assert.Equal(t, &position{1, 1}, pos[0])
	view.Release()
}

func TestRemoveLastRowNoMove(t *testing.T) {
	et := component.NewEntityType("Position")
	a := archetype.New(et)
	a.InsertRow(1, "only", true, []component.Component{&position{0, 0}})

	movedID, hadMove := a.RemoveRow(0)
	assert.False(t, hadMove)
	assert.Equal(t, uint64(0), movedID)
	assert.Equal(t, 0, a.Len())
}

func TestMultiInstanceSameClassGroupedOnRow(t *testing.T) {
	et := component.NewEntityType("Position")
	a := archetype.New(et)
	a.InsertRow(1, "multi", true, []component.Component{&position{1, 1}, &position{2, 2}})

	view := a.RowAt(0, false)
	defer view.Release()
	pos := view.Instances("Position")
	require.Len(t, pos, 2)
	assert.Equal(t, &position{1, 1}, pos[0])
	assert.Equal(t, &position{2, 2}, pos[1])
}

func TestMutInstancesMutatesInPlace(t *testing.T) {
	et := component.NewEntityType("Position")
	a := archetype.New(et)
	a.InsertRow(1, "a", true, []component.Component{&position{1, 2}})

	view := a.RowAt(0, true)
	group := view.MutInstances("Position")
	group[0].(*position).X = 99
	view.Release()

	check := a.RowAt(0, false)
	defer check.Release()
	assert.Equal(t, 99.0, check.Instances("Position")[0].(*position).X)
}
