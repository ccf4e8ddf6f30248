package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgecs/ecs/component"
)

func TestNewEntityTypeSortsAndDedupes(t *testing.T) {
	et := component.NewEntityType("Velocity", "Position", "Velocity")
	assert.Equal(t, component.EntityType{"Position", "Velocity"}, et)
}

func TestEntityTypeWithWithout(t *testing.T) {
	et := component.NewEntityType("Position")
	et = et.With("Velocity")
	assert.True(t, et.Contains("Velocity"))
	assert.True(t, et.Contains("Position"))

	et = et.Without("Position")
	assert.False(t, et.Contains("Position"))
	assert.Equal(t, component.EntityType{"Velocity"}, et)
}

func TestEntityTypeEqual(t *testing.T) {
	a := component.NewEntityType("Position", "Velocity")
	b := component.NewEntityType("Velocity", "Position")
	assert.True(t, a.Equal(b))

	c := component.NewEntityType("Velocity")
	assert.False(t, a.Equal(c))
}

func TestEntityTypeKeyStableAcrossInsertOrder(t *testing.T) {
	a := component.NewEntityType("Position", "Velocity", "Health")
	b := component.NewEntityType("Health", "Velocity", "Position")
	assert.Equal(t, a.Key(), b.Key())
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := component.NewRegistry()
	reg.Register("Marker", func() component.Component { return nil })
	_, ok := reg.New("Marker")
	assert.True(t, ok)

	_, ok = reg.New("Unknown")
	assert.False(t, ok)
	assert.Contains(t, reg.Classes(), "Marker")
}
