package world_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/resource"
	"github.com/forgecs/ecs/store"
	"github.com/forgecs/ecs/world"
)

func TestNewWorldWiresDefaults(t *testing.T) {
	w := world.New(zerolog.Nop())
	defer w.Close()

	require.NotNil(t, w.Resources())
	require.NotNil(t, w.Registry())
	require.NotNil(t, w.Store())
	require.NotNil(t, w.Scheduler())
}

func TestWorldOptionsOverrideDefaults(t *testing.T) {
	res := resource.New(zerolog.Nop())
	reg := component.NewRegistry()
	reg.Register("Marker", func() component.Component { return nil })

	w := world.New(zerolog.Nop(), world.WithResources(res), world.WithRegistry(reg))
	defer w.Close()

	assert.Same(t, res, w.Resources())
	assert.Same(t, reg, w.Registry())
	assert.ElementsMatch(t, []string{"Marker"}, reg.Classes())
}

func TestWorldStoreAndSchedulerShareResources(t *testing.T) {
	w := world.New(zerolog.Nop())
	defer w.Close()

	id := w.Store().Create("hero", true, nil)
	assert.True(t, w.Store().Exists(id))

	var ran bool
	w.Scheduler().AddSystem("core", 0, false, func(r *resource.Container) error {
		ran = true
		assert.Same(t, w.Resources(), r)

		got := resource.Require[*store.Store](r)
		assert.Same(t, w.Store(), got)
		return nil
	})
	require.NoError(t, w.Scheduler().Run())
	assert.True(t, ran)
}

func TestWorldPublishesStoreAndRegistryAsResources(t *testing.T) {
	w := world.New(zerolog.Nop())
	defer w.Close()

	s, ok := resource.Lookup[*store.Store](w.Resources())
	require.True(t, ok)
	assert.Same(t, w.Store(), s)

	reg, ok := resource.Lookup[*component.Registry](w.Resources())
	require.True(t, ok)
	assert.Same(t, w.Registry(), reg)
}
