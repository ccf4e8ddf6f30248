package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/docs/examples/game"
	"github.com/forgecs/ecs/world"
)

func firstEntity(t *testing.T, w *world.World) ecs.EntityID {
	t.Helper()
	var id ecs.EntityID
	w.Store().Each(func(eid ecs.EntityID, _ string, _ bool, _ []component.Component) bool {
		id = eid
		return false
	})
	require.NotZero(t, id)
	return id
}

func TestHealthSystemMarksEntityDeadAtZeroHealth(t *testing.T) {
	w := game.BuildZombieHorde(1)
	defer w.Close()

	id := firstEntity(t, w)
	_, _, comps, ok := w.Store().Get(id)
	require.True(t, ok)
	for _, c := range comps {
		if current, isCurrent := c.(*game.CurrentStats); isCurrent {
			current.CurrentHealth = 0
		}
	}

	require.NoError(t, w.Scheduler().Run())

	_, _, comps, ok = w.Store().Get(id)
	require.True(t, ok)
	for _, c := range comps {
		if current, isCurrent := c.(*game.CurrentStats); isCurrent {
			assert.True(t, current.IsDead)
			assert.Equal(t, 0, current.CurrentHealth)
		}
	}
}

func TestRegenerationSystemHealsTowardMax(t *testing.T) {
	w := game.BuildZombieHorde(1)
	defer w.Close()

	id := firstEntity(t, w)
	_, _, comps, ok := w.Store().Get(id)
	require.True(t, ok)
	for _, c := range comps {
		if current, isCurrent := c.(*game.CurrentStats); isCurrent {
			current.CurrentHealth = 1
		}
	}

	require.NoError(t, w.Scheduler().Run())

	_, _, comps, ok = w.Store().Get(id)
	require.True(t, ok)
	for _, c := range comps {
		if current, isCurrent := c.(*game.CurrentStats); isCurrent {
			assert.Equal(t, 2, current.CurrentHealth)
			assert.False(t, current.IsDead)
		}
	}
}

func TestApplyPoisonAddsModifierToExistingEntity(t *testing.T) {
	w := game.BuildZombieHorde(1)
	defer w.Close()

	id := firstEntity(t, w)
	require.NoError(t, game.ApplyPoison(w, id, 5, time.Minute))

	_, _, comps, ok := w.Store().Get(id)
	require.True(t, ok)
	found := false
	for _, c := range comps {
		if mods, isMods := c.(*game.StatModifiers); isMods {
			found = true
			assert.Len(t, mods.Modifiers, 1)
			assert.Equal(t, game.ModifierTypeHealthRegen, mods.Modifiers[0].Type)
		}
	}
	assert.True(t, found)
}

func TestApplyPoisonUnknownEntityFails(t *testing.T) {
	w := game.BuildZombieHorde(0)
	defer w.Close()

	err := game.ApplyPoison(w, 999, 5, time.Minute)
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
}
