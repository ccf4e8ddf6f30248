package game

import (
	"time"

	"github.com/rs/zerolog"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/world"
)

// BuildZombieHorde wires a World and populates it with the BaseStats/
// CurrentStats split: every zombie shares ZombieBaseStats, but each gets its
// own CurrentStats so damage to one never touches another's health. It
// registers HealthSystem and RegenerationSystem in the frame phase and
// returns the constructed World so a caller can drive it with w.Scheduler().
//
// This is the pattern the worked example exists to demonstrate: separate the
// archetype-defining, rarely-changing stat block from the per-entity runtime
// state that systems mutate every tick.
func BuildZombieHorde(count int) *world.World {
	w := world.New(zerolog.Nop())

	w.Registry().Register("BaseStats", func() component.Component { return &BaseStats{} })
	w.Registry().Register("CurrentStats", func() component.Component { return &CurrentStats{} })
	w.Registry().Register("StatModifiers", func() component.Component { return &StatModifiers{} })

	for i := 0; i < count; i++ {
		base := ZombieBaseStats
		w.Store().Create("zombie", true, []component.Component{
			&base,
			&CurrentStats{CurrentHealth: ZombieBaseStats.MaxHealth},
		})
	}

	// HealthSystem runs before RegenerationSystem in a distinct, earlier
	// pool: both take a write lock on CurrentStats, and running them in the
	// same pool would leave their relative order — and thus whether a
	// just-healed entity's death check sees pre- or post-regen health —
	// unspecified, per the scheduler's per-pool parallelism contract.
	w.Scheduler().AddSystem("game", 40, false, HealthSystem{}.Run)
	w.Scheduler().AddSystem("game", 60, false, RegenerationSystem{PerTick: 1}.Run)
	w.Scheduler().AddSystem("game", 80, false, ModifierCleanupSystem{}.Run)

	return w
}

// ApplyPoison attaches a time-limited damage-over-time modifier to id,
// expressed as a negative health-regen modifier so it flows through the same
// HealthSystem code path as a positive regen buff. If id has no StatModifiers
// component yet, one is added; otherwise the modifier is appended to the
// existing component in place.
func ApplyPoison(w *world.World, id ecs.EntityID, damagePerTick float64, duration time.Duration) error {
	mod := StatModifier{
		Type:      ModifierTypeHealthRegen,
		Value:     -damagePerTick,
		ExpiresAt: time.Now().Add(duration),
		Source:    "poison",
	}

	_, _, comps, ok := w.Store().Get(id)
	if !ok {
		return ecs.ErrEntityNotFound
	}
	for _, c := range comps {
		if mods, isMods := c.(*StatModifiers); isMods {
			mods.AddModifier(mod)
			return nil
		}
	}
	return w.Store().AddComponent(id, &StatModifiers{Modifiers: []StatModifier{mod}})
}
