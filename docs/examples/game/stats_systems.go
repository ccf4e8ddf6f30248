package game

import (
	"time"

	"github.com/forgecs/ecs/query"
	"github.com/forgecs/ecs/resource"
	"github.com/forgecs/ecs/store"
)

// HealthSystem reads BaseStats (with), modifies CurrentStats and
// StatModifiers (with_mut), and marks an entity dead once its health reaches
// zero. Registering it with scheduler.AddSystem produces a scheduler.Callback
// through the method value HealthSystem{}.Run.
type HealthSystem struct{}

// Run applies health regeneration from any active StatModifiers and flags
// entities whose health has dropped to zero as dead.
func (HealthSystem) Run(res *resource.Container) error {
	s := resource.Require[*store.Store](res)
	now := time.Now()

	it := s.Query(query.With("BaseStats"), query.WithMut("CurrentStats"), query.Optional("StatModifiers", true))
	defer it.Close()

	for {
		tuple, ok := it.Next()
		if !ok {
			break
		}
		base := tuple[0].Component.(*BaseStats)
		current := tuple[1].Component.(*CurrentStats)
		if current.IsDead {
			continue
		}

		var mods *StatModifiers
		if tuple[2].Present {
			mods = tuple[2].Component.(*StatModifiers)
			mods.RemoveExpired(now)
			for _, mod := range mods.Modifiers {
				if mod.Type == ModifierTypeHealthRegen {
					current.CurrentHealth += int(mod.Value)
					if current.CurrentHealth > base.MaxHealth {
						current.CurrentHealth = base.MaxHealth
					}
				}
			}
		}

		if current.CurrentHealth <= 0 {
			current.CurrentHealth = 0
			current.IsDead = true
		}
	}
	return nil
}

// RegenerationSystem slowly restores health to entities below their max,
// independent of any explicit health-regen modifier — a passive baseline
// regeneration every entity gets.
type RegenerationSystem struct {
	PerTick int
}

// Run advances CurrentHealth toward BaseStats.MaxHealth by PerTick per call,
// skipping dead entities.
func (r RegenerationSystem) Run(res *resource.Container) error {
	s := resource.Require[*store.Store](res)

	it := s.Query(query.With("BaseStats"), query.WithMut("CurrentStats"))
	defer it.Close()

	for {
		tuple, ok := it.Next()
		if !ok {
			break
		}
		base := tuple[0].Component.(*BaseStats)
		current := tuple[1].Component.(*CurrentStats)
		if current.IsDead || current.CurrentHealth >= base.MaxHealth {
			continue
		}
		current.CurrentHealth += r.PerTick
		if current.CurrentHealth > base.MaxHealth {
			current.CurrentHealth = base.MaxHealth
		}
	}
	return nil
}

// ModifierCleanupSystem drops expired StatModifiers entries independent of
// HealthSystem, for entities that carry modifiers but no CurrentStats (pure
// buff carriers, e.g. an aura-emitting prop).
type ModifierCleanupSystem struct{}

// Run removes every StatModifiers entry whose ExpiresAt has passed.
func (ModifierCleanupSystem) Run(res *resource.Container) error {
	s := resource.Require[*store.Store](res)
	now := time.Now()

	it := s.Query(query.WithMut("StatModifiers"))
	defer it.Close()

	for {
		tuple, ok := it.Next()
		if !ok {
			break
		}
		mods := tuple[0].Component.(*StatModifiers)
		mods.RemoveExpired(now)
	}
	return nil
}
