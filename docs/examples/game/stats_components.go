// Package game is a worked example, not part of the core module surface. It
// demonstrates the canonical shared/dense split: an immutable BaseStats
// component copied into every row of its archetype column, and a mutable CurrentStats
// component unique per entity, queried together through store.Query.
package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/forgecs/ecs/component"
	"github.com/forgecs/ecs/introspect"
)

// BaseStats holds the immutable stat block shared by every entity of one
// archetype (every zombie shares ZombieBaseStats, for instance). Because
// components are plain structs, "sharing" here means every entity's row
// carries its own copy of the same values, not a pointer to one object;
// the saving comes from the archetype's column still being one flat array,
// not from avoiding the copy.
type BaseStats struct {
	MaxHealth        int
	BaseAttackDamage int
	BaseDefense      int
	BaseMoveSpeed    float64
	MiningEfficiency int
}

func (b *BaseStats) ClassName() string { return "BaseStats" }

func (b *BaseStats) Fields() []introspect.FieldDescriptor {
	return []introspect.FieldDescriptor{
		{
			Name: "max_health", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.I64(int64(self.(*BaseStats).MaxHealth)) },
			Set: func(self any, v introspect.Value) error {
				n, ok := v.AsInt64()
				if !ok {
					return introspect.ArgIncorrect("max_health", 0)
				}
				self.(*BaseStats).MaxHealth = int(n)
				return nil
			},
		},
		{
			Name: "base_attack_damage", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value {
				return introspect.I64(int64(self.(*BaseStats).BaseAttackDamage))
			},
			Set: func(self any, v introspect.Value) error {
				n, ok := v.AsInt64()
				if !ok {
					return introspect.ArgIncorrect("base_attack_damage", 0)
				}
				self.(*BaseStats).BaseAttackDamage = int(n)
				return nil
			},
		},
		{
			Name: "base_defense", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.I64(int64(self.(*BaseStats).BaseDefense)) },
			Set: func(self any, v introspect.Value) error {
				n, ok := v.AsInt64()
				if !ok {
					return introspect.ArgIncorrect("base_defense", 0)
				}
				self.(*BaseStats).BaseDefense = int(n)
				return nil
			},
		},
		{
			Name: "base_move_speed", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.F64(self.(*BaseStats).BaseMoveSpeed) },
			Set: func(self any, v introspect.Value) error {
				f, ok := v.AsFloat64()
				if !ok {
					return introspect.ArgIncorrect("base_move_speed", 0)
				}
				self.(*BaseStats).BaseMoveSpeed = f
				return nil
			},
		},
		{
			Name: "mining_efficiency", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value {
				return introspect.I64(int64(self.(*BaseStats).MiningEfficiency))
			},
			Set: func(self any, v introspect.Value) error {
				n, ok := v.AsInt64()
				if !ok {
					return introspect.ArgIncorrect("mining_efficiency", 0)
				}
				self.(*BaseStats).MiningEfficiency = int(n)
				return nil
			},
		},
	}
}

func (b *BaseStats) Methods() []introspect.MethodDescriptor { return nil }
func (b *BaseStats) ByteSize() int                          { return 8*4 + 8 }

func (b *BaseStats) Encode(buf []byte) int {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(int64(b.MaxHealth)))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(int64(b.BaseAttackDamage)))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(int64(b.BaseDefense)))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(b.BaseMoveSpeed))
	binary.LittleEndian.PutUint64(buf[32:40], uint64(int64(b.MiningEfficiency)))
	return b.ByteSize()
}

func (b *BaseStats) Decode(buf []byte) {
	b.MaxHealth = int(int64(binary.LittleEndian.Uint64(buf[0:8])))
	b.BaseAttackDamage = int(int64(binary.LittleEndian.Uint64(buf[8:16])))
	b.BaseDefense = int(int64(binary.LittleEndian.Uint64(buf[16:24])))
	b.BaseMoveSpeed = math.Float64frombits(binary.LittleEndian.Uint64(buf[24:32]))
	b.MiningEfficiency = int(int64(binary.LittleEndian.Uint64(buf[32:40])))
}

func (b *BaseStats) Clone() component.Component { cp := *b; return &cp }

// CurrentStats is the mutable, per-entity half of the split: runtime health
// that HealthSystem and RegenerationSystem modify independently for every
// entity, even two entities sharing the same BaseStats.
type CurrentStats struct {
	CurrentHealth int
	IsDead        bool
}

func (c *CurrentStats) ClassName() string { return "CurrentStats" }

func (c *CurrentStats) Fields() []introspect.FieldDescriptor {
	return []introspect.FieldDescriptor{
		{
			Name: "current_health", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value {
				return introspect.I64(int64(self.(*CurrentStats).CurrentHealth))
			},
			Set: func(self any, v introspect.Value) error {
				n, ok := v.AsInt64()
				if !ok {
					return introspect.ArgIncorrect("current_health", 0)
				}
				self.(*CurrentStats).CurrentHealth = int(n)
				return nil
			},
		},
		{
			Name: "is_dead", SetKind: introspect.SetterMut, Serializable: true,
			Get: func(self any) introspect.Value { return introspect.Bool(self.(*CurrentStats).IsDead) },
			Set: func(self any, v introspect.Value) error {
				b, ok := v.AsBool()
				if !ok {
					return introspect.ArgIncorrect("is_dead", 0)
				}
				self.(*CurrentStats).IsDead = b
				return nil
			},
		},
	}
}

func (c *CurrentStats) Methods() []introspect.MethodDescriptor { return nil }
func (c *CurrentStats) ByteSize() int                          { return 9 }

func (c *CurrentStats) Encode(buf []byte) int {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(int64(c.CurrentHealth)))
	if c.IsDead {
		buf[8] = 1
	} else {
		buf[8] = 0
	}
	return c.ByteSize()
}

func (c *CurrentStats) Decode(buf []byte) {
	c.CurrentHealth = int(int64(binary.LittleEndian.Uint64(buf[0:8])))
	c.IsDead = buf[8] != 0
}

func (c *CurrentStats) Clone() component.Component { cp := *c; return &cp }

// ModifierType enumerates the kinds of time-limited buff/debuff a
// StatModifier can apply.
type ModifierType int

const (
	ModifierTypeAttackMultiplier ModifierType = iota
	ModifierTypeDefenseMultiplier
	ModifierTypeSpeedMultiplier
	ModifierTypeFlatAttack
	ModifierTypeFlatDefense
	ModifierTypeHealthRegen
)

// StatModifier is one active, time-limited modification to an entity's
// effective stats.
type StatModifier struct {
	Type      ModifierType
	Value     float64
	ExpiresAt time.Time
	Source    string
}

// StatModifiers holds every active modifier for one entity. It is never
// shared across entities even when two entities carry the same BaseStats.
type StatModifiers struct {
	Modifiers []StatModifier
}

func (m *StatModifiers) ClassName() string                      { return "StatModifiers" }
func (m *StatModifiers) Fields() []introspect.FieldDescriptor    { return nil }
func (m *StatModifiers) Methods() []introspect.MethodDescriptor  { return nil }
func (m *StatModifiers) ByteSize() int                           { return 0 }
func (m *StatModifiers) Encode(buf []byte) int                   { return 0 }
func (m *StatModifiers) Decode(buf []byte)                       {}
func (m *StatModifiers) Clone() component.Component {
	cp := &StatModifiers{Modifiers: make([]StatModifier, len(m.Modifiers))}
	copy(cp.Modifiers, m.Modifiers)
	return cp
}

// AddModifier appends a new stat modifier.
func (m *StatModifiers) AddModifier(mod StatModifier) {
	m.Modifiers = append(m.Modifiers, mod)
}

// RemoveExpired drops every modifier whose ExpiresAt is before now, reporting
// whether anything was removed.
func (m *StatModifiers) RemoveExpired(now time.Time) bool {
	before := len(m.Modifiers)
	active := m.Modifiers[:0]
	for _, mod := range m.Modifiers {
		if now.Before(mod.ExpiresAt) {
			active = append(active, mod)
		}
	}
	m.Modifiers = active
	return len(m.Modifiers) < before
}

// EffectiveAttack folds BaseStats.BaseAttackDamage through every active
// attack-related modifier: flat bonuses first, then multipliers.
func EffectiveAttack(base BaseStats, mods *StatModifiers) int {
	if mods == nil {
		return base.BaseAttackDamage
	}
	attack := float64(base.BaseAttackDamage)
	for _, mod := range mods.Modifiers {
		if mod.Type == ModifierTypeFlatAttack {
			attack += mod.Value
		}
	}
	for _, mod := range mods.Modifiers {
		if mod.Type == ModifierTypeAttackMultiplier {
			attack *= mod.Value
		}
	}
	return int(attack)
}

// EffectiveDefense is EffectiveAttack's counterpart for defense.
func EffectiveDefense(base BaseStats, mods *StatModifiers) int {
	if mods == nil {
		return base.BaseDefense
	}
	defense := float64(base.BaseDefense)
	for _, mod := range mods.Modifiers {
		if mod.Type == ModifierTypeFlatDefense {
			defense += mod.Value
		}
	}
	for _, mod := range mods.Modifiers {
		if mod.Type == ModifierTypeDefenseMultiplier {
			defense *= mod.Value
		}
	}
	return int(defense)
}

// Archetype base-stat presets used by the worked example's HealthSystem
// tests and walkthroughs.
var (
	ZombieBaseStats   = BaseStats{MaxHealth: 50, BaseAttackDamage: 10, BaseDefense: 5, BaseMoveSpeed: 2.0}
	SkeletonBaseStats = BaseStats{MaxHealth: 40, BaseAttackDamage: 15, BaseDefense: 3, BaseMoveSpeed: 3.0}
	MinerBaseStats    = BaseStats{MaxHealth: 75, BaseAttackDamage: 5, BaseDefense: 8, BaseMoveSpeed: 3.0, MiningEfficiency: 15}
	BossBaseStats     = BaseStats{MaxHealth: 500, BaseAttackDamage: 50, BaseDefense: 30, BaseMoveSpeed: 1.5}
	PlayerBaseStats   = BaseStats{MaxHealth: 100, BaseAttackDamage: 20, BaseDefense: 10, BaseMoveSpeed: 5.0, MiningEfficiency: 5}
)
