// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
)

// EnemyBuilder provides a fluent interface for building test Enemy instances
type EnemyBuilder struct {
	enemy *wfrp.Enemy
}

// NewEnemyBuilder creates a new builder with the base stat block and no abilities
func NewEnemyBuilder() *EnemyBuilder {
	stats := wfrp.NewStatBlock()
	return &EnemyBuilder{
		enemy: &wfrp.Enemy{
			ID:            "enemy-test-123",
			Name:          "Test Enemy",
			Stats:         stats,
			Abilities:     []wfrp.Ability{},
			CurrentWounds: stats.Wounds,
		},
	}
}

// WithID sets the enemy ID
func (b *EnemyBuilder) WithID(id string) *EnemyBuilder {
	b.enemy.ID = id
	return b
}

// WithName sets the enemy name
func (b *EnemyBuilder) WithName(name string) *EnemyBuilder {
	b.enemy.Name = name
	return b
}

// WithStats replaces the stat block and resets current wounds to its maximum
func (b *EnemyBuilder) WithStats(stats wfrp.StatBlock) *EnemyBuilder {
	b.enemy.Stats = stats
	b.enemy.CurrentWounds = stats.Wounds
	return b
}

// WithCombatStats sets the characteristics used by attacks, parries and initiative
func (b *EnemyBuilder) WithCombatStats(weaponSkill, strength, toughness, agility int) *EnemyBuilder {
	b.enemy.Stats.WeaponSkill = weaponSkill
	b.enemy.Stats.Strength = strength
	b.enemy.Stats.Toughness = toughness
	b.enemy.Stats.Agility = agility
	return b
}

// WithWounds sets maximum and current wounds together
func (b *EnemyBuilder) WithWounds(wounds int) *EnemyBuilder {
	b.enemy.Stats.Wounds = wounds
	b.enemy.CurrentWounds = wounds
	return b
}

// WithCurrentWounds sets current wounds only
func (b *EnemyBuilder) WithCurrentWounds(current int) *EnemyBuilder {
	b.enemy.CurrentWounds = current
	return b
}

// WithWeapon sets the weapon name carried by the enemy
func (b *EnemyBuilder) WithWeapon(name string) *EnemyBuilder {
	b.enemy.WeaponName = name
	return b
}

// WithAbility appends an ability
func (b *EnemyBuilder) WithAbility(name, description string) *EnemyBuilder {
	b.enemy.Abilities = append(b.enemy.Abilities, wfrp.Ability{Name: name, Description: description})
	return b
}

// Build returns the constructed enemy
func (b *EnemyBuilder) Build() *wfrp.Enemy {
	return b.enemy
}
