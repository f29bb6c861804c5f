package builders

import (
	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
)

// WeaponBuilder provides a fluent interface for building test Weapon instances
type WeaponBuilder struct {
	weapon *wfrp.Weapon
}

// NewWeaponBuilder creates a new builder with minimal defaults
func NewWeaponBuilder() *WeaponBuilder {
	return &WeaponBuilder{
		weapon: &wfrp.Weapon{
			ID:     "weapon-test-123",
			Name:   "Test Weapon",
			Damage: 1,
		},
	}
}

// WithID sets the weapon ID
func (b *WeaponBuilder) WithID(id string) *WeaponBuilder {
	b.weapon.ID = id
	return b
}

// WithName sets the weapon name
func (b *WeaponBuilder) WithName(name string) *WeaponBuilder {
	b.weapon.Name = name
	return b
}

// WithDamage sets the damage bonus
func (b *WeaponBuilder) WithDamage(damage int) *WeaponBuilder {
	b.weapon.Damage = damage
	return b
}

// WithTraits sets the comma separated traits text
func (b *WeaponBuilder) WithTraits(traits string) *WeaponBuilder {
	b.weapon.Traits = traits
	return b
}

// Build returns the constructed weapon
func (b *WeaponBuilder) Build() *wfrp.Weapon {
	return b.weapon
}
