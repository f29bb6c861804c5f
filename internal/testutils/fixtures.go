package testutils

import (
	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/testutils/builders"
)

// Combatant IDs used by the combat fixtures
const (
	KnightID = "knight"
	ZombieID = "zombie"

	// TestWeaponName is carried by the knight and present in the default weapons
	TestWeaponName = "Hand Weapon"
)

// CreateTestKnight creates a skilled, armoured combatant carrying TestWeaponName
func CreateTestKnight() *wfrp.Enemy {
	return builders.NewEnemyBuilder().
		WithID(KnightID).
		WithName("Knight").
		WithStats(wfrp.StatBlock{}).
		WithCombatStats(45, 4, 4, 35).
		WithWounds(12).
		WithWeapon(TestWeaponName).
		Build()
}

// CreateTestZombie creates a slow, unarmed combatant with a high toughness target
func CreateTestZombie() *wfrp.Enemy {
	return builders.NewEnemyBuilder().
		WithID(ZombieID).
		WithName("Zombie").
		WithStats(wfrp.StatBlock{}).
		WithCombatStats(25, 3, 30, 10).
		WithWounds(5).
		WithAbility("Undead", "Immune to fear").
		Build()
}
