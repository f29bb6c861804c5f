package wfrp

import (
	"bytes"
	_ "embed"
)

//go:embed defaults/weapons.json
var defaultWeapons []byte

//go:embed defaults/enemies.json
var defaultEnemies []byte

// DefaultWeaponsDocument returns the JSON document seeded into an absent weapons collection:
// Short Sword, Spear, Crossbow, Club and Hand Weapon, in that order.
func DefaultWeaponsDocument() []byte {
	return bytes.Clone(defaultWeapons)
}

// DefaultEnemiesDocument returns the JSON document seeded into an absent enemies collection:
// Goblin, Orc and Skaven Clanrat, in that order.
func DefaultEnemiesDocument() []byte {
	return bytes.Clone(defaultEnemies)
}
