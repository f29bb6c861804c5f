package collection

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
)

// Document names of the two stored collections
const (
	DocumentWeapons = "weapons"
	DocumentEnemies = "enemies"
)

// Messages reported when an ID is not in its collection
const (
	WeaponNotFoundMessage = "Weapon not found"
	EnemyNotFoundMessage  = "Enemy not found"
)

// WeaponService manages the weapons collection
type WeaponService = Service[*wfrp.Weapon]

// EnemyService manages the enemies collection
type EnemyService = Service[*wfrp.Enemy]

// Deps are the dependencies shared by the weapon and enemy collections
type Deps struct {
	Repository  document.Repository
	IDGenerator idgen.Generator
	Logger      *zap.Logger
}

// NewWeapons creates the weapons collection, seeded with the built-in weapons
func NewWeapons(deps Deps) (WeaponService, error) {
	return NewOrchestrator(&Config[*wfrp.Weapon]{
		Repository:      deps.Repository,
		Document:        DocumentWeapons,
		Defaults:        JSONDefaults(wfrp.DefaultWeaponsDocument),
		NewRecord:       func() *wfrp.Weapon { return &wfrp.Weapon{} },
		IDGenerator:     deps.IDGenerator,
		Logger:          deps.Logger,
		NotFoundMessage: WeaponNotFoundMessage,
	})
}

// NewEnemies creates the enemies collection, seeded with the built-in enemies
func NewEnemies(deps Deps) (EnemyService, error) {
	return NewOrchestrator(&Config[*wfrp.Enemy]{
		Repository:      deps.Repository,
		Document:        DocumentEnemies,
		Defaults:        JSONDefaults(wfrp.DefaultEnemiesDocument),
		NewRecord:       func() *wfrp.Enemy { return &wfrp.Enemy{} },
		IDGenerator:     deps.IDGenerator,
		Logger:          deps.Logger,
		NotFoundMessage: EnemyNotFoundMessage,
	})
}

// JSONDefaults adapts a compiled-in JSON document into a Defaults function.
// Each call parses a fresh copy.
func JSONDefaults(doc func() []byte) func() []document.Record {
	return func() []document.Record {
		return document.MustParseRecords(doc())
	}
}
