package encounter

import (
	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
)

// AttackInput defines the request for resolving one attack between stored enemies
type AttackInput struct {
	AttackerID string
	DefenderID string

	// Apply persists the damage to the defender's current wounds
	Apply bool
}

// AttackOutput reports every roll made while resolving an attack.
// DamageRoll, ToughnessRoll and ToughnessPass are zero when the attack misses.
type AttackOutput struct {
	Hit           bool
	HitRoll       int
	Damage        int
	DamageRoll    int
	ToughnessRoll int
	ToughnessPass bool
	WeaponName    string
	WeaponDamage  int

	// Defender is the defender after damage; wounds only change when Apply was set
	Defender *wfrp.Enemy
}

// ParryInput defines the request for a parry attempt
type ParryInput struct {
	DefenderID string
}

// ParryOutput defines the result of a parry attempt
type ParryOutput struct {
	Success bool
	Roll    int
	Target  int
}

// InitiativeInput defines the request for rolling initiative
type InitiativeInput struct {
	EnemyIDs []string
}

// InitiativeOutput lists the combatants highest initiative first
type InitiativeOutput struct {
	Order []wfrp.InitiativeEntry
}

// StartInput defines the request for starting a tracked encounter
type StartInput struct {
	EnemyIDs []string
}

// StartOutput defines the response for starting a tracked encounter
type StartOutput struct {
	Encounter *EncounterState
}

// GetInput defines the request for reading a tracked encounter
type GetInput struct {
	EncounterID string
}

// GetOutput defines the response for reading a tracked encounter
type GetOutput struct {
	Encounter *EncounterState
}

// NextTurnInput defines the request for advancing a tracked encounter
type NextTurnInput struct {
	EncounterID string
}

// NextTurnOutput defines the response for advancing a tracked encounter
type NextTurnOutput struct {
	Encounter *EncounterState
}

// RemoveCombatantInput defines the request for dropping an enemy from a tracked encounter
type RemoveCombatantInput struct {
	EncounterID string
	EnemyID     string
}

// RemoveCombatantOutput defines the response for dropping an enemy from a tracked encounter
type RemoveCombatantOutput struct {
	Encounter *EncounterState
}

// EndInput defines the request for ending a tracked encounter
type EndInput struct {
	EncounterID string
}

// EndOutput defines the response for ending a tracked encounter
type EndOutput struct{}

// EncounterState is a tracked encounter with its derived turn information
type EncounterState struct {
	ID      string
	Order   []wfrp.InitiativeEntry
	Current *wfrp.InitiativeEntry
	Round   int
	Turn    int
}

func newEncounterState(enc *wfrp.Encounter) *EncounterState {
	state := &EncounterState{
		ID:    enc.ID,
		Order: enc.Entries,
		Round: enc.Round(),
		Turn:  enc.Turn,
	}
	if current, ok := enc.Current(); ok {
		state.Current = &current
	}
	return state
}
