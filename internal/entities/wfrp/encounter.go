package wfrp

import (
	"slices"
)

// InitiativeEntry is one combatant's place in the turn order
type InitiativeEntry struct {
	EnemyID    string `json:"enemyId"`
	Name       string `json:"name"`
	Initiative int    `json:"initiative"`
}

// Encounter tracks turn order for a fight between stored enemies.
// Turn counts every turn taken since the start and never wraps.
type Encounter struct {
	ID      string            `json:"id"`
	Entries []InitiativeEntry `json:"entries"`
	Turn    int               `json:"turn"`
}

// NewEncounter orders entries by initiative, highest first.
// Ties keep the order they were given in.
func NewEncounter(id string, entries []InitiativeEntry) *Encounter {
	ordered := slices.Clone(entries)
	SortByInitiative(ordered)
	return &Encounter{ID: id, Entries: ordered}
}

// SortByInitiative sorts entries highest initiative first, keeping ties stable
func SortByInitiative(entries []InitiativeEntry) {
	slices.SortStableFunc(entries, func(a, b InitiativeEntry) int {
		return b.Initiative - a.Initiative
	})
}

// Current returns the entry whose turn it is
func (e *Encounter) Current() (InitiativeEntry, bool) {
	if len(e.Entries) == 0 {
		return InitiativeEntry{}, false
	}
	return e.Entries[e.Turn%len(e.Entries)], true
}

// Next advances to the following turn
func (e *Encounter) Next() {
	e.Turn++
}

// Round is 1-based; an empty encounter is in round 0
func (e *Encounter) Round() int {
	if len(e.Entries) == 0 {
		return 0
	}
	return e.Turn/len(e.Entries) + 1
}

// Remove drops every entry for the enemy and reports whether any was present.
// The turn counter restarts at zero if it no longer points inside the order.
func (e *Encounter) Remove(enemyID string) bool {
	before := len(e.Entries)
	e.Entries = slices.DeleteFunc(e.Entries, func(entry InitiativeEntry) bool {
		return entry.EnemyID == enemyID
	})

	if e.Turn >= len(e.Entries) && len(e.Entries) > 0 {
		e.Turn = 0
	}
	return len(e.Entries) < before
}
