package wfrp

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// EntityTypeEnemy is the rpg-toolkit entity type reported by enemies
const EntityTypeEnemy = "enemy"

// Ability is a named special rule embedded in an enemy
type Ability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type abilityJSON struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UnmarshalJSON decodes an ability; both fields are required
func (a *Ability) UnmarshalJSON(data []byte) error {
	var raw abilityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnprocessable, "malformed ability")
	}

	vb := errors.NewValidationBuilder()
	if raw.Name == nil {
		vb.RequiredField("abilities.name")
	}
	if raw.Description == nil {
		vb.RequiredField("abilities.description")
	}
	if err := vb.BuildUnprocessable(); err != nil {
		return err
	}

	a.Name = *raw.Name
	a.Description = *raw.Description
	return nil
}

// Enemy is an enemy record. WeaponName is a copy of a weapon's display name,
// not a reference; renaming or deleting the weapon leaves it unchanged.
type Enemy struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Stats         StatBlock `json:"stats"`
	Abilities     []Ability `json:"abilities"`
	WeaponName    string    `json:"weaponName"`
	CurrentWounds int       `json:"currentWounds"`
}

var _ core.Entity = (*Enemy)(nil)

// GetID returns the enemy's ID
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *Enemy) GetType() string {
	return EntityTypeEnemy
}

// SetID replaces the enemy's ID
func (e *Enemy) SetID(id string) {
	e.ID = id
}

// Initialize derives CurrentWounds from Stats.Wounds when it is zero.
// Only called when a record is first created.
func (e *Enemy) Initialize() {
	if e.CurrentWounds == 0 {
		e.CurrentWounds = e.Stats.Wounds
	}
	if e.Abilities == nil {
		e.Abilities = []Ability{}
	}
}

// Validate checks the enemy against the domain model
func (e *Enemy) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", e.Name, vb)
	return vb.BuildUnprocessable()
}

// IsAlive reports whether the enemy has wounds remaining
func (e *Enemy) IsAlive() bool {
	return e.CurrentWounds > 0
}

// TakeDamage removes wounds, never going below zero
func (e *Enemy) TakeDamage(damage int) {
	e.setWounds(e.CurrentWounds - damage)
}

// Heal restores wounds, never exceeding Stats.Wounds
func (e *Enemy) Heal(healing int) {
	e.setWounds(min(e.Stats.Wounds, e.CurrentWounds+healing))
}

func (e *Enemy) setWounds(wounds int) {
	e.CurrentWounds = max(0, wounds)
}

// Ability returns the first ability whose name matches, ignoring case
func (e *Enemy) Ability(name string) (Ability, bool) {
	for _, a := range e.Abilities {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Ability{}, false
}

// HasAbility reports whether the enemy has an ability with the given name
func (e *Enemy) HasAbility(name string) bool {
	_, ok := e.Ability(name)
	return ok
}

type enemyJSON struct {
	ID                 *string      `json:"id"`
	Name               *string      `json:"name"`
	Stats              *StatBlock   `json:"stats"`
	Abilities          []Ability    `json:"abilities"`
	WeaponName         *string      `json:"weaponName"`
	WeaponNameField    *string      `json:"weapon_name"`
	CurrentWounds      *wholeNumber `json:"currentWounds"`
	CurrentWoundsField *wholeNumber `json:"current_wounds"`
}

// UnmarshalJSON decodes an enemy from either alias or field names.
// An absent currentWounds takes the value of stats.wounds; an explicit
// value, including zero, is kept as given.
func (e *Enemy) UnmarshalJSON(data []byte) error {
	var raw enemyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		if errors.GetCode(err) == errors.CodeUnprocessable {
			return err
		}
		return errors.WrapWithCode(err, errors.CodeUnprocessable, "malformed enemy")
	}

	vb := errors.NewValidationBuilder()
	if raw.Name == nil {
		vb.RequiredField("name")
	}
	if raw.Stats == nil {
		vb.RequiredField("stats")
	}
	if err := vb.BuildUnprocessable(); err != nil {
		return err
	}

	*e = Enemy{
		Name:      *raw.Name,
		Stats:     *raw.Stats,
		Abilities: raw.Abilities,
	}
	if e.Abilities == nil {
		e.Abilities = []Ability{}
	}
	setString(&e.ID, raw.ID)
	setString(&e.WeaponName, raw.WeaponName, raw.WeaponNameField)
	if !setInt(&e.CurrentWounds, raw.CurrentWounds, raw.CurrentWoundsField) {
		e.CurrentWounds = e.Stats.Wounds
	}

	return nil
}
