package wfrp

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// EntityTypeWeapon is the rpg-toolkit entity type reported by weapons
const EntityTypeWeapon = "weapon"

// Weapon is a standalone weapon record
type Weapon struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Damage int    `json:"damage"`
	Traits string `json:"traits"`
}

var _ core.Entity = (*Weapon)(nil)

// GetID returns the weapon's ID
func (w *Weapon) GetID() string {
	return w.ID
}

// GetType returns the entity type for rpg-toolkit
func (w *Weapon) GetType() string {
	return EntityTypeWeapon
}

// SetID replaces the weapon's ID
func (w *Weapon) SetID(id string) {
	w.ID = id
}

// Initialize is a no-op; weapons derive nothing at construction
func (w *Weapon) Initialize() {}

// Validate checks the weapon against the domain model
func (w *Weapon) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", w.Name, vb)
	errors.ValidateMin("damage", w.Damage, 0, vb)
	return vb.BuildUnprocessable()
}

// HasTrait reports whether the traits text mentions trait, ignoring case
func (w *Weapon) HasTrait(trait string) bool {
	return strings.Contains(strings.ToLower(w.Traits), strings.ToLower(trait))
}

// TraitList splits the traits text on commas
func (w *Weapon) TraitList() []string {
	if strings.TrimSpace(w.Traits) == "" {
		return nil
	}

	parts := strings.Split(w.Traits, ",")
	traits := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			traits = append(traits, t)
		}
	}
	return traits
}

type weaponJSON struct {
	ID     *string      `json:"id"`
	Name   *string      `json:"name"`
	Damage *wholeNumber `json:"damage"`
	Traits *string      `json:"traits"`
}

// UnmarshalJSON decodes a weapon, rejecting bodies without a name or damage
func (w *Weapon) UnmarshalJSON(data []byte) error {
	var raw weaponJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnprocessable, "malformed weapon")
	}

	vb := errors.NewValidationBuilder()
	if raw.Name == nil {
		vb.RequiredField("name")
	}
	if raw.Damage == nil {
		vb.RequiredField("damage")
	}
	if err := vb.BuildUnprocessable(); err != nil {
		return err
	}

	*w = Weapon{}
	setString(&w.ID, raw.ID)
	setString(&w.Name, raw.Name)
	setInt(&w.Damage, raw.Damage)
	setString(&w.Traits, raw.Traits)

	return nil
}
