// Package wfrp holds the Warhammer Fantasy 2e record types stored by the encounter API
package wfrp

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// Default values for stat block fields that are not supplied
const (
	DefaultAttacks = 1
	DefaultWounds  = 1
)

// StatBlock is the characteristic profile of an enemy.
// No range validation is applied to any field.
type StatBlock struct {
	WeaponSkill    int `json:"weaponSkill"`
	BallisticSkill int `json:"ballisticSkill"`
	Strength       int `json:"strength"`
	Toughness      int `json:"toughness"`
	Agility        int `json:"agility"`
	Intelligence   int `json:"intelligence"`
	WillPower      int `json:"willPower"`
	Fellowship     int `json:"fellowship"`
	Attacks        int `json:"attacks"`
	Wounds         int `json:"wounds"`
}

// NewStatBlock returns a stat block with every default applied
func NewStatBlock() StatBlock {
	return StatBlock{
		Attacks: DefaultAttacks,
		Wounds:  DefaultWounds,
	}
}

// statBlockJSON accepts both the camelCase wire names and the snake_case field names
type statBlockJSON struct {
	WeaponSkill      *wholeNumber `json:"weaponSkill"`
	WeaponSkillField *wholeNumber `json:"weapon_skill"`
	BallisticSkill   *wholeNumber `json:"ballisticSkill"`
	BallisticField   *wholeNumber `json:"ballistic_skill"`
	Strength         *wholeNumber `json:"strength"`
	Toughness        *wholeNumber `json:"toughness"`
	Agility          *wholeNumber `json:"agility"`
	Intelligence     *wholeNumber `json:"intelligence"`
	WillPower        *wholeNumber `json:"willPower"`
	WillPowerField   *wholeNumber `json:"will_power"`
	Fellowship       *wholeNumber `json:"fellowship"`
	Attacks          *wholeNumber `json:"attacks"`
	Wounds           *wholeNumber `json:"wounds"`
}

// UnmarshalJSON decodes a stat block, filling in defaults for absent fields
func (s *StatBlock) UnmarshalJSON(data []byte) error {
	var raw statBlockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnprocessable, "malformed stats")
	}

	*s = NewStatBlock()
	setInt(&s.WeaponSkill, raw.WeaponSkill, raw.WeaponSkillField)
	setInt(&s.BallisticSkill, raw.BallisticSkill, raw.BallisticField)
	setInt(&s.Strength, raw.Strength)
	setInt(&s.Toughness, raw.Toughness)
	setInt(&s.Agility, raw.Agility)
	setInt(&s.Intelligence, raw.Intelligence)
	setInt(&s.WillPower, raw.WillPower, raw.WillPowerField)
	setInt(&s.Fellowship, raw.Fellowship)
	setInt(&s.Attacks, raw.Attacks)
	setInt(&s.Wounds, raw.Wounds)

	return nil
}

// wholeNumber decodes any JSON number with an integral value, so 3 and 3.0 are equal
type wholeNumber int

func (n *wholeNumber) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = wholeNumber(i)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return fmt.Errorf("%s is not a whole number", data)
	}
	*n = wholeNumber(f)
	return nil
}

// setInt assigns the first supplied candidate to dst, leaving dst untouched if none are set
func setInt(dst *int, candidates ...*wholeNumber) bool {
	for _, c := range candidates {
		if c != nil {
			*dst = int(*c)
			return true
		}
	}
	return false
}

// setString is setInt for strings
func setString(dst *string, candidates ...*string) bool {
	for _, c := range candidates {
		if c != nil {
			*dst = *c
			return true
		}
	}
	return false
}
