package wfrp_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

func TestWeapon_Decode(t *testing.T) {
	var weapon wfrp.Weapon
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Dagger","damage":1}`), &weapon))

	assert.Equal(t, "", weapon.ID)
	assert.Equal(t, "Dagger", weapon.Name)
	assert.Equal(t, 1, weapon.Damage)
	assert.Equal(t, "", weapon.Traits)
	assert.Equal(t, wfrp.EntityTypeWeapon, weapon.GetType())
}

func TestWeapon_DecodeAcceptsWholeNumberFloats(t *testing.T) {
	for _, body := range []string{`{"name":"Dagger","damage":1.0}`, `{"name":"Dagger","damage":1e0}`} {
		var weapon wfrp.Weapon
		require.NoError(t, json.Unmarshal([]byte(body), &weapon), body)
		assert.Equal(t, 1, weapon.Damage, body)
	}
}

func TestWeapon_DecodeRejectsMalformedBodies(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing damage", `{"name":"Dagger"}`},
		{"missing name", `{"damage":1}`},
		{"string damage", `{"name":"Dagger","damage":"one"}`},
		{"numeric string damage", `{"name":"Dagger","damage":"3"}`},
		{"fractional damage", `{"name":"Dagger","damage":1.5}`},
		{"not an object", `"Dagger"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var weapon wfrp.Weapon
			err := json.Unmarshal([]byte(tc.body), &weapon)
			require.Error(t, err)
			assert.True(t, errors.IsUnprocessable(err), "got %v", err)
		})
	}
}

func TestWeapon_Validate(t *testing.T) {
	assert.NoError(t, (&wfrp.Weapon{Name: "Club", Damage: 0}).Validate())

	err := (&wfrp.Weapon{Name: " ", Damage: -1}).Validate()
	require.Error(t, err)
	assert.True(t, errors.IsUnprocessable(err))
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "damage: must be at least 0")
}

func TestWeapon_Traits(t *testing.T) {
	weapon := &wfrp.Weapon{Traits: "two-handed, Reach"}

	assert.True(t, weapon.HasTrait("reach"))
	assert.False(t, weapon.HasTrait("ranged"))
	assert.Equal(t, []string{"two-handed", "Reach"}, weapon.TraitList())
	assert.Nil(t, (&wfrp.Weapon{Traits: "  "}).TraitList())
}

func TestDefaultWeaponsDecode(t *testing.T) {
	var weapons []wfrp.Weapon
	require.NoError(t, json.Unmarshal(wfrp.DefaultWeaponsDocument(), &weapons))

	names := make([]string, len(weapons))
	for i, w := range weapons {
		names[i] = w.Name
	}
	assert.Equal(t, []string{"Short Sword", "Spear", "Crossbow", "Club", "Hand Weapon"}, names)
}
