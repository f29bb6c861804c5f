package wfrp_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

type EnemyTestSuite struct {
	suite.Suite
}

func TestEnemyTestSuite(t *testing.T) {
	suite.Run(t, new(EnemyTestSuite))
}

func (s *EnemyTestSuite) decode(body string) (*wfrp.Enemy, error) {
	var enemy wfrp.Enemy
	err := json.Unmarshal([]byte(body), &enemy)
	return &enemy, err
}

func (s *EnemyTestSuite) TestDecodeAppliesStatDefaults() {
	enemy, err := s.decode(`{"name":"Rat","stats":{}}`)
	s.Require().NoError(err)

	s.Equal(wfrp.NewStatBlock(), enemy.Stats)
	s.Equal(1, enemy.Stats.Attacks)
	s.Equal(1, enemy.Stats.Wounds)
	s.Equal(0, enemy.Stats.WeaponSkill)
	s.Equal("", enemy.ID)
	s.Equal("", enemy.WeaponName)
	s.NotNil(enemy.Abilities)
	s.Empty(enemy.Abilities)
}

func (s *EnemyTestSuite) TestDecodeAbsentCurrentWoundsTakesMaxWounds() {
	enemy, err := s.decode(`{"name":"Orc","stats":{"wounds":3}}`)
	s.Require().NoError(err)
	s.Equal(3, enemy.CurrentWounds)
}

func (s *EnemyTestSuite) TestDecodeExplicitZeroCurrentWoundsIsKept() {
	enemy, err := s.decode(`{"name":"Orc","stats":{"wounds":3},"currentWounds":0}`)
	s.Require().NoError(err)
	s.Equal(0, enemy.CurrentWounds)
}

func (s *EnemyTestSuite) TestDecodeAcceptsFieldNames() {
	enemy, err := s.decode(`{
		"name":"Orc",
		"stats":{"weapon_skill":41,"ballistic_skill":25,"will_power":29,"wounds":12},
		"weapon_name":"Choppa",
		"current_wounds":7
	}`)
	s.Require().NoError(err)

	s.Equal(41, enemy.Stats.WeaponSkill)
	s.Equal(25, enemy.Stats.BallisticSkill)
	s.Equal(29, enemy.Stats.WillPower)
	s.Equal("Choppa", enemy.WeaponName)
	s.Equal(7, enemy.CurrentWounds)
}

func (s *EnemyTestSuite) TestDecodeAcceptsWholeNumberFloats() {
	enemy, err := s.decode(`{"name":"Orc","stats":{"strength":30.0,"wounds":12.0},"currentWounds":7.0}`)
	s.Require().NoError(err)
	s.Equal(30, enemy.Stats.Strength)
	s.Equal(12, enemy.Stats.Wounds)
	s.Equal(7, enemy.CurrentWounds)
}

func (s *EnemyTestSuite) TestDecodeRejectsMalformedBodies() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"stats":{}}`},
		{"missing stats", `{"name":"Orc"}`},
		{"stats not an object", `{"name":"Orc","stats":3}`},
		{"string characteristic", `{"name":"Orc","stats":{"strength":"high"}}`},
		{"fractional characteristic", `{"name":"Orc","stats":{"strength":30.5}}`},
		{"fractional current wounds", `{"name":"Orc","stats":{},"currentWounds":0.5}`},
		{"ability without description", `{"name":"Orc","stats":{},"abilities":[{"name":"Brutal"}]}`},
		{"not an object", `[]`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.decode(tc.body)
			s.Require().Error(err)
			s.True(errors.IsUnprocessable(err), "got %v", err)
		})
	}
}

func (s *EnemyTestSuite) TestInitializeDerivesCurrentWounds() {
	enemy := &wfrp.Enemy{Name: "Orc", Stats: wfrp.StatBlock{Wounds: 3}}
	enemy.Initialize()
	s.Equal(3, enemy.CurrentWounds)
	s.NotNil(enemy.Abilities)

	wounded := &wfrp.Enemy{Name: "Orc", Stats: wfrp.StatBlock{Wounds: 3}, CurrentWounds: 2}
	wounded.Initialize()
	s.Equal(2, wounded.CurrentWounds)
}

func (s *EnemyTestSuite) TestMarshalUsesWireNames() {
	enemy := &wfrp.Enemy{
		ID:            "goblin",
		Name:          "Goblin",
		Stats:         wfrp.StatBlock{WeaponSkill: 3, WillPower: 2, Attacks: 1, Wounds: 1},
		Abilities:     []wfrp.Ability{},
		WeaponName:    "Short Sword",
		CurrentWounds: 1,
	}

	data, err := json.Marshal(enemy)
	s.Require().NoError(err)

	var raw map[string]any
	s.Require().NoError(json.Unmarshal(data, &raw))
	s.Contains(raw, "weaponName")
	s.Contains(raw, "currentWounds")
	s.Equal([]any{}, raw["abilities"])
	s.Contains(raw["stats"], "weaponSkill")
	s.Contains(raw["stats"], "willPower")
}

func (s *EnemyTestSuite) TestWounds() {
	enemy := &wfrp.Enemy{Stats: wfrp.StatBlock{Wounds: 5}, CurrentWounds: 5}

	enemy.TakeDamage(3)
	s.Equal(2, enemy.CurrentWounds)
	s.True(enemy.IsAlive())

	enemy.TakeDamage(10)
	s.Equal(0, enemy.CurrentWounds)
	s.False(enemy.IsAlive())

	enemy.Heal(2)
	s.Equal(2, enemy.CurrentWounds)

	enemy.Heal(20)
	s.Equal(5, enemy.CurrentWounds)
}

func (s *EnemyTestSuite) TestAbilityLookup() {
	enemy := &wfrp.Enemy{Abilities: []wfrp.Ability{{Name: "Cowardly", Description: "flees"}}}

	s.True(enemy.HasAbility("cowardly"))
	s.False(enemy.HasAbility("Brutal"))

	ability, ok := enemy.Ability("COWARDLY")
	s.True(ok)
	s.Equal("flees", ability.Description)
}

func (s *EnemyTestSuite) TestDefaultEnemiesDecode() {
	var enemies []wfrp.Enemy
	s.Require().NoError(json.Unmarshal(wfrp.DefaultEnemiesDocument(), &enemies))
	s.Require().Len(enemies, 3)

	s.Equal("Goblin", enemies[0].Name)
	s.Equal("Orc", enemies[1].Name)
	s.Equal("Skaven Clanrat", enemies[2].Name)
	s.Equal(2, enemies[1].CurrentWounds)
	s.Equal("Hand Weapon", enemies[1].WeaponName)
}
