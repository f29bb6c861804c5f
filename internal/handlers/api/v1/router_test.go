package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	v1 "github.com/KirkDiggler/wfrp-encounter-api/internal/handlers/api/v1"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/encounter"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/encounters"
)

// RouterTestSuite drives the full stack over a file backend in a temp directory
type RouterTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *dicemock.MockRoller
	dir        string
	router     *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = dicemock.NewMockRoller(s.ctrl)
	s.dir = s.T().TempDir()

	repo, err := document.NewFile(&document.FileConfig{Dir: s.dir})
	s.Require().NoError(err)

	deps := collection.Deps{Repository: repo, IDGenerator: idgen.NewSequential("rec")}
	weapons, err := collection.NewWeapons(deps)
	s.Require().NoError(err)
	enemies, err := collection.NewEnemies(deps)
	s.Require().NoError(err)

	diceSvc, err := dice.NewOrchestrator(&dice.Config{Roller: s.mockRoller})
	s.Require().NoError(err)

	encounterSvc, err := encounter.NewOrchestrator(&encounter.Config{
		Enemies:       enemies,
		Weapons:       weapons,
		Dice:          diceSvc,
		EncounterRepo: encounters.NewInMemory(),
		IDGenerator:   idgen.NewSequential("enc"),
	})
	s.Require().NoError(err)

	s.router, err = v1.NewRouter(&v1.RouterConfig{
		Weapons:    weapons,
		Enemies:    enemies,
		Dice:       diceSvc,
		Encounters: encounterSvc,
	})
	s.Require().NoError(err)
}

func (s *RouterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RouterTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) expectRolls(size int, rolls ...int) {
	for _, r := range rolls {
		s.mockRoller.EXPECT().
			Roll(1, size).
			Return(&dice.RollResult{Dice: []int{r}, Total: r}, nil)
	}
}

func (s *RouterTestSuite) listWeapons() []wfrp.Weapon {
	rec := s.do(http.MethodGet, "/api/weapons", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var weapons []wfrp.Weapon
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &weapons))
	return weapons
}

func (s *RouterTestSuite) listEnemies() []wfrp.Enemy {
	rec := s.do(http.MethodGet, "/api/enemies", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var enemies []wfrp.Enemy
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &enemies))
	return enemies
}

func (s *RouterTestSuite) TestNewRouter_RequiresServices() {
	_, err := v1.NewRouter(&v1.RouterConfig{})
	s.Require().Error(err)
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"healthy","message":"Warhammer Fantasy 2e Encounter Manager"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestCORS_AllowsAnyOrigin() {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.test")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestCORS_PreflightAllowsEveryMethod() {
	for _, method := range []string{http.MethodPatch, http.MethodHead, http.MethodDelete} {
		s.Run(method, func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/weapons/w1", nil)
			req.Header.Set("Origin", "http://example.test")
			req.Header.Set("Access-Control-Request-Method", method)
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			s.Equal(http.StatusNoContent, rec.Code)
			s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
			s.Contains(rec.Header().Get("Access-Control-Allow-Methods"), method)
		})
	}
}

func (s *RouterTestSuite) TestDefaultsOnFreshDirectory() {
	var enemyNames []string
	for _, e := range s.listEnemies() {
		enemyNames = append(enemyNames, e.Name)
	}
	s.Equal([]string{"Goblin", "Orc", "Skaven Clanrat"}, enemyNames)

	var weaponNames []string
	for _, w := range s.listWeapons() {
		weaponNames = append(weaponNames, w.Name)
	}
	s.Equal([]string{"Short Sword", "Spear", "Crossbow", "Club", "Hand Weapon"}, weaponNames)

	s.FileExists(filepath.Join(s.dir, "weapons.json"))
	s.FileExists(filepath.Join(s.dir, "enemies.json"))
}

func (s *RouterTestSuite) TestCreateWeapon_AppendsWithGeneratedID() {
	rec := s.do(http.MethodPost, "/api/weapons", `{"name":"Dagger","damage":1}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	var created map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.NotEmpty(created["id"])
	s.Equal("", created["traits"])
	s.Equal("Dagger", created["name"])

	weapons := s.listWeapons()
	s.Require().Len(weapons, 6)
	s.Equal("Dagger", weapons[5].Name)
	s.Equal(created["id"], weapons[5].ID)
}

func (s *RouterTestSuite) TestUpdateUnknownEnemy_NotFoundAndUnchanged() {
	before := s.listEnemies()
	raw, err := os.ReadFile(filepath.Join(s.dir, "enemies.json"))
	s.Require().NoError(err)

	rec := s.do(http.MethodPut, "/api/enemies/nobody",
		`{"name":"Troll","stats":{"weaponSkill":30,"wounds":20},"abilities":[],"weaponName":"Club"}`)

	s.Equal(http.StatusNotFound, rec.Code)
	var body v1.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Enemy not found", body.Detail)

	s.Equal(before, s.listEnemies())
	after, err := os.ReadFile(filepath.Join(s.dir, "enemies.json"))
	s.Require().NoError(err)
	s.Equal(raw, after)
}

func (s *RouterTestSuite) TestUpdateEnemy_UsesPathID() {
	rec := s.do(http.MethodPut, "/api/enemies/orc",
		`{"id":"ignored","name":"Big Orc","stats":{"weaponSkill":40,"wounds":14},"abilities":[]}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	var updated wfrp.Enemy
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Equal("orc", updated.ID)
	s.Equal(14, updated.CurrentWounds)

	enemies := s.listEnemies()
	s.Require().Len(enemies, 3)
	s.Equal("Big Orc", enemies[1].Name)
}

func (s *RouterTestSuite) TestDelete_AlwaysSucceeds() {
	testCases := []struct {
		path    string
		message string
	}{
		{path: "/api/weapons/spear", message: "Weapon deleted"},
		{path: "/api/weapons/no-such-weapon", message: "Weapon deleted"},
		{path: "/api/enemies/goblin", message: "Enemy deleted"},
		{path: "/api/enemies/no-such-enemy", message: "Enemy deleted"},
	}

	for _, tc := range testCases {
		s.Run(tc.path, func() {
			rec := s.do(http.MethodDelete, tc.path, "")

			s.Equal(http.StatusOK, rec.Code)
			s.JSONEq(`{"message":"`+tc.message+`"}`, rec.Body.String())
		})
	}

	s.Len(s.listWeapons(), 4)
	s.Len(s.listEnemies(), 2)
}

func (s *RouterTestSuite) TestMalformedBodies() {
	testCases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "weapon without damage", method: http.MethodPost, path: "/api/weapons", body: `{"name":"Dagger"}`},
		{name: "weapon without name", method: http.MethodPost, path: "/api/weapons", body: `{"damage":2}`},
		{name: "weapon damage not a number", method: http.MethodPost, path: "/api/weapons", body: `{"name":"Dagger","damage":"lots"}`},
		{name: "enemy without stats", method: http.MethodPost, path: "/api/enemies", body: `{"name":"Troll"}`},
		{name: "update with broken json", method: http.MethodPut, path: "/api/enemies/orc", body: `{"name":`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(tc.method, tc.path, tc.body)
			s.Equal(http.StatusUnprocessableEntity, rec.Code)
		})
	}

	s.Len(s.listWeapons(), 5)
	s.Len(s.listEnemies(), 3)
}

func (s *RouterTestSuite) TestRollD6_StaysInRange() {
	s.expectRolls(dice.D6, 4)

	rec := s.do(http.MethodPost, "/api/roll-d6", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"roll":4}`, rec.Body.String())
}

func (s *RouterTestSuite) TestAttack_AppliesDamage() {
	rec := s.do(http.MethodPost, "/api/enemies",
		`{"id":"knight","name":"Knight","stats":{"weaponSkill":45,"strength":4,"toughness":4,"wounds":12},"abilities":[],"weaponName":"Hand Weapon"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	// hit 30 <= 45, damage d10 8, toughness 90 > orc toughness 4
	s.expectRolls(dice.D100, 30)
	s.expectRolls(dice.D10, 8)
	s.expectRolls(dice.D100, 90)

	rec = s.do(http.MethodPost, "/api/combat/attack", `{"attackerId":"knight","defenderId":"orc","apply":true}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	var out v1.AttackResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.True(out.Hit)
	s.Equal("Hand Weapon", out.WeaponName)
	s.Equal(4+out.WeaponDamage+4, out.Damage)
	s.Require().NotNil(out.Defender)
	s.Equal(0, out.Defender.CurrentWounds)
}

func (s *RouterTestSuite) TestAttack_UnknownEnemy() {
	rec := s.do(http.MethodPost, "/api/combat/attack", `{"attackerId":"ghost","defenderId":"orc"}`)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestEncounterLifecycle() {
	// goblin 1+3, orc 9+2
	s.expectRolls(dice.D10, 1, 9)

	rec := s.do(http.MethodPost, "/api/encounters", `{"enemyIds":["goblin","orc"]}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var started v1.EncounterResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &started))
	s.Require().Len(started.Order, 2)
	s.Equal("orc", started.Order[0].EnemyID)
	s.Require().NotNil(started.Current)
	s.Equal("orc", started.Current.EnemyID)
	s.Equal(1, started.Round)

	rec = s.do(http.MethodPost, "/api/encounters/"+started.ID+"/next", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var next v1.EncounterResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &next))
	s.Equal("goblin", next.Current.EnemyID)

	rec = s.do(http.MethodDelete, "/api/encounters/"+started.ID+"/combatants/goblin", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/encounters/"+started.ID, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var got v1.EncounterResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got.Order, 1)

	rec = s.do(http.MethodDelete, "/api/encounters/"+started.ID, "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/encounters/"+started.ID, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestStartEncounter_RequiresEnemies() {
	rec := s.do(http.MethodPost, "/api/encounters", `{"enemyIds":[]}`)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
