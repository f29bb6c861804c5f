package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/encounter"
)

// CombatHandlerConfig holds dependencies for the combat handler
type CombatHandlerConfig struct {
	EncounterService encounter.Service
	Logger           *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *CombatHandlerConfig) Validate() error {
	if c == nil || c.EncounterService == nil {
		return errors.InvalidArgument("encounter service is required")
	}
	return nil
}

// CombatHandler serves combat resolution and the encounter tracker
type CombatHandler struct {
	service encounter.Service
	logger  *zap.Logger
}

// NewCombatHandler creates a new combat handler with the given configuration
func NewCombatHandler(cfg *CombatHandlerConfig) (*CombatHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CombatHandler{
		service: cfg.EncounterService,
		logger:  logger,
	}, nil
}

// RegisterRoutes mounts combat under /combat and the tracker under /encounters
func (h *CombatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	combat := rg.Group("/combat")
	combat.POST("/attack", h.Attack)
	combat.POST("/parry", h.Parry)
	combat.POST("/initiative", h.Initiative)

	encounters := rg.Group("/encounters")
	encounters.POST("", h.Start)
	encounters.GET("/:id", h.Get)
	encounters.POST("/:id/next", h.NextTurn)
	encounters.DELETE("/:id/combatants/:enemyId", h.RemoveCombatant)
	encounters.DELETE("/:id", h.End)
}

// AttackRequest names the attacking and defending enemies
type AttackRequest struct {
	AttackerID string `json:"attackerId" binding:"required"`
	DefenderID string `json:"defenderId" binding:"required"`
	Apply      bool   `json:"apply"`
}

// AttackResponse is the roll breakdown of one attack
type AttackResponse struct {
	Hit           bool        `json:"hit"`
	HitRoll       int         `json:"hitRoll"`
	Damage        int         `json:"damage"`
	DamageRoll    int         `json:"damageRoll"`
	ToughnessRoll int         `json:"toughnessRoll"`
	ToughnessPass bool        `json:"toughnessPass"`
	WeaponName    string      `json:"weaponName"`
	WeaponDamage  int         `json:"weaponDamage"`
	Defender      *wfrp.Enemy `json:"defender"`
}

// Attack resolves one attack
func (h *CombatHandler) Attack(c *gin.Context) {
	var req AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.service.Attack(c.Request.Context(), &encounter.AttackInput{
		AttackerID: req.AttackerID,
		DefenderID: req.DefenderID,
		Apply:      req.Apply,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, AttackResponse{
		Hit:           out.Hit,
		HitRoll:       out.HitRoll,
		Damage:        out.Damage,
		DamageRoll:    out.DamageRoll,
		ToughnessRoll: out.ToughnessRoll,
		ToughnessPass: out.ToughnessPass,
		WeaponName:    out.WeaponName,
		WeaponDamage:  out.WeaponDamage,
		Defender:      out.Defender,
	})
}

// ParryRequest names the parrying enemy
type ParryRequest struct {
	DefenderID string `json:"defenderId" binding:"required"`
}

// Parry tests the defender's weapon skill
func (h *CombatHandler) Parry(c *gin.Context) {
	var req ParryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.service.Parry(c.Request.Context(), &encounter.ParryInput{DefenderID: req.DefenderID})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": out.Success,
		"roll":    out.Roll,
		"target":  out.Target,
	})
}

// EnemyIDsRequest lists the enemies taking part
type EnemyIDsRequest struct {
	EnemyIDs []string `json:"enemyIds" binding:"required,min=1"`
}

// Initiative rolls initiative without tracking it
func (h *CombatHandler) Initiative(c *gin.Context) {
	var req EnemyIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.service.Initiative(c.Request.Context(), &encounter.InitiativeInput{EnemyIDs: req.EnemyIDs})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": out.Order})
}

// EncounterResponse is a tracked encounter
type EncounterResponse struct {
	ID      string                 `json:"id"`
	Order   []wfrp.InitiativeEntry `json:"order"`
	Current *wfrp.InitiativeEntry  `json:"current"`
	Round   int                    `json:"round"`
	Turn    int                    `json:"turn"`
}

func toEncounterResponse(state *encounter.EncounterState) EncounterResponse {
	order := state.Order
	if order == nil {
		order = []wfrp.InitiativeEntry{}
	}
	return EncounterResponse{
		ID:      state.ID,
		Order:   order,
		Current: state.Current,
		Round:   state.Round,
		Turn:    state.Turn,
	}
}

// Start rolls initiative and begins tracking turns
func (h *CombatHandler) Start(c *gin.Context) {
	var req EnemyIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.service.Start(c.Request.Context(), &encounter.StartInput{EnemyIDs: req.EnemyIDs})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toEncounterResponse(out.Encounter))
}

// Get returns a tracked encounter
func (h *CombatHandler) Get(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), &encounter.GetInput{EncounterID: c.Param("id")})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toEncounterResponse(out.Encounter))
}

// NextTurn advances to the next combatant
func (h *CombatHandler) NextTurn(c *gin.Context) {
	out, err := h.service.NextTurn(c.Request.Context(), &encounter.NextTurnInput{EncounterID: c.Param("id")})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toEncounterResponse(out.Encounter))
}

// RemoveCombatant drops an enemy from the turn order
func (h *CombatHandler) RemoveCombatant(c *gin.Context) {
	out, err := h.service.RemoveCombatant(c.Request.Context(), &encounter.RemoveCombatantInput{
		EncounterID: c.Param("id"),
		EnemyID:     c.Param("enemyId"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toEncounterResponse(out.Encounter))
}

// End stops tracking an encounter
func (h *CombatHandler) End(c *gin.Context) {
	if _, err := h.service.End(c.Request.Context(), &encounter.EndInput{EncounterID: c.Param("id")}); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Encounter ended"})
}
