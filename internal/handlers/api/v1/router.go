// Package v1 exposes the encounter manager over HTTP
package v1

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/encounter"
)

// ServiceName is reported by the health endpoint
const ServiceName = "Warhammer Fantasy 2e Encounter Manager"

// RouterConfig holds the services exposed under /api
type RouterConfig struct {
	Weapons    collection.WeaponService
	Enemies    collection.EnemyService
	Dice       dice.Service
	Encounters encounter.Service
	Logger     *zap.Logger
}

// Validate ensures all required services are present
func (c *RouterConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Weapons == nil {
		vb.RequiredField("Weapons")
	}
	if c.Enemies == nil {
		vb.RequiredField("Enemies")
	}
	if c.Dice == nil {
		vb.RequiredField("Dice")
	}
	if c.Encounters == nil {
		vb.RequiredField("Encounters")
	}
	return vb.Build()
}

// NewRouter builds the gin engine with every /api route mounted
func NewRouter(cfg *RouterConfig) (*gin.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid router config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	weapons, err := NewCollectionHandler(&CollectionHandlerConfig[*wfrp.Weapon]{
		Service:        cfg.Weapons,
		NewRecord:      func() *wfrp.Weapon { return &wfrp.Weapon{} },
		DeletedMessage: "Weapon deleted",
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	enemies, err := NewCollectionHandler(&CollectionHandlerConfig[*wfrp.Enemy]{
		Service:        cfg.Enemies,
		NewRecord:      func() *wfrp.Enemy { return &wfrp.Enemy{} },
		DeletedMessage: "Enemy deleted",
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	diceHandler, err := NewDiceHandler(&DiceHandlerConfig{DiceService: cfg.Dice, Logger: logger})
	if err != nil {
		return nil, err
	}

	combat, err := NewCombatHandler(&CombatHandlerConfig{EncounterService: cfg.Encounters, Logger: logger})
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"*"},
	}))

	api := router.Group("/api")
	api.GET("/health", Health)
	weapons.RegisterRoutes(api.Group("/weapons"))
	enemies.RegisterRoutes(api.Group("/enemies"))
	diceHandler.RegisterRoutes(api)
	combat.RegisterRoutes(api)

	return router, nil
}

// Health reports the service is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": ServiceName,
	})
}
