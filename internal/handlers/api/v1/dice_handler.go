package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c == nil || c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler serves the stateless dice endpoints
type DiceHandler struct {
	diceService dice.Service
	logger      *zap.Logger
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
		logger:      logger,
	}, nil
}

// RegisterRoutes mounts the dice endpoints under rg
func (h *DiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/roll-d100", h.rollDie(dice.D100))
	rg.POST("/roll-d10", h.rollDie(dice.D10))
	rg.POST("/roll-d6", h.rollDie(dice.D6))
	rg.POST("/roll", h.Roll)
	rg.POST("/test", h.Test)
}

// RollResponse carries a single die result
type RollResponse struct {
	Roll int `json:"roll"`
}

func (h *DiceHandler) rollDie(size int) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := h.diceService.RollDie(c.Request.Context(), &dice.RollDieInput{Size: size})
		if err != nil {
			writeError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, RollResponse{Roll: out.Roll})
	}
}

// RollNotationRequest asks for an "XdY" roll
type RollNotationRequest struct {
	Notation string `json:"notation" binding:"required"`
}

// RollNotationResponse reports each die and the total
type RollNotationResponse struct {
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Total    int    `json:"total"`
}

// Roll rolls dice notation
func (h *DiceHandler) Roll(c *gin.Context) {
	var req RollNotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.diceService.Roll(c.Request.Context(), &dice.RollInput{Notation: req.Notation})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, RollNotationResponse{
		Notation: out.Notation,
		Dice:     out.Dice,
		Total:    out.Total,
	})
}

// TestRequest asks for a d100 test against a characteristic
type TestRequest struct {
	Characteristic *int `json:"characteristic" binding:"required"`
	Modifier       int  `json:"modifier"`
}

// TestResponse reports a characteristic test
type TestResponse struct {
	Success bool `json:"success"`
	Roll    int  `json:"roll"`
	Target  int  `json:"target"`
	Degrees int  `json:"degrees"`
}

// Test rolls d100 against a characteristic plus modifier
func (h *DiceHandler) Test(c *gin.Context) {
	var req TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	out, err := h.diceService.Test(c.Request.Context(), &dice.TestInput{
		Characteristic: *req.Characteristic,
		Modifier:       req.Modifier,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TestResponse{
		Success: out.Success,
		Roll:    out.Roll,
		Target:  out.Target,
		Degrees: out.Degrees,
	})
}
