package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice Roller

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// Roller rolls count dice of the given size
type Roller interface {
	Roll(count, size int) (*RollResult, error)
}

// RollResult holds the individual dice and their sum
type RollResult struct {
	Dice  []int
	Total int
}

type toolkitRoller struct{}

// NewToolkitRoller returns a Roller backed by rpg-toolkit
func NewToolkitRoller() Roller {
	return toolkitRoller{}
}

// Roll throws each die as its own rpg-toolkit roll so the individual values are kept
func (toolkitRoller) Roll(count, size int) (*RollResult, error) {
	result := &RollResult{Dice: make([]int, 0, count)}

	for i := 0; i < count; i++ {
		roll, err := dice.NewRoll(1, size)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create d%d roll", size)
		}

		value := roll.GetValue()
		result.Dice = append(result.Dice, value)
		result.Total += value
	}

	return result, nil
}
