// Package dice implements percentile and polyhedral rolls and characteristic tests
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice Service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// Die sizes used by the game
const (
	D100 = 100
	D10  = 10
	D6   = 6
)

// MaxDice caps the count accepted in notation
const MaxDice = 100

var (
	// Regex for parsing simple dice notation like "2d6", "1d100", "3d10"
	diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)
)

// Service defines the interface for dice operations
type Service interface {
	// RollDie returns one uniformly drawn value in [1, Size]
	RollDie(ctx context.Context, input *RollDieInput) (*RollDieOutput, error)

	// Roll rolls "XdY" notation
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// Test rolls d100 against Characteristic+Modifier; a roll equal to the target succeeds
	Test(ctx context.Context, input *TestInput) (*TestOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	// Roller defaults to the rpg-toolkit roller
	Roller Roller
	Logger *zap.Logger
}

type orchestrator struct {
	roller Roller
	logger *zap.Logger
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = NewToolkitRoller()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		roller: roller,
		logger: logger,
	}, nil
}

// parseDiceNotation parses simple dice notation like "2d6" and returns count and size
func parseDiceNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}

	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > MaxDice {
		return 0, 0, errors.InvalidArgumentf("at most %d dice may be rolled: %s", MaxDice, notation)
	}

	return count, size, nil
}

func (o *orchestrator) RollDie(_ context.Context, input *RollDieInput) (*RollDieOutput, error) {
	if input == nil || input.Size <= 0 {
		return nil, errors.InvalidArgument("die size must be positive")
	}

	result, err := o.roller.Roll(1, input.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll d%d", input.Size)
	}

	return &RollDieOutput{Roll: result.Total}, nil
}

func (o *orchestrator) Roll(_ context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	count, size, err := parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	result, err := o.roller.Roll(count, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	o.logger.Debug("dice rolled",
		zap.String("notation", input.Notation),
		zap.Ints("dice", result.Dice),
		zap.Int("total", result.Total))

	return &RollOutput{
		Notation: input.Notation,
		Dice:     result.Dice,
		Total:    result.Total,
	}, nil
}

func (o *orchestrator) Test(ctx context.Context, input *TestInput) (*TestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	roll, err := o.RollDie(ctx, &RollDieInput{Size: D100})
	if err != nil {
		return nil, err
	}

	return Evaluate(roll.Roll, input.Characteristic+input.Modifier), nil
}

// Evaluate scores a d100 roll against a target
func Evaluate(roll, target int) *TestOutput {
	diff := roll - target
	if diff < 0 {
		diff = -diff
	}

	return &TestOutput{
		Success: roll <= target,
		Roll:    roll,
		Target:  target,
		Degrees: diff / 10,
	}
}
