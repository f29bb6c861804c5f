// Package encounter resolves combat between stored enemies and tracks turn order
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/encounter Service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/encounters"
)

// Service defines the interface for encounter operations
type Service interface {
	// Attack rolls to hit against the attacker's weapon skill, then damage and the
	// defender's toughness test.
	// Returns errors.NotFound if either enemy does not exist
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// Parry tests the defender's weapon skill
	Parry(ctx context.Context, input *ParryInput) (*ParryOutput, error)

	// Initiative rolls d10 + agility for each enemy
	Initiative(ctx context.Context, input *InitiativeInput) (*InitiativeOutput, error)

	// Start rolls initiative and stores a turn tracker for the enemies
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Get returns a tracked encounter
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// NextTurn advances a tracked encounter to the next combatant
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)

	// RemoveCombatant drops an enemy from a tracked encounter's turn order
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)

	// End deletes a tracked encounter
	End(ctx context.Context, input *EndInput) (*EndOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Enemies       collection.EnemyService
	Weapons       collection.WeaponService
	Dice          dice.Service
	EncounterRepo encounters.Repository
	IDGenerator   idgen.Generator
	Logger        *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Enemies == nil {
		vb.RequiredField("Enemies")
	}
	if c.Weapons == nil {
		vb.RequiredField("Weapons")
	}
	if c.Dice == nil {
		vb.RequiredField("Dice")
	}
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	enemies       collection.EnemyService
	weapons       collection.WeaponService
	dice          dice.Service
	encounterRepo encounters.Repository
	idGen         idgen.Generator
	logger        *zap.Logger
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		enemies:       cfg.Enemies,
		weapons:       cfg.Weapons,
		dice:          cfg.Dice,
		encounterRepo: cfg.EncounterRepo,
		idGen:         cfg.IDGenerator,
		logger:        logger,
	}, nil
}

func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("attackerId", input.AttackerID, vb)
	errors.ValidateRequired("defenderId", input.DefenderID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	attacker, err := o.enemy(ctx, input.AttackerID)
	if err != nil {
		return nil, err
	}
	defender, err := o.enemy(ctx, input.DefenderID)
	if err != nil {
		return nil, err
	}

	weapon, err := o.weaponNamed(ctx, attacker.WeaponName)
	if err != nil {
		return nil, err
	}

	out := &AttackOutput{Defender: defender}
	if weapon != nil {
		out.WeaponName = weapon.Name
		out.WeaponDamage = weapon.Damage
	}

	if out.HitRoll, err = o.roll(ctx, dice.D100); err != nil {
		return nil, err
	}
	out.Hit = out.HitRoll <= attacker.Stats.WeaponSkill
	if !out.Hit {
		o.logAttack(input, out)
		return out, nil
	}

	if out.DamageRoll, err = o.roll(ctx, dice.D10); err != nil {
		return nil, err
	}
	damage := attacker.Stats.Strength + out.WeaponDamage + out.DamageRoll/2

	if out.ToughnessRoll, err = o.roll(ctx, dice.D100); err != nil {
		return nil, err
	}
	out.ToughnessPass = out.ToughnessRoll <= defender.Stats.Toughness
	if out.ToughnessPass {
		damage = max(1, damage-1)
	}
	out.Damage = damage

	if input.Apply {
		defender.TakeDamage(out.Damage)
		updated, err := o.enemies.Update(ctx, &collection.UpdateInput[*wfrp.Enemy]{
			ID:     defender.ID,
			Record: defender,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to apply damage")
		}
		out.Defender = updated.Record
	}

	o.logAttack(input, out)
	return out, nil
}

func (o *orchestrator) logAttack(input *AttackInput, out *AttackOutput) {
	o.logger.Info("attack resolved",
		zap.String("attacker_id", input.AttackerID),
		zap.String("defender_id", input.DefenderID),
		zap.Bool("hit", out.Hit),
		zap.Int("damage", out.Damage),
		zap.Bool("applied", input.Apply && out.Hit),
	)
}

func (o *orchestrator) Parry(ctx context.Context, input *ParryInput) (*ParryOutput, error) {
	if input == nil || input.DefenderID == "" {
		return nil, errors.InvalidArgument("defender ID is required")
	}

	defender, err := o.enemy(ctx, input.DefenderID)
	if err != nil {
		return nil, err
	}

	roll, err := o.roll(ctx, dice.D100)
	if err != nil {
		return nil, err
	}

	return &ParryOutput{
		Success: roll <= defender.Stats.WeaponSkill,
		Roll:    roll,
		Target:  defender.Stats.WeaponSkill,
	}, nil
}

func (o *orchestrator) Initiative(ctx context.Context, input *InitiativeInput) (*InitiativeOutput, error) {
	if input == nil || len(input.EnemyIDs) == 0 {
		return nil, errors.InvalidArgument("at least one enemy ID is required")
	}

	order, err := o.rollInitiative(ctx, input.EnemyIDs)
	if err != nil {
		return nil, err
	}
	wfrp.SortByInitiative(order)

	return &InitiativeOutput{Order: order}, nil
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil || len(input.EnemyIDs) == 0 {
		return nil, errors.InvalidArgument("at least one enemy ID is required")
	}

	entries, err := o.rollInitiative(ctx, input.EnemyIDs)
	if err != nil {
		return nil, err
	}

	enc := wfrp.NewEncounter(o.idGen.Generate(), entries)
	if _, err := o.encounterRepo.Save(ctx, &encounters.SaveInput{Encounter: enc}); err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	o.logger.Info("encounter started",
		zap.String("encounter_id", enc.ID),
		zap.Int("combatants", len(enc.Entries)),
	)

	return &StartOutput{Encounter: newEncounterState(enc)}, nil
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.encounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Encounter: newEncounterState(enc)}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.encounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	enc.Next()
	if _, err := o.encounterRepo.Save(ctx, &encounters.SaveInput{Encounter: enc}); err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	state := newEncounterState(enc)
	o.logger.Debug("advanced turn",
		zap.String("encounter_id", enc.ID),
		zap.Int("round", state.Round),
	)

	return &NextTurnOutput{Encounter: state}, nil
}

func (o *orchestrator) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil || input.EnemyID == "" {
		return nil, errors.InvalidArgument("enemy ID is required")
	}

	enc, err := o.encounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if !enc.Remove(input.EnemyID) {
		return nil, errors.NotFoundf("enemy %s is not in encounter", input.EnemyID)
	}

	if _, err := o.encounterRepo.Save(ctx, &encounters.SaveInput{Encounter: enc}); err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	return &RemoveCombatantOutput{Encounter: newEncounterState(enc)}, nil
}

func (o *orchestrator) End(ctx context.Context, input *EndInput) (*EndOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	if _, err := o.encounterRepo.Delete(ctx, &encounters.DeleteInput{EncounterID: input.EncounterID}); err != nil {
		return nil, errors.Wrap(err, "failed to end encounter")
	}

	return &EndOutput{}, nil
}

func (o *orchestrator) rollInitiative(ctx context.Context, ids []string) ([]wfrp.InitiativeEntry, error) {
	entries := make([]wfrp.InitiativeEntry, 0, len(ids))
	for _, id := range ids {
		enemy, err := o.enemy(ctx, id)
		if err != nil {
			return nil, err
		}

		roll, err := o.roll(ctx, dice.D10)
		if err != nil {
			return nil, err
		}

		entries = append(entries, wfrp.InitiativeEntry{
			EnemyID:    enemy.ID,
			Name:       enemy.Name,
			Initiative: roll + enemy.Stats.Agility,
		})
	}
	return entries, nil
}

func (o *orchestrator) enemy(ctx context.Context, id string) (*wfrp.Enemy, error) {
	out, err := o.enemies.Get(ctx, &collection.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Record, nil
}

// weaponNamed returns the first weapon whose name matches, ignoring case, or nil
func (o *orchestrator) weaponNamed(ctx context.Context, name string) (*wfrp.Weapon, error) {
	if name == "" {
		return nil, nil
	}

	out, err := o.weapons.List(ctx, &collection.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up weapon")
	}

	for _, w := range out.Records {
		if strings.EqualFold(w.Name, name) {
			return w, nil
		}
	}
	return nil, nil
}

func (o *orchestrator) encounter(ctx context.Context, id string) (*wfrp.Encounter, error) {
	if id == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	out, err := o.encounterRepo.Get(ctx, &encounters.GetInput{EncounterID: id})
	if err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

func (o *orchestrator) roll(ctx context.Context, size int) (int, error) {
	out, err := o.dice.RollDie(ctx, &dice.RollDieInput{Size: size})
	if err != nil {
		return 0, err
	}
	return out.Roll, nil
}
