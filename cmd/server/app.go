package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/config"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/observability"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/encounter"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/wfrp-encounter-api/internal/redis"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/encounters"
)

// flagBindings maps config keys to the command flags that override them
type flagBindings map[string]string

// loadConfig reads the config file and environment, then applies any flags set on cmd
func loadConfig(cmd *cobra.Command, bindings flagBindings) (config.Config, error) {
	v, err := config.New(configFile)
	if err != nil {
		return config.Config{}, err
	}

	if err := bindFlags(v, cmd, bindings); err != nil {
		return config.Config{}, err
	}

	return config.LoadFromViper(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings flagBindings) error {
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q for %s", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}

// app is the wired service graph shared by the server and seed commands
type app struct {
	logger     *zap.Logger
	weapons    collection.WeaponService
	enemies    collection.EnemyService
	dice       dice.Service
	encounters encounter.Service

	redis redisclient.Client
}

func newApp(cfg config.Config) (*app, error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{logger: logger}

	documents, encounterRepo, err := a.buildRepositories(cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	deps := collection.Deps{
		Repository:  documents,
		IDGenerator: idgen.NewUUID(""),
		Logger:      logger.Named("collection"),
	}
	if a.weapons, err = collection.NewWeapons(deps); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create weapons service: %w", err)
	}
	if a.enemies, err = collection.NewEnemies(deps); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create enemies service: %w", err)
	}

	if a.dice, err = dice.NewOrchestrator(&dice.Config{Logger: logger.Named("dice")}); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create dice service: %w", err)
	}

	a.encounters, err = encounter.NewOrchestrator(&encounter.Config{
		Enemies:       a.enemies,
		Weapons:       a.weapons,
		Dice:          a.dice,
		EncounterRepo: encounterRepo,
		IDGenerator:   idgen.NewUUID("enc"),
		Logger:        logger.Named("encounter"),
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create encounter service: %w", err)
	}

	return a, nil
}

// buildRepositories selects the document backend. Encounters live in Redis when
// documents do and in memory otherwise.
func (a *app) buildRepositories(cfg config.Config) (document.Repository, encounters.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := redisclient.NewClient(cfg.Storage.Redis.Address, &redisclient.Options{
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		a.redis = client

		documents, err := document.NewRedis(&document.RedisConfig{
			Client:    client,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
			Logger:    a.logger.Named("document"),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis document repository: %w", err)
		}

		encounterRepo, err := encounters.NewRedis(&encounters.RedisConfig{
			Client:    client,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
			TTL:       cfg.Encounter.TTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis encounter repository: %w", err)
		}

		a.logger.Info("using redis storage", zap.String("address", cfg.Storage.Redis.Address))
		return documents, encounterRepo, nil

	default:
		documents, err := document.NewFile(&document.FileConfig{
			Dir:    cfg.Storage.Dir,
			Logger: a.logger.Named("document"),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file document repository: %w", err)
		}

		a.logger.Info("using file storage", zap.String("dir", cfg.Storage.Dir))
		return documents, encounters.NewInMemory(), nil
	}
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	_ = a.logger.Sync() // nolint:errcheck // stderr sync fails on some terminals
}
