package encounters

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	redisclient "github.com/KirkDiggler/wfrp-encounter-api/internal/redis"
)

const (
	// Key pattern: {prefix}encounter:{id}
	encounterKeyPrefix = "encounter:"

	// DefaultTTL is how long an untouched encounter is kept
	DefaultTTL = 4 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client    redisclient.Client
	KeyPrefix string

	// TTL is refreshed on every Save; zero means DefaultTTL
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client    redisclient.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedis creates a new Redis repository for encounters
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client:    cfg.Client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save stores the encounter as JSON and resets its TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Encounter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal encounter")
	}

	if err := r.client.Set(ctx, r.buildKey(input.Encounter.ID), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store encounter in Redis")
	}

	return &SaveOutput{}, nil
}

// Get retrieves an encounter by ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument(errEncounterIDRequired)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.EncounterID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errEncounterNotFound)
		}
		return nil, errors.Wrapf(err, "failed to get encounter from Redis")
	}

	var enc wfrp.Encounter
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal encounter")
	}

	return &GetOutput{Encounter: &enc}, nil
}

// Delete removes an encounter
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument(errEncounterIDRequired)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.EncounterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete encounter from Redis")
	}
	if removed == 0 {
		return nil, errors.NotFound(errEncounterNotFound)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) buildKey(id string) string {
	return r.keyPrefix + encounterKeyPrefix + id
}
