package document

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	redisclient "github.com/KirkDiggler/wfrp-encounter-api/internal/redis"
)

// DefaultKeyPrefix namespaces document keys: {prefix}{document}
const DefaultKeyPrefix = "encounter:document:"

// RedisConfig contains configuration for the Redis document repository
type RedisConfig struct {
	Client    redisclient.Client
	KeyPrefix string
	Logger    *zap.Logger
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client    redisclient.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedis creates a document repository storing each document as one Redis string
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisRepository{
		client:    cfg.Client,
		keyPrefix: prefix,
		logger:    logger.With(zap.String("backend", "redis")),
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := validateDocumentName(input.Document); err != nil {
		return nil, err
	}

	key := r.key(input.Document)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			return nil, errors.Wrapf(err, "failed to get document %s from Redis", input.Document).
				WithMeta("document", input.Document)
		}

		if _, err := r.write(ctx, input.Document, input.Defaults); err != nil {
			return nil, err
		}
		r.logger.Info("seeded document with defaults",
			zap.String("document", input.Document),
			zap.Int("records", len(input.Defaults)))

		return &LoadOutput{Records: input.Defaults, Seeded: true}, nil
	}

	records, err := ParseRecords(data)
	if errors.Is(err, ErrNotArray) {
		// Valid JSON of the wrong shape is reported, never replaced.
		return nil, errors.Wrapf(err, "document %s is not a collection", input.Document).
			WithMeta("document", input.Document)
	}
	if err != nil {
		r.logger.Debug("document unreadable, using defaults",
			zap.String("document", input.Document),
			zap.Error(err))

		return &LoadOutput{Records: input.Defaults, Recovered: true}, nil
	}

	return &LoadOutput{Records: records}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateDocumentName(input.Document); err != nil {
		return nil, err
	}

	n, err := r.write(ctx, input.Document, input.Records)
	if err != nil {
		return nil, err
	}

	return &SaveOutput{Bytes: n}, nil
}

func (r *redisRepository) write(ctx context.Context, document string, records []Record) (int, error) {
	data, err := EncodeRecords(records)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to encode document %s", document)
	}

	if err := r.client.Set(ctx, r.key(document), data, 0).Err(); err != nil {
		return 0, errors.Wrapf(err, "failed to store document %s in Redis", document).
			WithMeta("document", document)
	}
	return len(data), nil
}

// Key returns the Redis key holding a document
func Key(prefix, document string) string {
	return prefix + document
}

func (r *redisRepository) key(document string) string {
	return Key(r.keyPrefix, document)
}
