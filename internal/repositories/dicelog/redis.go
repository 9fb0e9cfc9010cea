package dicelog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/tabletopforge/battletracker/internal/dice"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
)

const rollHistoryKey = "dice:rolls"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	Limit  int
}

// redisRepository stores rolls in a capped Redis list, newest first
type redisRepository struct {
	client redis.UniversalClient
	limit  int
}

// NewRedisRepository creates a new Redis-backed roll history
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &redisRepository{client: cfg.Client, limit: limit}
}

// Append records a roll and trims the history to its bound
func (r *redisRepository) Append(ctx context.Context, roll *dice.Roll) error {
	data, err := json.Marshal(roll)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize roll")
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, rollHistoryKey, data)
	pipe.LTrim(ctx, rollHistoryKey, 0, int64(r.limit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to record roll")
	}

	return nil
}

// List returns up to limit recent rolls, newest first
func (r *redisRepository) List(ctx context.Context, limit int) ([]*dice.Roll, error) {
	if limit <= 0 {
		limit = r.limit
	}

	entries, err := r.client.LRange(ctx, rollHistoryKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rolls")
	}

	rolls := make([]*dice.Roll, 0, len(entries))
	for _, entry := range entries {
		var roll dice.Roll
		if err := json.Unmarshal([]byte(entry), &roll); err != nil {
			return nil, apperrors.Wrap(err, "failed to deserialize roll")
		}
		rolls = append(rolls, &roll)
	}

	return rolls, nil
}
