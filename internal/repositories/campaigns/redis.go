package campaigns

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
)

const (
	campaignKeyPrefix  = "campaign:"
	campaignIndexKey   = "campaigns"
	campaignDefaultKey = "campaign:default"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// redisRepository implements Repository using Redis. Campaigns are stored as
// JSON blobs with a list index preserving creation order and a pointer key
// naming the default campaign.
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed campaign repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{client: cfg.Client}
}

// Create stores a new campaign
func (r *redisRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	key := campaignKeyPrefix + c.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to check campaign existence")
	}
	if exists > 0 {
		return apperrors.AlreadyExists("campaign with ID " + c.ID + " already exists")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize campaign")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.RPush(ctx, campaignIndexKey, c.ID)
	if c.IsDefault {
		pipe.Set(ctx, campaignDefaultKey, c.ID, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to create campaign")
	}

	return nil
}

// Get retrieves a campaign by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	data, err := r.client.Get(ctx, campaignKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("campaign not found: %s", id)
		}
		return nil, apperrors.Wrap(err, "failed to get campaign")
	}

	var c campaign.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperrors.Wrap(err, "failed to deserialize campaign")
	}

	return &c, nil
}

// Update overwrites an existing campaign
func (r *redisRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	key := campaignKeyPrefix + c.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to check campaign existence")
	}
	if exists == 0 {
		return apperrors.NotFoundf("campaign not found: %s", c.ID)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize campaign")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if c.IsDefault {
		pipe.Set(ctx, campaignDefaultKey, c.ID, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to update campaign")
	}

	return nil
}

// Delete removes a campaign
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	key := campaignKeyPrefix + id

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to check campaign existence")
	}
	if exists == 0 {
		return apperrors.NotFoundf("campaign not found: %s", id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.LRem(ctx, campaignIndexKey, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to delete campaign")
	}

	return nil
}

// GetAll retrieves every campaign in creation order
func (r *redisRepository) GetAll(ctx context.Context) ([]*campaign.Campaign, error) {
	ids, err := r.client.LRange(ctx, campaignIndexKey, 0, -1).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list campaigns")
	}

	all := make([]*campaign.Campaign, 0, len(ids))
	for _, id := range ids {
		c, err := r.Get(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		all = append(all, c)
	}

	return all, nil
}

// GetDefault retrieves the default campaign
func (r *redisRepository) GetDefault(ctx context.Context) (*campaign.Campaign, error) {
	id, err := r.client.Get(ctx, campaignDefaultKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("no default campaign exists")
		}
		return nil, apperrors.Wrap(err, "failed to get default campaign")
	}

	return r.Get(ctx, id)
}
