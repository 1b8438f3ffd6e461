package consumerRepo

import (
	"context"
	"encoding/json"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// cachedConsumerRepo serves GetByUserID from Redis, falling back to the
// wrapped repository on a miss or a cache error.
type cachedConsumerRepo struct {
	ConsumerRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedConsumerRepo wraps inner with a Redis read-through cache. A nil
// client returns inner unchanged.
func NewCachedConsumerRepo(inner ConsumerRepository, cache *redis.Client, logger *zap.Logger) ConsumerRepository {
	if cache == nil {
		return inner
	}
	return &cachedConsumerRepo{
		ConsumerRepository: inner,
		cache:              cache,
		ttl:                utils.ProfileCacheTTL,
		logger:             logger,
	}
}

func cacheKey(userID string) string {
	return utils.ProfileCachePrefix + "consumer:" + userID
}

func (r *cachedConsumerRepo) GetByUserID(ctx context.Context, userID string) (*models.Consumer, error) {
	key := cacheKey(userID)
	raw, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedConsumer
		if err := json.Unmarshal(raw, &cached); err == nil {
			consumer := cached.Consumer
			consumer.UserID = cached.UserID
			return &consumer, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn("Consumer cache read failed, falling back to store", zap.String("userID", userID), zap.Error(err))
	}

	consumer, err := r.ConsumerRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Persist the user-scoped id too: the json form of Consumer hides it.
	payload, err := json.Marshal(cachedConsumer{Consumer: *consumer, UserID: consumer.UserID})
	if err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("Consumer cache write failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return consumer, nil
}

type cachedConsumer struct {
	models.Consumer
	UserID string `json:"userId"`
}
