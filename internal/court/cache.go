package court

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/logger"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

// CachedRepository is a read-through cache in front of the court table. Courts
// change rarely while every create request needs a rate lookup, so a short TTL
// keeps pricing off the hot path. Cache errors degrade to the database.
type CachedRepository struct {
	inner Repository
	redis *redis.Client
}

func NewCachedRepository(inner Repository, redisClient *redis.Client) *CachedRepository {
	return &CachedRepository{inner: inner, redis: redisClient}
}

func cacheKey(id string) string {
	return "court:" + id
}

func (r *CachedRepository) GetCourtByID(ctx context.Context, id string) (*Court, error) {
	data, err := r.redis.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var court Court
		if err := json.Unmarshal(data, &court); err == nil {
			metrics.RecordCourtCacheLookup("hit")
			return &court, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Debug("court cache read failed", "court_id", id, "error", err.Error())
	}

	metrics.RecordCourtCacheLookup("miss")

	court, err := r.inner.GetCourtByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(court); err == nil {
		if err := r.redis.Set(ctx, cacheKey(id), data, cacheTTL).Err(); err != nil {
			logger.Debug("court cache write failed", "court_id", id, "error", err.Error())
		}
	}

	return court, nil
}
