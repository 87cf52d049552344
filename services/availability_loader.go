package services

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"bookify/api"
	"bookify/config"
	"bookify/models"
	"bookify/utils"
)

const snapshotCacheKey = "availability:snapshot"

// AvailabilityLoader fetches the availability snapshot once and caches it in
// Redis; subsequent loads reuse the cached snapshot until it expires or a
// forced reload bypasses it. A fetch failure degrades to an empty snapshot
// rather than propagating.
type AvailabilityLoader struct {
	Client *api.Client
	Cache  *redis.Client
}

func NewAvailabilityLoader(client *api.Client, cache *redis.Client) *AvailabilityLoader {
	return &AvailabilityLoader{Client: client, Cache: cache}
}

// Load returns an AvailabilityService over the current snapshot.
func (l *AvailabilityLoader) Load(ctx context.Context, forceReload bool) *AvailabilityService {
	logger := utils.GetLogger()

	if !forceReload {
		if cached, err := l.Cache.Get(ctx, snapshotCacheKey).Result(); err == nil {
			var snapshot models.AvailabilitySnapshot
			if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
				return NewAvailabilityService(snapshot)
			}
			logger.Warn("discarding unreadable cached availability snapshot", zap.Error(err))
		}
	}

	snapshot, err := l.Client.GetAvailabilitySnapshot(ctx)
	if err != nil {
		logger.Error("failed to fetch availability snapshot", zap.Error(err))
		return NewAvailabilityService(models.AvailabilitySnapshot{})
	}

	if raw, err := json.Marshal(snapshot); err == nil {
		if err := l.Cache.Set(ctx, snapshotCacheKey, raw, config.SnapshotTTL()).Err(); err != nil {
			logger.Warn("failed to cache availability snapshot", zap.Error(err))
		}
	}

	return NewAvailabilityService(snapshot)
}
