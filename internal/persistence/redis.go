package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-engine/internal/config"
)

const (
	analyticsKeyPrefix = "engine:analytics:"
	queueKeyPrefix     = "engine:queue:"
)

// Redis wraps the go-redis client. It caches analytics snapshots and queue
// views for the dashboard; the engine itself never depends on it.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// CacheAnalytics stores an analytics snapshot with a TTL.
func (r *Redis) CacheAnalytics(ctx context.Context, facilityID string, snapshot any, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, analyticsKeyPrefix+facilityID, payload, ttl).Err()
}

// GetAnalytics loads a cached analytics snapshot into dest. Returns false on
// a cache miss.
func (r *Redis) GetAnalytics(ctx context.Context, facilityID string, dest any) (bool, error) {
	if r == nil || r.Client == nil {
		return false, nil
	}
	payload, err := r.Client.Get(ctx, analyticsKeyPrefix+facilityID).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(payload, dest)
}

// InvalidateAnalytics drops the cached snapshot after a mutation.
func (r *Redis) InvalidateAnalytics(ctx context.Context, facilityID string) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, analyticsKeyPrefix+facilityID).Err()
}

// PublishQueueSnapshot stores the current queue ordering for dashboards.
func (r *Redis) PublishQueueSnapshot(ctx context.Context, facilityID string, issueIDs []string) error {
	if r == nil || r.Client == nil {
		return nil
	}
	payload, err := json.Marshal(issueIDs)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, queueKeyPrefix+facilityID, payload, 0).Err()
}
