package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client.
// *redis.Client satisfies it; tests pass a mock.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// StatsCache keeps channel stats in Redis. A nil client disables caching.
type StatsCache struct {
	client ICacheClient
	ttl    time.Duration
}

func NewStatsCache(client ICacheClient, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(channelID string) string {
	return "dashboard:stats:" + channelID
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.client != nil
}

// Load returns the cached stats, or false on a miss or any cache failure.
func (c *StatsCache) Load(ctx context.Context, channelID string) (*model.ChannelStats, bool) {
	if !c.enabled() {
		return nil, false
	}
	cached, err := c.client.Get(ctx, statsKey(channelID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("Failed to read channel stats from cache")
		}
		return nil, false
	}

	var stats model.ChannelStats
	if err := json.Unmarshal([]byte(cached), &stats); err != nil {
		logger.Log.WithError(err).Warn("Discarding malformed cached channel stats")
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Store(ctx context.Context, stats *model.ChannelStats) {
	if !c.enabled() {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(stats.ChannelID), payload, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to write channel stats to cache")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, channelID string) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, statsKey(channelID)).Err(); err != nil {
		logger.Log.WithError(err).WithField("channel_id", channelID).Warn("Failed to invalidate channel stats cache")
	}
}
