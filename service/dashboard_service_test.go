package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vidtube-api/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_ChannelStats(t *testing.T) {
	ctx := context.Background()
	stats := &model.ChannelStats{ChannelID: "c1", TotalVideos: 2, TotalViews: 30, TotalSubscribers: 4, TotalLikes: 7}
	payload, _ := json.Marshal(stats)

	t.Run("cache miss loads and stores", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockCacheClient)
		cache.On("Get", mock.Anything, "dashboard:stats:c1").Return("", redis.Nil).Once()
		repo.On("ChannelStats", mock.Anything, "c1").Return(stats, nil).Once()
		cache.On("Set", mock.Anything, "dashboard:stats:c1", payload, time.Minute).Return(nil).Once()

		got, err := NewDashboardService(repo, nil, NewStatsCache(cache, time.Minute)).ChannelStats(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, stats, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockCacheClient)
		cache.On("Get", mock.Anything, "dashboard:stats:c1").Return(string(payload), nil).Once()

		got, err := NewDashboardService(repo, nil, NewStatsCache(cache, time.Minute)).ChannelStats(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, stats, got)
		repo.AssertNotCalled(t, "ChannelStats", mock.Anything, mock.Anything)
	})

	t.Run("cache outage falls through", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockCacheClient)
		cache.On("Get", mock.Anything, "dashboard:stats:c1").Return("", errors.New("connection refused")).Once()
		repo.On("ChannelStats", mock.Anything, "c1").Return(stats, nil).Once()
		cache.On("Set", mock.Anything, "dashboard:stats:c1", payload, time.Minute).Return(errors.New("connection refused")).Once()

		got, err := NewDashboardService(repo, nil, NewStatsCache(cache, time.Minute)).ChannelStats(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("caching disabled", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		repo.On("ChannelStats", mock.Anything, "c1").Return(stats, nil).Once()

		got, err := NewDashboardService(repo, nil, NewStatsCache(nil, time.Minute)).ChannelStats(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})
}

func TestDashboardService_ChannelVideos(t *testing.T) {
	videos := new(MockVideoRepository)
	videos.On("ListByOwner", mock.Anything, "c1").Return([]*model.Video{{ID: "v1"}, {ID: "v2"}}, nil).Once()

	got, err := NewDashboardService(nil, videos, nil).ChannelVideos(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
