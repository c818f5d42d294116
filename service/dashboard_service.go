package service

import (
	"context"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"
)

// DashboardService serves a creator's own channel overview.
type DashboardService struct {
	repo   repository.IDashboardRepository
	videos repository.IVideoRepository
	cache  *StatsCache
}

func NewDashboardService(repo repository.IDashboardRepository, videos repository.IVideoRepository, cache *StatsCache) *DashboardService {
	return &DashboardService{repo: repo, videos: videos, cache: cache}
}

// ChannelStats uses a cache-aside strategy keyed by channel.
func (s *DashboardService) ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	if stats, ok := s.cache.Load(ctx, channelID); ok {
		logger.Log.WithField("channel_id", channelID).Debug("Channel stats cache hit")
		return stats, nil
	}

	stats, err := s.repo.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, stats)
	return stats, nil
}

// ChannelVideos includes unpublished videos.
func (s *DashboardService) ChannelVideos(ctx context.Context, channelID string) ([]*model.Video, error) {
	return s.videos.ListByOwner(ctx, channelID)
}
