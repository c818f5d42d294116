package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"
)

// IDashboardRepository aggregates a channel's totals.
type IDashboardRepository interface {
	ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error)
}

type DashboardRepository struct {
	DB *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	log := logger.Log.WithField("channel_id", channelID)
	log.Info("Executing query to aggregate channel stats")

	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)`

	stats := &model.ChannelStats{ChannelID: channelID}
	err := r.DB.QueryRowContext(ctx, query, channelID).
		Scan(&stats.TotalVideos, &stats.TotalViews, &stats.TotalSubscribers, &stats.TotalLikes)
	if err != nil {
		log.WithError(err).Error("Failed to execute channel stats query")
		return nil, translate(err)
	}
	return stats, nil
}
