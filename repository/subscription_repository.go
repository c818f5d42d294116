package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ISubscriptionRepository defines the contract for subscription persistence.
type ISubscriptionRepository interface {
	Subscribe(ctx context.Context, subscriberID, channelID string) error
	Unsubscribe(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]*model.SubscriptionEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*model.SubscriptionEntry, error)
}

type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Subscribe(ctx context.Context, subscriberID, channelID string) error {
	log := logger.Log.WithFields(logrus.Fields{"subscriber_id": subscriberID, "channel_id": channelID})
	log.Info("Executing query to subscribe")

	query := `INSERT INTO subscriptions (id, subscriber_id, channel_id) VALUES ($1, $2, $3)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query, uuid.NewString(), subscriberID, channelID); err != nil {
		log.WithError(err).Error("Failed to execute subscribe query")
		return translate(err)
	}
	return nil
}

// Unsubscribe reports whether a subscription existed.
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, subscriberID, channelID string) (bool, error) {
	log := logger.Log.WithFields(logrus.Fields{"subscriber_id": subscriberID, "channel_id": channelID})
	log.Info("Executing query to unsubscribe")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`, subscriberID, channelID)
	if err != nil {
		log.WithError(err).Error("Failed to execute unsubscribe query")
		return false, translate(err)
	}
	return affectedOne(res)
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]*model.SubscriptionEntry, error) {
	log := logger.Log.WithField("channel_id", channelID)
	log.Info("Executing query to list subscribers")

	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC`
	return r.queryEntries(ctx, log, query, channelID)
}

func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*model.SubscriptionEntry, error) {
	log := logger.Log.WithField("subscriber_id", subscriberID)
	log.Info("Executing query to list subscribed channels")

	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC`
	return r.queryEntries(ctx, log, query, subscriberID)
}

func (r *SubscriptionRepository) queryEntries(ctx context.Context, log *logrus.Entry, query string, id string) ([]*model.SubscriptionEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute subscription list query")
		return nil, translate(err)
	}
	defer rows.Close()

	entries := make([]*model.SubscriptionEntry, 0)
	for rows.Next() {
		e := &model.SubscriptionEntry{}
		if err := rows.Scan(&e.User.ID, &e.User.Username, &e.User.FullName, &e.User.Avatar, &e.SubscribedAt); err != nil {
			log.WithError(err).Error("Failed to scan subscription row")
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
