package service

import (
	"context"
	"errors"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"

	"github.com/sirupsen/logrus"
)

type SubscriptionService struct {
	subs  repository.ISubscriptionRepository
	users repository.IUserRepository
	stats *StatsCache
}

func NewSubscriptionService(subs repository.ISubscriptionRepository, users repository.IUserRepository, stats *StatsCache) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, stats: stats}
}

// Toggle subscribes the caller to the channel, or unsubscribes when already subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*model.SubscriptionToggle, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	if err := s.channelExists(ctx, channelID); err != nil {
		return nil, err
	}

	removed, err := s.subs.Unsubscribe(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	subscribed := !removed
	if subscribed {
		if err := s.subs.Subscribe(ctx, subscriberID, channelID); err != nil {
			return nil, err
		}
	}

	s.stats.Invalidate(ctx, channelID)
	logger.Log.WithFields(logrus.Fields{"subscriber_id": subscriberID, "channel_id": channelID, "subscribed": subscribed}).
		Info("Subscription toggled")
	return &model.SubscriptionToggle{ChannelID: channelID, Subscribed: subscribed}, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]*model.SubscriptionEntry, error) {
	if err := s.channelExists(ctx, channelID); err != nil {
		return nil, err
	}
	return s.subs.ListSubscribers(ctx, channelID)
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]*model.SubscriptionEntry, error) {
	if err := s.channelExists(ctx, subscriberID); err != nil {
		return nil, err
	}
	return s.subs.ListSubscribedChannels(ctx, subscriberID)
}

func (s *SubscriptionService) channelExists(ctx context.Context, id string) error {
	if _, err := s.users.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChannelNotFound
		}
		return err
	}
	return nil
}
