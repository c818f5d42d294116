package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-api/model"
	"vidtube-api/repository"
)

type TweetService struct {
	tweets repository.ITweetRepository
	users  repository.IUserRepository
}

func NewTweetService(tweets repository.ITweetRepository, users repository.IUserRepository) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) CreateTweet(ctx context.Context, author *model.User, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	summary := author.Summary()
	tweet := &model.Tweet{OwnerID: author.ID, Owner: &summary, Content: content}
	if err := s.tweets.CreateTweet(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) UserTweets(ctx context.Context, userID string) ([]*model.Tweet, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.tweets.ListByOwner(ctx, userID)
}

func (s *TweetService) UpdateTweet(ctx context.Context, tweetID, callerID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.ownedTweet(ctx, tweetID, callerID); err != nil {
		return nil, err
	}
	tweet, err := s.tweets.UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, mapTweetErr(err)
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, callerID string) error {
	if _, err := s.ownedTweet(ctx, tweetID, callerID); err != nil {
		return err
	}
	return mapTweetErr(s.tweets.DeleteTweet(ctx, tweetID))
}

func (s *TweetService) ownedTweet(ctx context.Context, tweetID, callerID string) (*model.Tweet, error) {
	tweet, err := s.tweets.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, mapTweetErr(err)
	}
	if tweet.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return tweet, nil
}

func mapTweetErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTweetNotFound
	}
	return err
}
