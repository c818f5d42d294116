package service

import (
	"context"
	"fmt"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"

	"github.com/sirupsen/logrus"
)

type LikeService struct {
	likes    repository.ILikeRepository
	videos   repository.IVideoRepository
	comments repository.ICommentRepository
	tweets   repository.ITweetRepository
	stats    *StatsCache
}

func NewLikeService(likes repository.ILikeRepository, videos repository.IVideoRepository, comments repository.ICommentRepository,
	tweets repository.ITweetRepository, stats *StatsCache) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets, stats: stats}
}

// Toggle likes the target when the user has not liked it yet and unlikes it otherwise.
func (s *LikeService) Toggle(ctx context.Context, target model.LikeTarget, targetID, userID string) (*model.LikeToggle, error) {
	channelID, err := s.targetOwner(ctx, target, targetID, userID)
	if err != nil {
		return nil, err
	}

	removed, err := s.likes.RemoveLike(ctx, target, targetID, userID)
	if err != nil {
		return nil, err
	}
	liked := !removed
	if liked {
		if err := s.likes.AddLike(ctx, target, targetID, userID); err != nil {
			return nil, err
		}
	}

	if target == model.LikeVideo {
		s.stats.Invalidate(ctx, channelID)
	}
	logger.Log.WithFields(logrus.Fields{"target": target, "target_id": targetID, "user_id": userID, "liked": liked}).Info("Like toggled")
	return &model.LikeToggle{Target: target, TargetID: targetID, Liked: liked}, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.videos.ListLikedBy(ctx, userID)
}

// targetOwner checks the target exists and returns its owner.
func (s *LikeService) targetOwner(ctx context.Context, target model.LikeTarget, targetID, userID string) (string, error) {
	switch target {
	case model.LikeVideo:
		video, err := findVisibleVideo(ctx, s.videos, targetID, userID)
		if err != nil {
			return "", err
		}
		return video.OwnerID, nil
	case model.LikeComment:
		comment, err := s.comments.GetCommentByID(ctx, targetID)
		if err != nil {
			return "", mapCommentErr(err)
		}
		return comment.OwnerID, nil
	case model.LikeTweet:
		tweet, err := s.tweets.GetTweetByID(ctx, targetID)
		if err != nil {
			return "", mapTweetErr(err)
		}
		return tweet.OwnerID, nil
	}
	return "", fmt.Errorf("unknown like target %q", target)
}
