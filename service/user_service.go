package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/storage"
)

// UserService handles profile and channel operations for an authenticated user.
type UserService struct {
	users  repository.IUserRepository
	videos repository.IVideoRepository
	media  storage.MediaStore
}

func NewUserService(users repository.IUserRepository, videos repository.IVideoRepository, media storage.MediaStore) *UserService {
	return &UserService{users: users, videos: videos, media: media}
}

func (s *UserService) UpdateAccountDetails(ctx context.Context, userID string, req model.UpdateAccountRequest) (*model.User, error) {
	user, err := s.users.UpdateAccountDetails(ctx, userID, strings.TrimSpace(req.FullName), normalizeEmail(req.Email))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateAvatar uploads the new image, points the user at it and then drops the old one.
func (s *UserService) UpdateAvatar(ctx context.Context, current *model.User, file *Upload) (*model.User, error) {
	return s.replaceImage(ctx, current.Avatar, storage.FolderAvatars, file, func(url string) (*model.User, error) {
		return s.users.UpdateAvatar(ctx, current.ID, url)
	})
}

func (s *UserService) UpdateCoverImage(ctx context.Context, current *model.User, file *Upload) (*model.User, error) {
	return s.replaceImage(ctx, current.CoverImage, storage.FolderCovers, file, func(url string) (*model.User, error) {
		return s.users.UpdateCoverImage(ctx, current.ID, url)
	})
}

func (s *UserService) replaceImage(ctx context.Context, oldURL, folder string, file *Upload, update func(string) (*model.User, error)) (*model.User, error) {
	asset, err := store(ctx, s.media, folder, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", folder, err)
	}

	user, err := update(asset.URL)
	if err != nil {
		discard(ctx, s.media, asset.URL)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	discard(ctx, s.media, oldURL)
	logger.Log.WithField("user_id", user.ID).Infof("Updated %s", folder)
	return user, nil
}

func (s *UserService) GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	profile, err := s.users.GetChannelProfile(ctx, strings.ToLower(strings.TrimSpace(username)), viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return profile, nil
}

// WatchHistory lists the videos the user opened, most recent first.
func (s *UserService) WatchHistory(ctx context.Context, userID string) ([]*model.Video, error) {
	return s.videos.ListWatchHistory(ctx, userID)
}
