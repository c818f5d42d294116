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

	"github.com/sirupsen/logrus"
)

type VideoService struct {
	videos repository.IVideoRepository
	media  storage.MediaStore
	stats  *StatsCache
}

func NewVideoService(videos repository.IVideoRepository, media storage.MediaStore, stats *StatsCache) *VideoService {
	return &VideoService{videos: videos, media: media, stats: stats}
}

func (s *VideoService) ListVideos(ctx context.Context, filter model.VideoFilter) (*model.Page[*model.Video], error) {
	filter.PageQuery = filter.PageQuery.Normalize()
	videos, total, err := s.videos.ListVideos(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.NewPage(videos, filter.PageQuery, total), nil
}

// Publish uploads both files and stores a published video owned by ownerID.
func (s *VideoService) Publish(ctx context.Context, ownerID string, req model.PublishVideoRequest, videoFile, thumbnail *Upload) (*model.Video, error) {
	if videoFile == nil || thumbnail == nil {
		return nil, ErrVideoFileRequired
	}

	videoAsset, err := store(ctx, s.media, storage.FolderVideos, videoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video file: %w", err)
	}
	thumbAsset, err := store(ctx, s.media, storage.FolderThumbnails, thumbnail)
	if err != nil {
		discard(ctx, s.media, videoAsset.URL)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Duration:    req.Duration,
		IsPublished: true,
	}
	if err := s.videos.CreateVideo(ctx, video); err != nil {
		discard(ctx, s.media, videoAsset.URL)
		discard(ctx, s.media, thumbAsset.URL)
		return nil, err
	}

	s.stats.Invalidate(ctx, ownerID)
	logger.Log.WithFields(logrus.Fields{"video_id": video.ID, "owner_id": ownerID}).Info("Video published")
	return s.videos.GetVideoByID(ctx, video.ID)
}

// GetVideo returns a video the viewer may see and records the view.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID string) (*model.Video, error) {
	video, err := findVisibleVideo(ctx, s.videos, videoID, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.videos.RecordView(ctx, videoID, viewerID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("Failed to record video view")
	} else {
		video.Views++
	}
	return video, nil
}

// UpdateVideo changes the given fields and swaps the thumbnail when a new one is sent.
func (s *VideoService) UpdateVideo(ctx context.Context, videoID, callerID string, req model.UpdateVideoRequest, thumbnail *Upload) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, callerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		video.Description = strings.TrimSpace(*req.Description)
	}

	oldThumbnail := ""
	if thumbnail != nil {
		asset, err := store(ctx, s.media, storage.FolderThumbnails, thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		oldThumbnail = video.Thumbnail
		video.Thumbnail = asset.URL
	}

	if err := s.videos.UpdateVideo(ctx, video); err != nil {
		if thumbnail != nil {
			discard(ctx, s.media, video.Thumbnail)
		}
		return nil, mapVideoErr(err)
	}
	discard(ctx, s.media, oldThumbnail)
	return video, nil
}

// DeleteVideo removes the row first and then both stored files.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID, callerID string) error {
	video, err := s.ownedVideo(ctx, videoID, callerID)
	if err != nil {
		return err
	}
	if err := s.videos.DeleteVideo(ctx, videoID); err != nil {
		return mapVideoErr(err)
	}

	discard(ctx, s.media, video.VideoFile)
	discard(ctx, s.media, video.Thumbnail)
	s.stats.Invalidate(ctx, callerID)
	logger.Log.WithFields(logrus.Fields{"video_id": videoID, "owner_id": callerID}).Info("Video deleted")
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, videoID, callerID string) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, callerID)
	if err != nil {
		return nil, err
	}
	published, err := s.videos.TogglePublish(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	video.IsPublished = published
	s.stats.Invalidate(ctx, callerID)
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, callerID string) (*model.Video, error) {
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	if video.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return video, nil
}

// findVisibleVideo hides unpublished videos from everyone but their owner.
func findVisibleVideo(ctx context.Context, videos repository.IVideoRepository, videoID, viewerID string) (*model.Video, error) {
	video, err := videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

func mapVideoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}
