package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"

	"github.com/sirupsen/logrus"
)

type PlaylistService struct {
	playlists repository.IPlaylistRepository
	videos    repository.IVideoRepository
	users     repository.IUserRepository
}

func NewPlaylistService(playlists repository.IPlaylistRepository, videos repository.IVideoRepository, users repository.IUserRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, owner *model.User, req model.PlaylistRequest) (*model.Playlist, error) {
	summary := owner.Summary()
	playlist := &model.Playlist{
		OwnerID:     owner.ID,
		Owner:       &summary,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) UserPlaylists(ctx context.Context, userID string) ([]*model.Playlist, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.playlists.ListByOwner(ctx, userID)
}

// GetPlaylist returns the playlist with the videos the viewer may see.
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID, viewerID string) (*model.Playlist, error) {
	playlist, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, mapPlaylistErr(err)
	}
	videos, err := s.playlists.ListVideos(ctx, playlistID, viewerID)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos
	return playlist, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, playlistID, callerID string, req model.UpdatePlaylistRequest) (*model.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, callerID)
	if err != nil {
		return nil, err
	}
	playlist.Name = strings.TrimSpace(req.Name)
	if req.Description != nil {
		playlist.Description = strings.TrimSpace(*req.Description)
	}
	if err := s.playlists.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, mapPlaylistErr(err)
	}
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID, callerID string) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, callerID); err != nil {
		return err
	}
	return mapPlaylistErr(s.playlists.DeletePlaylist(ctx, playlistID))
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, callerID string) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, callerID); err != nil {
		return nil, err
	}
	if _, err := findVisibleVideo(ctx, s.videos, videoID, callerID); err != nil {
		return nil, err
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrVideoInPlaylist
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"playlist_id": playlistID, "video_id": videoID}).Info("Video added to playlist")
	return s.GetPlaylist(ctx, playlistID, callerID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, callerID string) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrVideoNotInPlaylist
	}
	return s.GetPlaylist(ctx, playlistID, callerID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, callerID string) (*model.Playlist, error) {
	playlist, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, mapPlaylistErr(err)
	}
	if playlist.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return playlist, nil
}

func mapPlaylistErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlaylistNotFound
	}
	return err
}
