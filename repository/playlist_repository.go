package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IPlaylistRepository defines the contract for playlist persistence.
type IPlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *model.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
	ListVideos(ctx context.Context, playlistID, viewerID string) ([]*model.Video, error)
}

type PlaylistRepository struct {
	DB *sql.DB
}

func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{DB: db}
}

const playlistSelect = `
	SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		u.username, u.full_name, u.avatar,
		(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)
	FROM playlists p
	JOIN users u ON u.id = p.owner_id`

func scanPlaylist(row scanner) (*model.Playlist, error) {
	p := &model.Playlist{Owner: &model.UserSummary{}}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.Username, &p.Owner.FullName, &p.Owner.Avatar, &p.VideosCount)
	if err != nil {
		return nil, err
	}
	p.Owner.ID = p.OwnerID
	return p, nil
}

func (r *PlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	playlist.ID = uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{"playlist_id": playlist.ID, "owner_id": playlist.OwnerID})
	log.Info("Executing query to create a new playlist")

	query := `INSERT INTO playlists (id, owner_id, name, description) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create playlist query")
		return translate(err)
	}
	return nil
}

func (r *PlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	p, err := scanPlaylist(r.DB.QueryRowContext(ctx, playlistSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("playlist_id", id).Error("Failed to execute get playlist query")
		}
		return nil, translate(err)
	}
	return p, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Playlist, error) {
	log := logger.Log.WithField("owner_id", ownerID)
	log.Info("Executing query to list playlists by owner")

	rows, err := r.DB.QueryContext(ctx, playlistSelect+` WHERE p.owner_id = $1 ORDER BY p.created_at DESC`, ownerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute list playlists query")
		return nil, translate(err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan playlist row")
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *PlaylistRepository) UpdatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	log := logger.Log.WithField("playlist_id", playlist.ID)
	log.Info("Executing query to update playlist")

	query := `UPDATE playlists SET name = $1, description = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query, playlist.Name, playlist.Description, playlist.ID).Scan(&playlist.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update playlist query")
		return translate(err)
	}
	return nil
}

func (r *PlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	log := logger.Log.WithField("playlist_id", id)
	log.Info("Executing query to delete playlist")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete playlist query")
		return translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return nil
}

// AddVideo returns ErrDuplicate when the video is already in the playlist and
// ErrNotFound when either side does not exist.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	log := logger.Log.WithFields(logrus.Fields{"playlist_id": playlistID, "video_id": videoID})
	log.Info("Executing query to add video to playlist")

	_, err := r.DB.ExecContext(ctx, `INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)`, playlistID, videoID)
	if err != nil {
		log.WithError(err).Warn("Failed to execute add playlist video query")
		return translate(err)
	}
	return nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	log := logger.Log.WithFields(logrus.Fields{"playlist_id": playlistID, "video_id": videoID})
	log.Info("Executing query to remove video from playlist")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`, playlistID, videoID)
	if err != nil {
		log.WithError(err).Error("Failed to execute remove playlist video query")
		return false, translate(err)
	}
	return affectedOne(res)
}

// ListVideos returns the playlist's videos in the order they were added, hiding
// unpublished videos the viewer does not own.
func (r *PlaylistRepository) ListVideos(ctx context.Context, playlistID, viewerID string) ([]*model.Video, error) {
	log := logger.Log.WithField("playlist_id", playlistID)
	log.Info("Executing query to list playlist videos")

	query := videoSelect + `
		JOIN playlist_videos pv ON pv.video_id = v.id
		WHERE pv.playlist_id = $1 AND (v.is_published OR v.owner_id = $2)
		ORDER BY pv.added_at`
	rows, err := r.DB.QueryContext(ctx, query, playlistID, viewerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute list playlist videos query")
		return nil, translate(err)
	}
	defer rows.Close()

	videos := make([]*model.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan video row")
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
