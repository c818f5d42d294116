package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IVideoRepository defines the contract for video persistence.
type IVideoRepository interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideoByID(ctx context.Context, id string) (*model.Video, error)
	ListVideos(ctx context.Context, filter model.VideoFilter) ([]*model.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error)
	ListLikedBy(ctx context.Context, userID string) ([]*model.Video, error)
	ListWatchHistory(ctx context.Context, userID string) ([]*model.Video, error)
	UpdateVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (bool, error)
	RecordView(ctx context.Context, videoID, viewerID string) error
}

type VideoRepository struct {
	DB *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

const videoSelect = `
	SELECT v.id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views,
		v.is_published, v.created_at, v.updated_at, u.username, u.full_name, u.avatar,
		(SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id)
	FROM videos v
	JOIN users u ON u.id = v.owner_id`

// videoSortColumns whitelists the sortBy values a client may send.
var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// IsValidVideoSort reports whether sortBy names a sortable column.
func IsValidVideoSort(sortBy string) bool {
	_, ok := videoSortColumns[sortBy]
	return ok
}

func scanVideo(row scanner) (*model.Video, error) {
	v := &model.Video{Owner: &model.UserSummary{}}
	err := row.Scan(&v.ID, &v.OwnerID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description, &v.Duration, &v.Views,
		&v.IsPublished, &v.CreatedAt, &v.UpdatedAt, &v.Owner.Username, &v.Owner.FullName, &v.Owner.Avatar, &v.LikesCount)
	if err != nil {
		return nil, err
	}
	v.Owner.ID = v.OwnerID
	return v, nil
}

func (r *VideoRepository) queryVideos(ctx context.Context, log *logrus.Entry, query string, args ...any) ([]*model.Video, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute video list query")
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

func (r *VideoRepository) CreateVideo(ctx context.Context, video *model.Video) error {
	video.ID = uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"video_id": video.ID,
		"owner_id": video.OwnerID,
	})
	log.Info("Executing query to create a new video")

	query := `INSERT INTO videos (id, owner_id, video_file, thumbnail, title, description, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING views, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, video.ID, video.OwnerID, video.VideoFile, video.Thumbnail, video.Title,
		video.Description, video.Duration, video.IsPublished).Scan(&video.Views, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create video query")
		return translate(err)
	}
	return nil
}

func (r *VideoRepository) GetVideoByID(ctx context.Context, id string) (*model.Video, error) {
	v, err := scanVideo(r.DB.QueryRowContext(ctx, videoSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("video_id", id).Error("Failed to execute get video query")
		}
		return nil, translate(err)
	}
	return v, nil
}

// likeEscaper makes the search text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListVideos returns one page of videos visible to the viewer plus the total match count.
func (r *VideoRepository) ListVideos(ctx context.Context, filter model.VideoFilter) ([]*model.Video, int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"query":    filter.Query,
		"owner_id": filter.OwnerID,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
	log.Info("Executing query to list videos")

	args := []any{filter.ViewerID}
	where := []string{"(v.is_published OR v.owner_id = $1)"}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+likeEscaper.Replace(q)+"%")
		where = append(where, fmt.Sprintf(`(v.title ILIKE $%d ESCAPE '\' OR v.description ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM videos v` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to execute count videos query")
		return nil, 0, translate(err)
	}

	column, ok := videoSortColumns[filter.SortBy]
	if !ok {
		column = videoSortColumns["createdAt"]
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	page := filter.PageQuery.Normalize()
	args = append(args, page.Limit, page.Offset())
	query := videoSelect + whereClause +
		fmt.Sprintf(" ORDER BY %s %s, v.id LIMIT $%d OFFSET $%d", column, direction, len(args)-1, len(args))

	videos, err := r.queryVideos(ctx, log, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListByOwner includes unpublished videos and is meant for the owner's dashboard.
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error) {
	log := logger.Log.WithField("owner_id", ownerID)
	log.Info("Executing query to list videos by owner")
	return r.queryVideos(ctx, log, videoSelect+` WHERE v.owner_id = $1 ORDER BY v.created_at DESC`, ownerID)
}

func (r *VideoRepository) ListLikedBy(ctx context.Context, userID string) ([]*model.Video, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to list liked videos")
	query := videoSelect + `
		JOIN likes lk ON lk.video_id = v.id
		WHERE lk.liked_by = $1 AND (v.is_published OR v.owner_id = $1)
		ORDER BY lk.created_at DESC`
	return r.queryVideos(ctx, log, query, userID)
}

func (r *VideoRepository) ListWatchHistory(ctx context.Context, userID string) ([]*model.Video, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to list watch history")
	query := videoSelect + `
		JOIN watch_history wh ON wh.video_id = v.id
		WHERE wh.user_id = $1 AND (v.is_published OR v.owner_id = $1)
		ORDER BY wh.watched_at DESC`
	return r.queryVideos(ctx, log, query, userID)
}

func (r *VideoRepository) UpdateVideo(ctx context.Context, video *model.Video) error {
	log := logger.Log.WithField("video_id", video.ID)
	log.Info("Executing query to update video")

	query := `UPDATE videos SET title = $1, description = $2, thumbnail = $3, updated_at = NOW()
		WHERE id = $4 RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query, video.Title, video.Description, video.Thumbnail, video.ID).Scan(&video.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update video query")
		return translate(err)
	}
	return nil
}

func (r *VideoRepository) DeleteVideo(ctx context.Context, id string) error {
	log := logger.Log.WithField("video_id", id)
	log.Info("Executing query to delete video")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete video query")
		return translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return nil
}

// TogglePublish flips is_published and returns the new value.
func (r *VideoRepository) TogglePublish(ctx context.Context, id string) (bool, error) {
	log := logger.Log.WithField("video_id", id)
	log.Info("Executing query to toggle video publish status")

	var published bool
	query := `UPDATE videos SET is_published = NOT is_published, updated_at = NOW() WHERE id = $1 RETURNING is_published`
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&published); err != nil {
		log.WithError(err).Error("Failed to execute toggle publish query")
		return false, translate(err)
	}
	return published, nil
}

// RecordView bumps the view counter and moves the video to the top of the viewer's history.
func (r *VideoRepository) RecordView(ctx context.Context, videoID, viewerID string) error {
	log := logger.Log.WithFields(logrus.Fields{"video_id": videoID, "viewer_id": viewerID})
	log.Debug("Executing query to record video view")

	query := `
		WITH bumped AS (
			UPDATE videos SET views = views + 1 WHERE id = $1 RETURNING id
		)
		INSERT INTO watch_history (user_id, video_id, watched_at)
		SELECT $2::uuid, id, NOW() FROM bumped
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at`
	if _, err := r.DB.ExecContext(ctx, query, videoID, viewerID); err != nil {
		log.WithError(err).Error("Failed to execute record view query")
		return translate(err)
	}
	return nil
}
