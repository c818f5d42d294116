package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ICommentRepository defines the contract for comment persistence.
type ICommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page model.PageQuery) ([]*model.Comment, int64, error)
	UpdateContent(ctx context.Context, id, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

const commentSelect = `
	SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		u.username, u.full_name, u.avatar,
		(SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.id)
	FROM comments c
	JOIN users u ON u.id = c.owner_id`

func scanComment(row scanner) (*model.Comment, error) {
	c := &model.Comment{Owner: &model.UserSummary{}}
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Owner.Username, &c.Owner.FullName, &c.Owner.Avatar, &c.LikesCount)
	if err != nil {
		return nil, err
	}
	c.Owner.ID = c.OwnerID
	return c, nil
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"comment_id": comment.ID,
		"video_id":   comment.VideoID,
		"owner_id":   comment.OwnerID,
	})
	log.Info("Executing query to create a new comment")

	query := `INSERT INTO comments (id, video_id, owner_id, content) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, comment.ID, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create comment query")
		return translate(err)
	}
	return nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	c, err := scanComment(r.DB.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("comment_id", id).Error("Failed to execute get comment query")
		}
		return nil, translate(err)
	}
	return c, nil
}

// ListByVideo returns comments newest first.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string, page model.PageQuery) ([]*model.Comment, int64, error) {
	log := logger.Log.WithFields(logrus.Fields{"video_id": videoID, "page": page.Page, "limit": page.Limit})
	log.Info("Executing query to list comments by video")

	var total int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to execute count comments query")
		return nil, 0, translate(err)
	}

	page = page.Normalize()
	query := commentSelect + ` WHERE c.video_id = $1 ORDER BY c.created_at DESC, c.id LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, videoID, page.Limit, page.Offset())
	if err != nil {
		log.WithError(err).Error("Failed to execute list comments query")
		return nil, 0, translate(err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan comment row")
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	log := logger.Log.WithField("comment_id", id)
	log.Info("Executing query to update comment")

	res, err := r.DB.ExecContext(ctx, `UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2`, content, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update comment query")
		return nil, translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}
	return r.GetCommentByID(ctx, id)
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id string) error {
	log := logger.Log.WithField("comment_id", id)
	log.Info("Executing query to delete comment")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete comment query")
		return translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return nil
}
