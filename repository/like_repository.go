package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ILikeRepository defines the contract for like persistence.
type ILikeRepository interface {
	AddLike(ctx context.Context, target model.LikeTarget, targetID, userID string) error
	RemoveLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error)
}

type LikeRepository struct {
	DB *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

func likeColumn(target model.LikeTarget) (string, error) {
	column := target.Column()
	if column == "" {
		return "", fmt.Errorf("unknown like target %q", target)
	}
	return column, nil
}

// AddLike is idempotent: liking twice leaves a single row.
func (r *LikeRepository) AddLike(ctx context.Context, target model.LikeTarget, targetID, userID string) error {
	column, err := likeColumn(target)
	if err != nil {
		return err
	}
	log := logger.Log.WithFields(logrus.Fields{"target": target, "target_id": targetID, "user_id": userID})
	log.Info("Executing query to add like")

	query := fmt.Sprintf(`INSERT INTO likes (id, %s, liked_by) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, column)
	if _, err := r.DB.ExecContext(ctx, query, uuid.NewString(), targetID, userID); err != nil {
		log.WithError(err).Error("Failed to execute add like query")
		return translate(err)
	}
	return nil
}

// RemoveLike reports whether a like existed.
func (r *LikeRepository) RemoveLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error) {
	column, err := likeColumn(target)
	if err != nil {
		return false, err
	}
	log := logger.Log.WithFields(logrus.Fields{"target": target, "target_id": targetID, "user_id": userID})
	log.Info("Executing query to remove like")

	query := fmt.Sprintf(`DELETE FROM likes WHERE %s = $1 AND liked_by = $2`, column)
	res, err := r.DB.ExecContext(ctx, query, targetID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute remove like query")
		return false, translate(err)
	}
	return affectedOne(res)
}
