package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
)

// ITokenRepository defines the contract for the refresh-token digest stored on each user.
type ITokenRepository interface {
	Rotate(ctx context.Context, userID string, expected *string, next string) error
	Clear(ctx context.Context, userID string) error
}

// TokenRepository implements ITokenRepository on users.refresh_token_hash.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Rotate replaces the stored digest with next only while it still equals expected
// (nil meaning "no live token"). A lost race yields ErrStaleToken.
func (r *TokenRepository) Rotate(ctx context.Context, userID string, expected *string, next string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to rotate refresh token")

	query := `UPDATE users SET refresh_token_hash = $1, updated_at = NOW()
		WHERE id = $2 AND refresh_token_hash IS NOT DISTINCT FROM $3`
	res, err := r.DB.ExecContext(ctx, query, next, userID, expected)
	if err != nil {
		log.WithError(err).Error("Failed to execute rotate refresh token query")
		return translate(err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("Refresh token rotation lost a race")
		return ErrStaleToken
	}
	return nil
}

// Clear drops the live refresh token, used on logout.
func (r *TokenRepository) Clear(ctx context.Context, userID string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to clear refresh token")

	_, err := r.DB.ExecContext(ctx, `UPDATE users SET refresh_token_hash = NULL, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute clear refresh token query")
		return translate(err)
	}
	return nil
}
