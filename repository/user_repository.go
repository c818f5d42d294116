package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for identity persistence.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateAccountDetails(ctx context.Context, id, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*model.User, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, full_name, avatar, cover_image, password, refresh_token_hash, created_at, updated_at`

func scanUser(row scanner) (*model.User, error) {
	user := &model.User{}
	var refreshHash sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.Avatar, &user.CoverImage,
		&user.Password, &refreshHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if refreshHash.Valid {
		user.RefreshTokenHash = &refreshHash.String
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	})
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (id, username, email, full_name, avatar, cover_image, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.FullName,
		user.Avatar, user.CoverImage, user.Password).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return translate(err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute get user by id query")
		}
		return nil, translate(err)
	}
	return user, nil
}

// FindByUsernameOrEmail matches either field; an empty argument never matches.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username, email))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute find user query")
		}
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	logger.Log.WithField("user_id", id).Info("Executing query to update password")

	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hash, id)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute update password query")
		return translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAccountDetails(ctx context.Context, id, fullName, email string) (*model.User, error) {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to update account details")

	query := `UPDATE users SET full_name = $1, email = $2, updated_at = NOW() WHERE id = $3 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, fullName, email, id))
	if err != nil {
		log.WithError(err).Error("Failed to execute update account details query")
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, url string) (*model.User, error) {
	return r.updateImage(ctx, `UPDATE users SET avatar = $1, updated_at = NOW() WHERE id = $2 RETURNING `+userColumns, id, url)
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id, url string) (*model.User, error) {
	return r.updateImage(ctx, `UPDATE users SET cover_image = $1, updated_at = NOW() WHERE id = $2 RETURNING `+userColumns, id, url)
}

func (r *UserRepository) updateImage(ctx context.Context, query, id, url string) (*model.User, error) {
	log := logger.Log.WithFields(logrus.Fields{"user_id": id, "url": url})
	log.Info("Executing query to update user image")

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, url, id))
	if err != nil {
		log.WithError(err).Error("Failed to execute update user image query")
		return nil, translate(err)
	}
	return user, nil
}

// GetChannelProfile joins subscription counts onto the user found by username.
func (r *UserRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	log := logger.Log.WithFields(logrus.Fields{"username": username, "viewer_id": viewerID})
	log.Info("Executing query to get channel profile")

	query := `
		SELECT u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
		FROM users u
		WHERE u.username = $1`

	p := &model.ChannelProfile{}
	err := r.DB.QueryRowContext(ctx, query, username, viewerID).Scan(&p.ID, &p.Username, &p.FullName, &p.Email,
		&p.Avatar, &p.CoverImage, &p.SubscribersCount, &p.ChannelsSubscribedToCount, &p.IsSubscribed)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get channel profile query")
		}
		return nil, translate(err)
	}
	return p, nil
}
