package repository

import (
	"context"
	"database/sql"

	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/google/uuid"
)

// ITweetRepository defines the contract for tweet persistence.
type ITweetRepository interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweetByID(ctx context.Context, id string) (*model.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, id string) error
}

type TweetRepository struct {
	DB *sql.DB
}

func NewTweetRepository(db *sql.DB) *TweetRepository {
	return &TweetRepository{DB: db}
}

const tweetSelect = `
	SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		u.username, u.full_name, u.avatar,
		(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id)
	FROM tweets t
	JOIN users u ON u.id = t.owner_id`

func scanTweet(row scanner) (*model.Tweet, error) {
	t := &model.Tweet{Owner: &model.UserSummary{}}
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
		&t.Owner.Username, &t.Owner.FullName, &t.Owner.Avatar, &t.LikesCount)
	if err != nil {
		return nil, err
	}
	t.Owner.ID = t.OwnerID
	return t, nil
}

func (r *TweetRepository) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	tweet.ID = uuid.NewString()
	log := logger.Log.WithField("owner_id", tweet.OwnerID)
	log.Info("Executing query to create a new tweet")

	query := `INSERT INTO tweets (id, owner_id, content) VALUES ($1, $2, $3) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, tweet.ID, tweet.OwnerID, tweet.Content).Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create tweet query")
		return translate(err)
	}
	return nil
}

func (r *TweetRepository) GetTweetByID(ctx context.Context, id string) (*model.Tweet, error) {
	t, err := scanTweet(r.DB.QueryRowContext(ctx, tweetSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("tweet_id", id).Error("Failed to execute get tweet query")
		}
		return nil, translate(err)
	}
	return t, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Tweet, error) {
	log := logger.Log.WithField("owner_id", ownerID)
	log.Info("Executing query to list tweets by owner")

	rows, err := r.DB.QueryContext(ctx, tweetSelect+` WHERE t.owner_id = $1 ORDER BY t.created_at DESC`, ownerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute list tweets query")
		return nil, translate(err)
	}
	defer rows.Close()

	tweets := make([]*model.Tweet, 0)
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan tweet row")
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id, content string) (*model.Tweet, error) {
	log := logger.Log.WithField("tweet_id", id)
	log.Info("Executing query to update tweet")

	res, err := r.DB.ExecContext(ctx, `UPDATE tweets SET content = $1, updated_at = NOW() WHERE id = $2`, content, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update tweet query")
		return nil, translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}
	return r.GetTweetByID(ctx, id)
}

func (r *TweetRepository) DeleteTweet(ctx context.Context, id string) error {
	log := logger.Log.WithField("tweet_id", id)
	log.Info("Executing query to delete tweet")

	res, err := r.DB.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete tweet query")
		return translate(err)
	}
	if ok, err := affectedOne(res); err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}
	return nil
}
