package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"vidtube-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var userRowColumns = []string{"id", "username", "email", "full_name", "avatar", "cover_image", "password",
	"refresh_token_hash", "created_at", "updated_at"}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&pq.Error{Code: pgUniqueViolation, Constraint: "users_email_key"}), ErrDuplicate)
	assert.ErrorIs(t, translate(&pq.Error{Code: pgForeignKeyViolation}), ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		user := &model.User{Username: "alice", Email: "a@x.io", FullName: "Alice", Avatar: "http://cdn/a.png", Password: "hash"}
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(sqlmock.AnyArg(), "alice", "a@x.io", "Alice", "http://cdn/a.png", "", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.CreateUser(ctx, user))
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("duplicate", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "users_username_key"})

		err := repo.CreateUser(ctx, &model.User{Username: "alice"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("found with live refresh token", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("u1", "alice", "a@x.io", "Alice", "av", "", "hash", "digest", now, now))

		user, err := repo.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.RefreshTokenHash)
		assert.Equal(t, "digest", *user.RefreshTokenHash)
	})

	t.Run("no refresh token", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("u2", "bob", "b@x.io", "Bob", "av", "", "hash", nil, now, now))

		user, err := repo.GetUserByID(ctx, "u2")
		require.NoError(t, err)
		assert.Nil(t, user.RefreshTokenHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Rotate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()
	query := regexp.QuoteMeta(`UPDATE users SET refresh_token_hash = $1`)

	t.Run("first token", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("next", "u1", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Rotate(ctx, "u1", nil, "next"))
	})

	t.Run("rotation succeeds when digest matches", func(t *testing.T) {
		current := "current"
		mock.ExpectExec(query).
			WithArgs("next", "u1", "current").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Rotate(ctx, "u1", &current, "next"))
	})

	t.Run("lost race", func(t *testing.T) {
		current := "replayed"
		mock.ExpectExec(query).
			WithArgs("next", "u1", "replayed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Rotate(ctx, "u1", &current, "next"), ErrStaleToken)
	})

	t.Run("clear", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET refresh_token_hash = NULL`)).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Clear(ctx, "u1"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListVideos(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVideoRepository(db)
	now := time.Now()

	filter := model.VideoFilter{
		Query:     "go",
		ViewerID:  "viewer",
		SortBy:    "unknown",
		PageQuery: model.PageQuery{Page: 2, Limit: 5},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM videos v WHERE (v.is_published OR v.owner_id = $1) AND (v.title ILIKE $2`)).
		WithArgs("viewer", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY v.created_at ASC, v.id LIMIT $3 OFFSET $4`)).
		WithArgs("viewer", "%go%", 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "video_file", "thumbnail", "title", "description",
			"duration", "views", "is_published", "created_at", "updated_at", "username", "full_name", "avatar", "likes"}).
			AddRow("v1", "o1", "file", "thumb", "Go talk", "desc", 12.5, 3, true, now, now, "owner", "Owner", "av", 2))

	videos, total, err := repo.ListVideos(context.Background(), filter)
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, videos, 1)
	assert.Equal(t, "o1", videos[0].Owner.ID)
	assert.EqualValues(t, 2, videos[0].LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListVideos_SearchIsLiteral(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVideoRepository(db)

	filter := model.VideoFilter{Query: `50%_off\`, ViewerID: "viewer"}

	mock.ExpectQuery(regexp.QuoteMeta(`(v.title ILIKE $2 ESCAPE '\' OR v.description ILIKE $2 ESCAPE '\')`)).
		WithArgs("viewer", `%50\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $3 OFFSET $4`)).
		WithArgs("viewer", `%50\%\_off\\%`, model.DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "video_file", "thumbnail", "title", "description",
			"duration", "views", "is_published", "created_at", "updated_at", "username", "full_name", "avatar", "likes"}))

	videos, total, err := repo.ListVideos(context.Background(), filter)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, videos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_DeleteVideo_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVideoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM videos WHERE id = $1`)).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteVideo(context.Background(), "v1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	t.Run("add comment like", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes (id, comment_id, liked_by)`)).
			WithArgs(sqlmock.AnyArg(), "c1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddLike(ctx, model.LikeComment, "c1", "u1"))
	})

	t.Run("remove reports absence", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM likes WHERE tweet_id = $1 AND liked_by = $2`)).
			WithArgs("t1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.RemoveLike(ctx, model.LikeTweet, "t1", "u1")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := repo.RemoveLike(ctx, model.LikeTarget("playlist"), "p1", "u1")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_AddVideo(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO playlist_videos (playlist_id, video_id)`)

	mock.ExpectExec(query).WithArgs("p1", "v1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.AddVideo(ctx, "p1", "v1"))

	mock.ExpectExec(query).WithArgs("p1", "v1").
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "playlist_videos_pkey"})
	assert.ErrorIs(t, repo.AddVideo(ctx, "p1", "v1"), ErrDuplicate)

	mock.ExpectExec(query).WithArgs("p1", "gone").
		WillReturnError(&pq.Error{Code: pgForeignKeyViolation, Constraint: "playlist_videos_video_id_fkey"})
	assert.ErrorIs(t, repo.AddVideo(ctx, "p1", "gone"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_ListSubscribers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubscriptionRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON u.id = s.subscriber_id`)).
		WithArgs("chan").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "avatar", "created_at"}).
			AddRow("u1", "alice", "Alice", "av", now).
			AddRow("u2", "bob", "Bob", "av", now))

	entries, err := repo.ListSubscribers(context.Background(), "chan")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[1].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_ChannelStats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1`)).
		WithArgs("chan").
		WillReturnRows(sqlmock.NewRows([]string{"videos", "views", "subs", "likes"}).AddRow(3, 120, 9, 14))

	stats, err := repo.ChannelStats(context.Background(), "chan")
	require.NoError(t, err)
	assert.Equal(t, &model.ChannelStats{ChannelID: "chan", TotalVideos: 3, TotalViews: 120, TotalSubscribers: 9, TotalLikes: 14}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
