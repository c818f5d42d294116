package service

import (
	"context"
	"io"
	"time"

	"vidtube-api/model"
	"vidtube-api/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for IUserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "new-user"
	}
	return args.Error(0)
}
func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockUserRepository) UpdateAccountDetails(ctx context.Context, id, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserRepository) UpdateCoverImage(ctx context.Context, id, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

// MockVideoRepository is a mock for IVideoRepository.
type MockVideoRepository struct{ mock.Mock }

func (m *MockVideoRepository) CreateVideo(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	if args.Error(0) == nil {
		video.ID = "new-video"
	}
	return args.Error(0)
}
func (m *MockVideoRepository) GetVideoByID(ctx context.Context, id string) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}
func (m *MockVideoRepository) ListVideos(ctx context.Context, filter model.VideoFilter) ([]*model.Video, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.Video), args.Get(1).(int64), args.Error(2)
}
func (m *MockVideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Video, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*model.Video), args.Error(1)
}
func (m *MockVideoRepository) ListLikedBy(ctx context.Context, userID string) ([]*model.Video, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Video), args.Error(1)
}
func (m *MockVideoRepository) ListWatchHistory(ctx context.Context, userID string) ([]*model.Video, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Video), args.Error(1)
}
func (m *MockVideoRepository) UpdateVideo(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}
func (m *MockVideoRepository) DeleteVideo(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockVideoRepository) TogglePublish(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockVideoRepository) RecordView(ctx context.Context, videoID, viewerID string) error {
	return m.Called(ctx, videoID, viewerID).Error(0)
}

// MockCommentRepository is a mock for ICommentRepository.
type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}
func (m *MockCommentRepository) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}
func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID string, page model.PageQuery) ([]*model.Comment, int64, error) {
	args := m.Called(ctx, videoID, page)
	return args.Get(0).([]*model.Comment), args.Get(1).(int64), args.Error(2)
}
func (m *MockCommentRepository) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}
func (m *MockCommentRepository) DeleteComment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTweetRepository is a mock for ITweetRepository.
type MockTweetRepository struct{ mock.Mock }

func (m *MockTweetRepository) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}
func (m *MockTweetRepository) GetTweetByID(ctx context.Context, id string) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}
func (m *MockTweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Tweet, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*model.Tweet), args.Error(1)
}
func (m *MockTweetRepository) UpdateContent(ctx context.Context, id, content string) (*model.Tweet, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}
func (m *MockTweetRepository) DeleteTweet(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockLikeRepository is a mock for ILikeRepository.
type MockLikeRepository struct{ mock.Mock }

func (m *MockLikeRepository) AddLike(ctx context.Context, target model.LikeTarget, targetID, userID string) error {
	return m.Called(ctx, target, targetID, userID).Error(0)
}
func (m *MockLikeRepository) RemoveLike(ctx context.Context, target model.LikeTarget, targetID, userID string) (bool, error) {
	args := m.Called(ctx, target, targetID, userID)
	return args.Bool(0), args.Error(1)
}

// MockPlaylistRepository is a mock for IPlaylistRepository.
type MockPlaylistRepository struct{ mock.Mock }

func (m *MockPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}
func (m *MockPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}
func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Playlist, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*model.Playlist), args.Error(1)
}
func (m *MockPlaylistRepository) UpdatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}
func (m *MockPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	return m.Called(ctx, playlistID, videoID).Error(0)
}
func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPlaylistRepository) ListVideos(ctx context.Context, playlistID, viewerID string) ([]*model.Video, error) {
	args := m.Called(ctx, playlistID, viewerID)
	return args.Get(0).([]*model.Video), args.Error(1)
}

// MockSubscriptionRepository is a mock for ISubscriptionRepository.
type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Subscribe(ctx context.Context, subscriberID, channelID string) error {
	return m.Called(ctx, subscriberID, channelID).Error(0)
}
func (m *MockSubscriptionRepository) Unsubscribe(ctx context.Context, subscriberID, channelID string) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]*model.SubscriptionEntry, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).([]*model.SubscriptionEntry), args.Error(1)
}
func (m *MockSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*model.SubscriptionEntry, error) {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).([]*model.SubscriptionEntry), args.Error(1)
}

// MockDashboardRepository is a mock for IDashboardRepository.
type MockDashboardRepository struct{ mock.Mock }

func (m *MockDashboardRepository) ChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelStats), args.Error(1)
}

// MockMediaStore is a mock for storage.MediaStore.
type MockMediaStore struct{ mock.Mock }

func (m *MockMediaStore) Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*storage.Asset, error) {
	args := m.Called(ctx, folder, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Asset), args.Error(1)
}
func (m *MockMediaStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// MockCacheClient is a mock for ICacheClient.
type MockCacheClient struct{ mock.Mock }

func (m *MockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewStringCmd(ctx)
	if err := args.Error(1); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}
func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetErr(args.Error(0))
	return cmd
}
func (m *MockCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetErr(args.Error(0))
	return cmd
}

func upload(name string) *Upload {
	return &Upload{Filename: name, ContentType: "application/octet-stream", Size: 1}
}
