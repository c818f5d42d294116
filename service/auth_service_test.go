package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCredentials is an in-memory IUserRepository and ITokenRepository with the
// same compare-and-swap semantics as the SQL implementation.
type memoryCredentials struct {
	MockUserRepository
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemoryCredentials(users ...*model.User) *memoryCredentials {
	m := &memoryCredentials{users: make(map[string]*model.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryCredentials) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryCredentials) FindByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryCredentials) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Password = hash
	return nil
}

func (m *memoryCredentials) Rotate(_ context.Context, userID string, expected *string, next string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrStaleToken
	}
	current := u.RefreshTokenHash
	if (current == nil) != (expected == nil) || (current != nil && *current != *expected) {
		return repository.ErrStaleToken
	}
	u.RefreshTokenHash = &next
	return nil
}

func (m *memoryCredentials) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.RefreshTokenHash = nil
	}
	return nil
}

func newTestUser(t *testing.T, password string) *model.User {
	t.Helper()
	u := &model.User{ID: "u1", Username: "alice", Email: "a@x.com", FullName: "Alice", Avatar: "http://cdn/a.png"}
	require.NoError(t, u.SetPassword(password))
	return u
}

func newAuthFixture(t *testing.T) (*AuthService, *memoryCredentials, *TokenManager) {
	t.Helper()
	creds := newMemoryCredentials(newTestUser(t, "secret"))
	tm := NewTokenManager(testJWTConfig)
	return NewAuthService(creds, creds, nil, tm), creds, tm
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores digest of the refresh token", func(t *testing.T) {
		svc, creds, tm := newAuthFixture(t)
		session, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		_, err = tm.ParseAccess(session.AccessToken)
		assert.NoError(t, err)
		_, err = tm.ParseRefresh(session.RefreshToken)
		assert.NoError(t, err)

		stored, _ := creds.GetUserByID(ctx, "u1")
		require.NotNil(t, stored.RefreshTokenHash)
		assert.Equal(t, HashRefreshToken(session.RefreshToken), *stored.RefreshTokenHash)
	})

	t.Run("by username is case insensitive", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Login(ctx, model.LoginRequest{Username: "ALICE", Password: "secret"})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Login(ctx, model.LoginRequest{Email: "nobody@x.com", Password: "secret"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("concurrent login loses the swap", func(t *testing.T) {
		// The row was rotated by another login after this one read it.
		user := newTestUser(t, "secret")
		rotated := *user
		other := "digest-from-another-login"
		rotated.RefreshTokenHash = &other
		tokens := newMemoryCredentials(&rotated)

		users := new(MockUserRepository)
		users.On("FindByUsernameOrEmail", mock.Anything, "", "a@x.com").Return(user, nil).Once()

		svc := NewAuthService(users, tokens, nil, NewTokenManager(testJWTConfig))
		_, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		assert.ErrorIs(t, err, ErrConcurrentLogin)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair", func(t *testing.T) {
		svc, creds, _ := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

		stored, _ := creds.GetUserByID(ctx, "u1")
		assert.Equal(t, HashRefreshToken(refreshed.RefreshToken), *stored.RefreshTokenHash)
	})

	t.Run("two sequential refreshes invalidate the first grant", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		first, err := svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshTokenReused)
		_, err = svc.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshTokenReused)
	})

	t.Run("validly signed token that is not the stored one", func(t *testing.T) {
		svc, _, tm := newAuthFixture(t)
		_, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		forged, err := tm.IssuePair(&model.User{ID: "u1"})
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, forged.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshTokenReused)
	})

	t.Run("logout then refresh", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, "u1"))
		_, err = svc.Refresh(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshTokenReused)
	})

	t.Run("expired grant", func(t *testing.T) {
		svc, _, tm := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		tm.now = func() time.Time { return time.Now().Add(testJWTConfig.RefreshExpiry + time.Hour) }
		_, err = svc.Refresh(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("missing and malformed", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Refresh(ctx, "")
		assert.ErrorIs(t, err, ErrRefreshTokenMissing)
		_, err = svc.Refresh(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("identity gone", func(t *testing.T) {
		svc, creds, _ := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		delete(creds.users, "u1")
		_, err = svc.Refresh(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("concurrent refreshes of the same grant", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)

		const n = 8
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Refresh(ctx, login.RefreshToken)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrRefreshTokenReused)
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, creds, _ := newAuthFixture(t)

	err := svc.ChangePassword(ctx, "u1", model.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	err = svc.ChangePassword(ctx, "u1", model.ChangePasswordRequest{OldPassword: "secret", NewPassword: strings.Repeat("p", 73)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	require.NoError(t, svc.ChangePassword(ctx, "u1", model.ChangePasswordRequest{OldPassword: "secret", NewPassword: "newsecret"}))
	stored, _ := creds.GetUserByID(ctx, "u1")
	assert.True(t, stored.IsPasswordCorrect("newsecret"))
	assert.False(t, stored.IsPasswordCorrect("secret"))
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, creds, tm := newAuthFixture(t)

	login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.Password)
	assert.Nil(t, user.RefreshTokenHash)

	_, err = svc.Authenticate(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	tm.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.Authenticate(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	tm.now = time.Now
	delete(creds.users, "u1")
	_, err = svc.Authenticate(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := model.RegisterRequest{Username: " Alice ", Email: "a@x.com", FullName: "Alice", Password: "secret"}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		media := new(MockMediaStore)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(nil, repository.ErrNotFound).Once()
		media.On("Upload", mock.Anything, storage.FolderAvatars, "me.png").Return(&storage.Asset{URL: "http://cdn/avatars/1.png"}, nil).Once()
		media.On("Upload", mock.Anything, storage.FolderCovers, "cover.png").Return(&storage.Asset{URL: "http://cdn/covers/1.png"}, nil).Once()
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.Avatar == "http://cdn/avatars/1.png" && u.IsPasswordCorrect("secret")
		})).Return(nil).Once()

		svc := NewAuthService(users, nil, media, NewTokenManager(testJWTConfig))
		user, err := svc.Register(ctx, req, upload("me.png"), upload("cover.png"))
		require.NoError(t, err)
		assert.Equal(t, "http://cdn/covers/1.png", user.CoverImage)
		users.AssertExpectations(t)
		media.AssertExpectations(t)
	})

	t.Run("existing user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(&model.User{ID: "u1"}, nil).Once()

		svc := NewAuthService(users, nil, new(MockMediaStore), NewTokenManager(testJWTConfig))
		_, err := svc.Register(ctx, req, upload("me.png"), nil)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("avatar required", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(nil, repository.ErrNotFound).Once()

		svc := NewAuthService(users, nil, new(MockMediaStore), NewTokenManager(testJWTConfig))
		_, err := svc.Register(ctx, req, nil, nil)
		assert.ErrorIs(t, err, ErrAvatarRequired)
	})

	t.Run("password too long uploads nothing", func(t *testing.T) {
		users := new(MockUserRepository)
		media := new(MockMediaStore)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(nil, repository.ErrNotFound).Once()

		long := req
		long.Password = strings.Repeat("p", 80)
		svc := NewAuthService(users, nil, media, NewTokenManager(testJWTConfig))
		_, err := svc.Register(ctx, long, upload("me.png"), upload("cover.png"))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
		media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("email is lower-cased", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(&model.User{ID: "u1"}, nil).Once()

		mixed := req
		mixed.Email = " A@X.Com "
		svc := NewAuthService(users, nil, new(MockMediaStore), NewTokenManager(testJWTConfig))
		_, err := svc.Register(ctx, mixed, upload("me.png"), nil)
		assert.ErrorIs(t, err, ErrUserExists)
		users.AssertExpectations(t)
	})

	t.Run("insert race cleans up uploads", func(t *testing.T) {
		users := new(MockUserRepository)
		media := new(MockMediaStore)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.com").Return(nil, repository.ErrNotFound).Once()
		media.On("Upload", mock.Anything, storage.FolderAvatars, "me.png").Return(&storage.Asset{URL: "http://cdn/avatars/1.png"}, nil).Once()
		users.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
		media.On("Delete", mock.Anything, "http://cdn/avatars/1.png").Return(errors.New("gone")).Once()

		svc := NewAuthService(users, nil, media, NewTokenManager(testJWTConfig))
		_, err := svc.Register(ctx, req, upload("me.png"), nil)
		assert.ErrorIs(t, err, ErrUserExists)
		media.AssertExpectations(t)
	})
}
