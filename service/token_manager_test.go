package service

import (
	"testing"
	"time"

	"vidtube-api/config"
	"vidtube-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = config.JWTConfig{
	AccessSecret:  "access-secret",
	AccessExpiry:  15 * time.Minute,
	RefreshSecret: "refresh-secret",
	RefreshExpiry: 240 * time.Hour,
	Leeway:        30 * time.Second,
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager(testJWTConfig)
	user := &model.User{ID: "u1", Email: "a@x.com", Username: "alice", FullName: "Alice"}

	pair, err := tm.IssuePair(user)
	require.NoError(t, err)

	access, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, "Alice", access.FullName)

	refresh, err := tm.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", refresh.UserID)
	assert.NotEmpty(t, refresh.ID)

	// Each grant is bound to its own secret.
	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = tm.ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenManager_RefreshTokensAreUnique(t *testing.T) {
	tm := NewTokenManager(testJWTConfig)
	fixed := time.Now()
	tm.now = func() time.Time { return fixed }
	user := &model.User{ID: "u1"}

	first, err := tm.IssuePair(user)
	require.NoError(t, err)
	second, err := tm.IssuePair(user)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, HashRefreshToken(first.RefreshToken), HashRefreshToken(second.RefreshToken))
}

func TestTokenManager_Expiry(t *testing.T) {
	tm := NewTokenManager(testJWTConfig)
	issuedAt := time.Now()
	tm.now = func() time.Time { return issuedAt }

	pair, err := tm.IssuePair(&model.User{ID: "u1"})
	require.NoError(t, err)

	t.Run("within leeway", func(t *testing.T) {
		tm.now = func() time.Time { return issuedAt.Add(testJWTConfig.AccessExpiry + 10*time.Second) }
		_, err := tm.ParseAccess(pair.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("past leeway", func(t *testing.T) {
		tm.now = func() time.Time { return issuedAt.Add(testJWTConfig.AccessExpiry + time.Minute) }
		_, err := tm.ParseAccess(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("refresh expired", func(t *testing.T) {
		tm.now = func() time.Time { return issuedAt.Add(testJWTConfig.RefreshExpiry + time.Hour) }
		_, err := tm.ParseRefresh(pair.RefreshToken)
		assert.Error(t, err)
	})
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	other := testJWTConfig
	other.AccessSecret = "someone-else"
	pair, err := NewTokenManager(other).IssuePair(&model.User{ID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenManager(testJWTConfig).ParseAccess(pair.AccessToken)
	assert.Error(t, err)
	_, err = NewTokenManager(testJWTConfig).ParseAccess("not-a-jwt")
	assert.Error(t, err)
}
