package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"vidtube-api/config"
	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager mints and verifies the access and refresh grants.
type TokenManager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

// IssuePair signs a fresh access/refresh pair for user.
func (m *TokenManager) IssuePair(user *model.User) (*model.TokenPair, error) {
	now := m.now()

	access := &model.AccessClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.AccessExpiry)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString([]byte(m.cfg.AccessSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := &model.RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.RefreshExpiry)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(m.cfg.RefreshSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign refresh token")
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (m *TokenManager) ParseAccess(token string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	if err := m.parse(token, m.cfg.AccessSecret, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("access token has no subject")
	}
	return claims, nil
}

func (m *TokenManager) ParseRefresh(token string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	if err := m.parse(token, m.cfg.RefreshSecret, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("refresh token has no subject")
	}
	return claims, nil
}

func (m *TokenManager) parse(token, secret string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.cfg.Leeway),
		jwt.WithTimeFunc(m.now),
	)
	return err
}

// HashRefreshToken is the digest stored on the identity row in place of the token.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
