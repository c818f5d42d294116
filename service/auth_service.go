package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the session lifecycle: register, login, refresh rotation and logout.
type AuthService struct {
	users  repository.IUserRepository
	tokens repository.ITokenRepository
	media  storage.MediaStore
	jwt    *TokenManager
}

func NewAuthService(users repository.IUserRepository, tokens repository.ITokenRepository, media storage.MediaStore, jwt *TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		media:  media,
		jwt:    jwt,
	}
}

// Register creates an identity with an avatar and an optional cover image.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, avatar, cover *Upload) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByUsernameOrEmail(ctx, username, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if avatar == nil {
		return nil, ErrAvatarRequired
	}
	user := &model.User{
		Username: username,
		Email:    email,
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := setPassword(user, req.Password); err != nil {
		return nil, err
	}

	avatarAsset, err := store(ctx, s.media, storage.FolderAvatars, avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	user.Avatar = avatarAsset.URL
	if cover != nil {
		coverAsset, err := store(ctx, s.media, storage.FolderCovers, cover)
		if err != nil {
			discard(ctx, s.media, avatarAsset.URL)
			return nil, fmt.Errorf("failed to upload cover image: %w", err)
		}
		user.CoverImage = coverAsset.URL
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		discard(ctx, s.media, user.Avatar)
		discard(ctx, s.media, user.CoverImage)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return user, nil
}

// Login verifies the credentials and starts a new session, replacing any earlier one.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.Session, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, strings.ToLower(strings.TrimSpace(req.Username)), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsPasswordCorrect(req.Password) {
		logger.Log.WithField("user_id", user.ID).Warn("Login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	session, err := s.startSession(ctx, user, user.RefreshTokenHash)
	if errors.Is(err, repository.ErrStaleToken) {
		return nil, ErrConcurrentLogin
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return session, nil
}

// Refresh exchanges the live refresh token for a new pair. Any other token,
// including an earlier one with a valid signature, is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenMissing
	}

	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		logger.Log.WithError(err).Warn("Refresh rejected: token failed verification")
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != HashRefreshToken(refreshToken) {
		logger.Log.WithField("user_id", user.ID).Warn("Refresh rejected: token is not the live one")
		return nil, ErrRefreshTokenReused
	}

	session, err := s.startSession(ctx, user, user.RefreshTokenHash)
	if errors.Is(err, repository.ErrStaleToken) {
		return nil, ErrRefreshTokenReused
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("Refresh token rotated")
	return session, nil
}

// Logout drops the live refresh token so it can no longer be exchanged.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.Clear(ctx, userID); err != nil {
		return err
	}
	logger.Log.WithField("user_id", userID).Info("User logged out")
	return nil
}

// ChangePassword replaces the password hash. The session is left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req model.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.IsPasswordCorrect(req.OldPassword) {
		return ErrInvalidOldPassword
	}
	if err := setPassword(user, req.NewPassword); err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return err
	}

	logger.Log.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

// Authenticate resolves the user behind an access token. It never rotates anything.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.jwt.ParseAccess(accessToken)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAccessToken
		}
		return nil, err
	}
	user.Password = ""
	user.RefreshTokenHash = nil
	return user, nil
}

// startSession mints a pair and stores its refresh digest only if the stored digest
// still equals expected.
func (s *AuthService) startSession(ctx context.Context, user *model.User, expected *string) (*model.Session, error) {
	pair, err := s.jwt.IssuePair(user)
	if err != nil {
		return nil, err
	}
	digest := HashRefreshToken(pair.RefreshToken)
	if err := s.tokens.Rotate(ctx, user.ID, expected, digest); err != nil {
		return nil, err
	}

	user.RefreshTokenHash = &digest
	return &model.Session{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// setPassword hashes plain into user. Passwords bcrypt cannot take come back as
// ErrPasswordTooLong.
func setPassword(user *model.User, plain string) error {
	if err := user.SetPassword(plain); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
