package service

import "errors"

// Sentinel errors returned by the services. Handlers map them to HTTP statuses.
var (
	ErrUserExists          = errors.New("user with email or username already exists")
	ErrUserNotFound        = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid user credentials")
	ErrAvatarRequired      = errors.New("avatar file is required")
	ErrEmailTaken          = errors.New("email is already in use")
	ErrInvalidOldPassword  = errors.New("invalid old password")
	ErrPasswordTooLong     = errors.New("password must not exceed 72 bytes")
	ErrConcurrentLogin     = errors.New("another login for this user is in progress")
	ErrRefreshTokenMissing = errors.New("unauthorized request")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenReused  = errors.New("refresh token is expired or used")
	ErrInvalidAccessToken  = errors.New("invalid access token")

	ErrChannelNotFound  = errors.New("channel does not exist")
	ErrVideoNotFound    = errors.New("video not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrTweetNotFound    = errors.New("tweet not found")
	ErrPlaylistNotFound = errors.New("playlist not found")

	ErrForbidden          = errors.New("you are not allowed to modify this resource")
	ErrVideoInPlaylist    = errors.New("video is already in the playlist")
	ErrVideoNotInPlaylist = errors.New("video is not in the playlist")
	ErrSelfSubscription   = errors.New("you cannot subscribe to your own channel")
	ErrVideoFileRequired  = errors.New("video file and thumbnail are required")
	ErrEmptyContent       = errors.New("content is required")
)
