package handler

import (
	"errors"

	"vidtube-api/common"
	"vidtube-api/service"
)

var statusBySentinel = []struct {
	err  error
	wrap func(string, error) *common.AppError
}{
	{service.ErrUserExists, common.Conflict},
	{service.ErrEmailTaken, common.Conflict},
	{service.ErrConcurrentLogin, common.Conflict},
	{service.ErrVideoInPlaylist, common.Conflict},

	{service.ErrUserNotFound, common.BadRequest},
	{service.ErrAvatarRequired, common.BadRequest},
	{service.ErrInvalidOldPassword, common.BadRequest},
	{service.ErrPasswordTooLong, common.BadRequest},
	{service.ErrSelfSubscription, common.BadRequest},
	{service.ErrVideoFileRequired, common.BadRequest},
	{service.ErrEmptyContent, common.BadRequest},

	{service.ErrInvalidCredentials, common.Unauthorized},
	{service.ErrRefreshTokenMissing, common.Unauthorized},
	{service.ErrInvalidRefreshToken, common.Unauthorized},
	{service.ErrRefreshTokenReused, common.Unauthorized},
	{service.ErrInvalidAccessToken, common.Unauthorized},

	{service.ErrForbidden, common.Forbidden},

	{service.ErrChannelNotFound, common.NotFound},
	{service.ErrVideoNotFound, common.NotFound},
	{service.ErrCommentNotFound, common.NotFound},
	{service.ErrTweetNotFound, common.NotFound},
	{service.ErrPlaylistNotFound, common.NotFound},
	{service.ErrVideoNotInPlaylist, common.NotFound},
}

// toAppError maps a service error onto its HTTP status. Anything unknown is a 500
// whose cause is logged but not shown.
func toAppError(err error, fallback string) *common.AppError {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.wrap(s.err.Error(), err)
		}
	}
	return common.Internal(fallback, err)
}
