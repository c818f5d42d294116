package handler

import (
	"context"
	"net/http"
	"strings"

	"vidtube-api/common"
	"vidtube-api/model"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves the user behind an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

// AuthMiddleware admits requests carrying a valid access token in the accessToken
// cookie or an Authorization bearer header, and puts the user in the context.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ErrorHandlingMiddleware(func(w http.ResponseWriter, r *http.Request) *common.AppError {
			token := accessToken(r)
			if token == "" {
				return common.Unauthorized("unauthorized request", nil)
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				return toAppError(err, "Could not authenticate request")
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
			return nil
		})
	}
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(r *http.Request) (*model.User, bool) {
	user, ok := r.Context().Value(userKey).(*model.User)
	return user, ok && user != nil
}

func requireUser(r *http.Request) (*model.User, *common.AppError) {
	user, ok := CurrentUser(r)
	if !ok {
		return nil, common.Unauthorized("unauthorized request", nil)
	}
	return user, nil
}
