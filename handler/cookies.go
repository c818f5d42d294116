package handler

import (
	"net/http"
	"strings"
	"time"

	"vidtube-api/config"
	"vidtube-api/model"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// SessionCookies writes and clears the two session cookies.
type SessionCookies struct {
	cfg        config.CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewSessionCookies(cfg config.CookieConfig, jwt config.JWTConfig) *SessionCookies {
	return &SessionCookies{cfg: cfg, accessTTL: jwt.AccessExpiry, refreshTTL: jwt.RefreshExpiry}
}

func (c *SessionCookies) Set(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, c.cookie(AccessCookie, session.AccessToken, c.accessTTL))
	http.SetCookie(w, c.cookie(RefreshCookie, session.RefreshToken, c.refreshTTL))
}

func (c *SessionCookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		cookie := c.cookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}
}

func (c *SessionCookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	path := c.cfg.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: c.cfg.HTTPOnly,
		Secure:   c.cfg.Secure,
		SameSite: sameSite(c.cfg.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	}
	return http.SameSiteDefaultMode
}
