package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"vidtube-api/config"
	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

type nopMedia struct{}

func (nopMedia) Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*storage.Asset, error) {
	return &storage.Asset{Key: folder + "/" + filename, URL: "http://media.test/" + folder + "/" + filename}, nil
}

func (nopMedia) Delete(ctx context.Context, url string) error { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.MaxUploadMB = 1
	cfg.JWT = config.JWTConfig{
		AccessSecret:  "access",
		AccessExpiry:  time.Minute,
		RefreshSecret: "refresh",
		RefreshExpiry: time.Hour,
	}
	cfg.Cookie = config.CookieConfig{HTTPOnly: true, Path: "/"}
	cfg.RateLimit.AuthPerMinute = 60
	cfg.RateLimit.AuthBurst = 10
	return cfg
}

func newTestApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	application := New(testConfig(), Deps{DB: database, Media: nopMedia{}})
	t.Cleanup(application.Close)
	return application, mock
}

func userRow(t *testing.T, id, password string) *sqlmock.Rows {
	t.Helper()
	u := &model.User{}
	require.NoError(t, u.SetPassword(password))
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "email", "full_name", "avatar", "cover_image", "password", "refresh_token_hash", "created_at", "updated_at"}).
		AddRow(id, "alice", "a@x.com", "Alice", "http://media.test/a.png", "", u.Password, nil, now, now)
}

func TestApp_Health(t *testing.T) {
	application, mock := newTestApp(t)
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_LoginThenCurrentUser(t *testing.T) {
	application, mock := newTestApp(t)
	const id = "6f9619ff-8b86-d011-b42d-00c04fc964ff"

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("", "a@x.com").
		WillReturnRows(userRow(t, id, "secret"))
	mock.ExpectExec("UPDATE users SET refresh_token_hash").
		WithArgs(sqlmock.AnyArg(), id, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"email":"a@x.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), `"password"`)

	var access *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "accessToken" {
			access = c
		}
	}
	require.NotNil(t, access)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(userRow(t, id, "secret"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(access)
	rec = httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"`+id+`"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_LoginLostRaceIsConflict(t *testing.T) {
	application, mock := newTestApp(t)
	const id = "6f9619ff-8b86-d011-b42d-00c04fc964ff"

	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(userRow(t, id, "secret"))
	mock.ExpectExec("UPDATE users SET refresh_token_hash").WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}
