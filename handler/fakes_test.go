package handler

import (
	"context"
	"errors"
	"io"
	"sync"

	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/storage"

	"github.com/google/uuid"
)

// memoryUsers is an in-memory user and token store with the same CAS semantics as
// the SQL repositories.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*model.User)}
}

func (m *memoryUsers) add(username, email, password string) *model.User {
	u := &model.User{ID: uuid.NewString(), Username: username, Email: email, FullName: "Test " + username}
	if err := u.SetPassword(password); err != nil {
		panic(err)
	}
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
	return u
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (m *memoryUsers) UpdateAccountDetails(ctx context.Context, id, fullName, email string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryUsers) UpdateAvatar(ctx context.Context, id, url string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryUsers) UpdateCoverImage(ctx context.Context, id, url string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryUsers) GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryUsers) Rotate(ctx context.Context, userID string, expected *string, next string) error {
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

func (m *memoryUsers) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.RefreshTokenHash = nil
	}
	return nil
}

type memoryMedia struct{}

func (memoryMedia) Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*storage.Asset, error) {
	key := folder + "/" + uuid.NewString()
	return &storage.Asset{Key: key, URL: "http://media.test/" + key}, nil
}

func (memoryMedia) Delete(ctx context.Context, url string) error { return nil }
