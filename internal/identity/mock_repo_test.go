package identity_test

import (
	"context"
	"errors"

	"github.com/serroba/link-shortener/internal/identity"
)

var errMock = errors.New("mock error")

// mockRepo is a map-backed test double for identity.Repository.
type mockRepo struct {
	byEmail   map[string]*identity.User
	createErr error
	getErr    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{byEmail: make(map[string]*identity.User)}
}

func (m *mockRepo) Create(_ context.Context, u *identity.User) error {
	if m.createErr != nil {
		return m.createErr
	}

	if _, taken := m.byEmail[u.Email]; taken {
		return identity.ErrEmailTaken
	}

	m.byEmail[u.Email] = u

	return nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*identity.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	u, ok := m.byEmail[email]
	if !ok {
		return nil, identity.ErrNotFound
	}

	return u, nil
}
