package alias_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/serroba/link-shortener/internal/alias"
)

var errMock = errors.New("mock error")

// mockRepo is a map-backed test double for alias.Repository that can be
// configured to fail or report collisions.
type mockRepo struct {
	aliases   map[alias.Code]*alias.Alias
	saveErr   error
	getErr    error
	listErr   error
	takenFor  int // initial Save calls answered with ErrCodeTaken
	saveCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{aliases: make(map[alias.Code]*alias.Alias)}
}

func (m *mockRepo) Save(_ context.Context, a *alias.Alias) error {
	m.saveCalls++

	if m.saveErr != nil {
		return m.saveErr
	}

	if m.saveCalls <= m.takenFor {
		return alias.ErrCodeTaken
	}

	if _, exists := m.aliases[a.Code]; exists {
		return alias.ErrCodeTaken
	}

	m.aliases[a.Code] = a

	return nil
}

func (m *mockRepo) GetByCode(_ context.Context, code alias.Code) (*alias.Alias, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	a, ok := m.aliases[code]
	if !ok {
		return nil, alias.ErrNotFound
	}

	return a, nil
}

func (m *mockRepo) ListByOwner(_ context.Context, owner uuid.UUID) ([]*alias.Alias, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []*alias.Alias

	for _, a := range m.aliases {
		if a.OwnerID != nil && *a.OwnerID == owner {
			out = append(out, a)
		}
	}

	return out, nil
}
