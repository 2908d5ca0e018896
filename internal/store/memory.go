package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/link-shortener/internal/alias"
	"github.com/serroba/link-shortener/internal/identity"
)

// MemoryStore is an in-memory implementation of both alias.Repository and
// identity.Repository, used by unit tests and the memory backend.
type MemoryStore struct {
	mu      sync.RWMutex
	aliases map[alias.Code]alias.Alias
	users   map[uuid.UUID]identity.User
	emails  map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aliases: make(map[alias.Code]alias.Alias),
		users:   make(map[uuid.UUID]identity.User),
		emails:  make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) Save(_ context.Context, a *alias.Alias) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.aliases[a.Code]; exists {
		return alias.ErrCodeTaken
	}

	m.aliases[a.Code] = *a

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code alias.Code) (*alias.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.aliases[code]
	if !ok {
		return nil, alias.ErrNotFound
	}

	return &a, nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, owner uuid.UUID) ([]*alias.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*alias.Alias

	for _, a := range m.aliases {
		if a.OwnerID != nil && *a.OwnerID == owner {
			cp := a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.emails[u.Email]; taken {
		return identity.ErrEmailTaken
	}

	m.users[u.ID] = *u
	m.emails[u.Email] = u.ID

	return nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*identity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, identity.ErrNotFound
	}

	u := m.users[id]

	return &u, nil
}
