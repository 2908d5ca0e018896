package alias

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the storage contract for aliases. Code uniqueness is
// enforced by the backend's own constraint, not by application locking;
// Save reports a collision as ErrCodeTaken so the caller can regenerate.
// There is no cache in front of a Repository: every lookup is a fresh read.
type Repository interface {
	Save(ctx context.Context, a *Alias) error
	GetByCode(ctx context.Context, code Code) (*Alias, error)

	// ListByOwner returns the aliases created by one owner, in no
	// particular order. Anonymous aliases are never included.
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Alias, error)
}
