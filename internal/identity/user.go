// Package identity owns user accounts and session tokens. The alias core
// consumes only the authenticated principal id it produces.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is an account that can own aliases. Passwords are stored only as
// bcrypt hashes.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login failure never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers malformed, tampered, and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Repository defines user persistence. Email uniqueness is enforced by the
// backend's own constraint; Create reports it as ErrEmailTaken.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
