// Package alias implements the short-link core: code generation, the
// storage contract, lifespan policies, and the redirect decision.
package alias

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Code is a short opaque identifier for an alias.
type Code string

// Alias maps a generated code to its target URL. An alias is created once
// and never mutated; only the clock changes its effective state.
type Alias struct {
	Code      Code
	TargetURL string
	OwnerID   *uuid.UUID // nil for anonymous aliases
	CreatedAt time.Time
	ExpiresAt time.Time
}

var (
	// ErrNotFound is returned when no alias exists for a code.
	ErrNotFound = errors.New("alias not found")

	// ErrCodeTaken is returned by a repository when a generated code
	// collides with an existing one. Callers regenerate and retry.
	ErrCodeTaken = errors.New("alias code already exists")

	// ErrInvalidURL is returned for targets that are empty or not
	// parseable absolute URLs.
	ErrInvalidURL = errors.New("target is not an absolute URL")

	// ErrCodeExhausted is returned when every generation attempt collided.
	ErrCodeExhausted = errors.New("could not generate a unique code")
)
