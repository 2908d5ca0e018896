package alias

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. Injectable so expiry decisions are
// testable without a real clock.
type Clock func() time.Time

// Service implements the alias lifecycle: shortening with collision retry,
// the three-way redirect decision, and owner-scoped listing.
type Service struct {
	repo        Repository
	generate    CodeGenerator
	clock       Clock
	maxAttempts int
}

// NewService creates an alias service. A nil clock means time.Now.
func NewService(repo Repository, generate CodeGenerator, maxAttempts int, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Service{
		repo:        repo,
		generate:    generate,
		clock:       clock,
		maxAttempts: maxAttempts,
	}
}

// Shorten validates the target, generates a code, and persists the alias
// with the policy's lifespan. A code collision is an expected, recoverable
// event: generation is retried up to the configured attempt count before
// giving up with ErrCodeExhausted.
func (s *Service) Shorten(ctx context.Context, target string, owner *uuid.UUID, policy Policy) (*Alias, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	now := s.clock().UTC()

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		a := &Alias{
			Code:      Code(s.generate()),
			TargetURL: target,
			OwnerID:   owner,
			CreatedAt: now,
			ExpiresAt: now.Add(policy.Lifespan),
		}

		err := s.repo.Save(ctx, a)
		if err == nil {
			return a, nil
		}

		if errors.Is(err, ErrCodeTaken) {
			continue
		}

		return nil, fmt.Errorf("saving alias: %w", err)
	}

	return nil, ErrCodeExhausted
}

// Resolve computes the redirect decision for a code. An absent record is
// StateUnknown, not an error; errors are reserved for storage failures.
func (s *Service) Resolve(ctx context.Context, code Code) (Resolution, error) {
	a, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resolution{State: StateUnknown}, nil
		}

		return Resolution{}, fmt.Errorf("loading alias: %w", err)
	}

	return Resolution{
		State:     StateAt(s.clock(), a.ExpiresAt),
		TargetURL: a.TargetURL,
		ExpiresAt: a.ExpiresAt,
	}, nil
}

// Expiry returns the stored expiry instant regardless of whether the alias
// is still active. Returns ErrNotFound for unknown codes.
func (s *Service) Expiry(ctx context.Context, code Code) (time.Time, error) {
	a, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, ErrNotFound
		}

		return time.Time{}, fmt.Errorf("loading alias: %w", err)
	}

	return a.ExpiresAt, nil
}

// ListByOwner returns the aliases created by one owner.
func (s *Service) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Alias, error) {
	aliases, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}

	return aliases, nil
}

// validateTarget accepts any syntactically valid absolute URL: a scheme
// and a host must both be present, but the scheme itself is not
// restricted.
func validateTarget(raw string) error {
	if raw == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
