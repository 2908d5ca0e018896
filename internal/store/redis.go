package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/link-shortener/internal/alias"
)

// RedisStore is a Redis implementation of alias.Repository. Each alias is
// one JSON document keyed by its code; owner membership is a set of codes.
// Expiry is a stored field rather than a key TTL because the expiry lookup
// must keep answering after the alias stops redirecting.
type RedisStore struct {
	client      *redis.Client
	prefix      string // "alias:" for per-code records
	ownerPrefix string // "owner:" for per-owner code sets
}

// aliasRecord is the serialized form of an alias under its code key.
type aliasRecord struct {
	TargetURL string     `json:"target_url"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// NewRedisStore creates a Redis-backed alias store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		prefix:      "alias:",
		ownerPrefix: "owner:",
	}
}

func (r *RedisStore) Save(ctx context.Context, a *alias.Alias) error {
	payload, err := json.Marshal(aliasRecord{
		TargetURL: a.TargetURL,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt.UTC(),
		ExpiresAt: a.ExpiresAt.UTC(),
	})
	if err != nil {
		return err
	}

	// SetNX writes the complete record in the same command that checks
	// uniqueness, so a concurrent reader sees either nothing or the whole
	// alias, and a losing writer leaves no partial state behind.
	created, err := r.client.SetNX(ctx, r.prefix+string(a.Code), payload, 0).Result()
	if err != nil {
		return err
	}

	if !created {
		return alias.ErrCodeTaken
	}

	if a.OwnerID != nil {
		return r.client.SAdd(ctx, r.ownerPrefix+a.OwnerID.String(), string(a.Code)).Err()
	}

	return nil
}

func (r *RedisStore) GetByCode(ctx context.Context, code alias.Code) (*alias.Alias, error) {
	raw, err := r.client.Get(ctx, r.prefix+string(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, alias.ErrNotFound
		}

		return nil, err
	}

	var rec aliasRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	return &alias.Alias{
		Code:      code,
		TargetURL: rec.TargetURL,
		OwnerID:   rec.OwnerID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (r *RedisStore) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*alias.Alias, error) {
	codes, err := r.client.SMembers(ctx, r.ownerPrefix+owner.String()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*alias.Alias, 0, len(codes))

	for _, code := range codes {
		a, err := r.GetByCode(ctx, alias.Code(code))
		if err != nil {
			if errors.Is(err, alias.ErrNotFound) {
				continue
			}

			return nil, err
		}

		out = append(out, a)
	}

	return out, nil
}
