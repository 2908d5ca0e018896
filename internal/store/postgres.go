package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/link-shortener/internal/alias"
	"github.com/serroba/link-shortener/internal/identity"
)

// PostgreSQL unique_violation error code.
const pgUniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of alias.Repository and
// identity.Repository backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the schema when missing. The server bootstraps its own
// tables so a single binary is enough to run against an empty database.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS aliases (
			code VARCHAR(32) PRIMARY KEY,
			target_url TEXT NOT NULL,
			owner_id UUID NULL REFERENCES users (id),
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS aliases_owner_id_idx ON aliases (owner_id) WHERE owner_id IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (p *PostgresStore) Save(ctx context.Context, a *alias.Alias) error {
	query := `
		INSERT INTO aliases (code, target_url, owner_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		string(a.Code),
		a.TargetURL,
		nullableOwner(a.OwnerID),
		a.CreatedAt,
		a.ExpiresAt,
	)
	if isUniqueViolation(err) {
		return alias.ErrCodeTaken
	}

	return err
}

func (p *PostgresStore) GetByCode(ctx context.Context, code alias.Code) (*alias.Alias, error) {
	query := `
		SELECT code, target_url, owner_id, created_at, expires_at
		FROM aliases
		WHERE code = $1
	`

	var (
		a     alias.Alias
		owner *string
	)

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&a.Code,
		&a.TargetURL,
		&owner,
		&a.CreatedAt,
		&a.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, alias.ErrNotFound
		}

		return nil, err
	}

	if err := setOwner(&a, owner); err != nil {
		return nil, err
	}

	return &a, nil
}

func (p *PostgresStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*alias.Alias, error) {
	query := `
		SELECT code, target_url, owner_id, created_at, expires_at
		FROM aliases
		WHERE owner_id = $1
	`

	rows, err := p.pool.Query(ctx, query, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*alias.Alias

	for rows.Next() {
		var (
			a     alias.Alias
			owner *string
		)

		if err := rows.Scan(&a.Code, &a.TargetURL, &owner, &a.CreatedAt, &a.ExpiresAt); err != nil {
			return nil, err
		}

		if err := setOwner(&a, owner); err != nil {
			return nil, err
		}

		out = append(out, &a)
	}

	return out, rows.Err()
}

func (p *PostgresStore) Create(ctx context.Context, u *identity.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		u.ID.String(),
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return identity.ErrEmailTaken
	}

	return err
}

func (p *PostgresStore) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var (
		u  identity.User
		id string
	)

	err := p.pool.QueryRow(ctx, query, email).Scan(
		&id,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrNotFound
		}

		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	u.ID = parsed

	return &u, nil
}

func nullableOwner(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}

	s := id.String()

	return &s
}

func setOwner(a *alias.Alias, owner *string) error {
	if owner == nil {
		return nil
	}

	id, err := uuid.Parse(*owner)
	if err != nil {
		return err
	}

	a.OwnerID = &id

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
