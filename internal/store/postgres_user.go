package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/user"
)

// userDoc is the stored form of a user. The password hash is excluded from
// the API serialization of user.User, so persistence carries it explicitly.
type userDoc struct {
	*user.User
	PasswordHash string `json:"password_hash"`
}

// PostgresUserStore is a PostgreSQL implementation of user.Repository.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgreSQL-backed user store.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (p *PostgresUserStore) Create(ctx context.Context, u *user.User) error {
	doc, err := json.Marshal(userDoc{User: u, PasswordHash: u.PasswordHash})
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO users (id, email, doc) VALUES ($1, $2, $3)`,
		u.ID, u.Email, doc,
	)
	if err != nil && isUniqueViolation(err) {
		return user.ErrEmailTaken
	}

	return err
}

func (p *PostgresUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return p.getBy(ctx, `SELECT doc FROM users WHERE id = $1`, id)
}

func (p *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return p.getBy(ctx, `SELECT doc FROM users WHERE email = $1`, email)
}

func (p *PostgresUserStore) Update(ctx context.Context, u *user.User) error {
	doc, err := json.Marshal(userDoc{User: u, PasswordHash: u.PasswordHash})
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET email = $2, doc = $3 WHERE id = $1`,
		u.ID, u.Email, doc,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (p *PostgresUserStore) getBy(ctx context.Context, query, arg string) (*user.User, error) {
	var raw []byte

	if err := p.pool.QueryRow(ctx, query, arg).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, err
	}

	stored := userDoc{User: &user.User{}}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	stored.User.PasswordHash = stored.PasswordHash

	return stored.User, nil
}

var _ user.Repository = (*PostgresUserStore)(nil)
