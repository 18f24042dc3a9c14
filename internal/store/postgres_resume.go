package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/resume"
)

// PostgresResumeStore is a PostgreSQL implementation of resume.Repository.
type PostgresResumeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresResumeStore creates a PostgreSQL-backed resume store.
func NewPostgresResumeStore(pool *pgxpool.Pool) *PostgresResumeStore {
	return &PostgresResumeStore{pool: pool}
}

func (p *PostgresResumeStore) Create(ctx context.Context, r *resume.Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, doc) VALUES ($1, $2, $3)`,
		r.ID, r.UserID, doc,
	)

	return err
}

func (p *PostgresResumeStore) GetByID(ctx context.Context, id string) (*resume.Resume, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx, `SELECT doc FROM resumes WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resume.ErrNotFound
		}

		return nil, err
	}

	return decodeResume(raw)
}

func (p *PostgresResumeStore) ListByUser(ctx context.Context, userID string) ([]*resume.Resume, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM resumes WHERE user_id = $1 ORDER BY doc->>'created_at' DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*resume.Resume, 0)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		r, err := decodeResume(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, rows.Err()
}

func (p *PostgresResumeStore) Update(ctx context.Context, r *resume.Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}

	tag, err := p.pool.Exec(ctx, `UPDATE resumes SET doc = $2 WHERE id = $1`, r.ID, doc)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}

	return nil
}

func decodeResume(raw []byte) (*resume.Resume, error) {
	var r resume.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}

	return &r, nil
}

var _ resume.Repository = (*PostgresResumeStore)(nil)
