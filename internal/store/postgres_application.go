package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/application"
)

// PostgresApplicationStore is a PostgreSQL implementation of application.Repository.
type PostgresApplicationStore struct {
	pool *pgxpool.Pool
}

// NewPostgresApplicationStore creates a PostgreSQL-backed application store.
func NewPostgresApplicationStore(pool *pgxpool.Pool) *PostgresApplicationStore {
	return &PostgresApplicationStore{pool: pool}
}

func (p *PostgresApplicationStore) Create(ctx context.Context, app *application.Application) error {
	doc, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO applications (id, user_id, job_id, doc) VALUES ($1, $2, $3, $4)`,
		app.ID, app.UserID, app.JobID, doc,
	)
	if err != nil && isUniqueViolation(err) {
		return application.ErrDuplicate
	}

	return err
}

func (p *PostgresApplicationStore) GetByID(ctx context.Context, id string) (*application.Application, error) {
	return p.getBy(ctx, `SELECT doc FROM applications WHERE id = $1`, id)
}

func (p *PostgresApplicationStore) GetByUserAndJob(ctx context.Context, userID, jobID string) (*application.Application, error) {
	return p.getBy(ctx, `SELECT doc FROM applications WHERE user_id = $1 AND job_id = $2`, userID, jobID)
}

func (p *PostgresApplicationStore) ListByUser(ctx context.Context, userID string) ([]*application.Application, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM applications WHERE user_id = $1 ORDER BY doc->>'created_at' DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*application.Application, 0)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		app, err := decodeApplication(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, app)
	}

	return out, rows.Err()
}

func (p *PostgresApplicationStore) Update(ctx context.Context, app *application.Application) error {
	doc, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}

	tag, err := p.pool.Exec(ctx, `UPDATE applications SET doc = $2 WHERE id = $1`, app.ID, doc)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}

	return nil
}

func (p *PostgresApplicationStore) getBy(ctx context.Context, query string, args ...any) (*application.Application, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx, query, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrNotFound
		}

		return nil, err
	}

	return decodeApplication(raw)
}

func decodeApplication(raw []byte) (*application.Application, error) {
	var app application.Application
	if err := json.Unmarshal(raw, &app); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}

	return &app, nil
}

var _ application.Repository = (*PostgresApplicationStore)(nil)
