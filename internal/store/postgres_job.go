package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/job"
)

// PostgresJobStore is a PostgreSQL implementation of job.Repository.
type PostgresJobStore struct {
	pool *pgxpool.Pool
}

// NewPostgresJobStore creates a PostgreSQL-backed job store.
func NewPostgresJobStore(pool *pgxpool.Pool) *PostgresJobStore {
	return &PostgresJobStore{pool: pool}
}

func (p *PostgresJobStore) Create(ctx context.Context, j *job.Job) error {
	doc, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	// Salary bounds are extracted into filter columns so searches can
	// range over them without parsing the advertised string per row.
	var salaryMin, salaryMax any
	if low, high, ok := job.SalaryBounds(j.SalaryRange); ok {
		salaryMin, salaryMax = low, high
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO jobs (id, is_active, salary_min, salary_max, doc) VALUES ($1, $2, $3, $4, $5)`,
		j.ID, j.IsActive, salaryMin, salaryMax, doc,
	)

	return err
}

func (p *PostgresJobStore) GetByID(ctx context.Context, id string) (*job.Job, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx, `SELECT doc FROM jobs WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrNotFound
		}

		return nil, err
	}

	return decodeJob(raw)
}

func (p *PostgresJobStore) Search(ctx context.Context, params job.Search) ([]*job.Job, error) {
	query := `
		SELECT doc FROM jobs
		WHERE is_active
		  AND ($1 = '' OR doc->>'title' ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR doc->>'location' = $2)
		  AND ($3 = '' OR doc->>'job_type' = $3)
		  AND ($4::boolean IS NULL OR (doc->>'remote')::boolean = $4)
		  AND ($5::bigint IS NULL OR salary_max >= $5)
		  AND ($6::bigint IS NULL OR salary_min <= $6)
		ORDER BY doc->>'posted_date' DESC
		LIMIT $7 OFFSET $8
	`

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	// LIMIT NULL means no limit.
	var limit any
	if params.Limit > 0 {
		limit = params.Limit
	}

	rows, err := p.pool.Query(ctx, query,
		params.Keyword, params.Location, params.JobType, params.Remote,
		params.MinSalary, params.MaxSalary, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*job.Job, 0)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		j, err := decodeJob(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, j)
	}

	return out, rows.Err()
}

func decodeJob(raw []byte) (*job.Job, error) {
	var j job.Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}

	return &j, nil
}

var _ job.Repository = (*PostgresJobStore)(nil)
