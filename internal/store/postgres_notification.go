package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/notification"
)

// PostgresNotificationStore is a PostgreSQL implementation of notification.Repository.
type PostgresNotificationStore struct {
	pool *pgxpool.Pool
}

// NewPostgresNotificationStore creates a PostgreSQL-backed notification store.
func NewPostgresNotificationStore(pool *pgxpool.Pool) *PostgresNotificationStore {
	return &PostgresNotificationStore{pool: pool}
}

func (p *PostgresNotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	doc, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, read, doc) VALUES ($1, $2, $3, $4)`,
		n.ID, n.UserID, n.Read, doc,
	)

	return err
}

func (p *PostgresNotificationStore) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx, `SELECT doc FROM notifications WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotFound
		}

		return nil, err
	}

	return decodeNotification(raw)
}

func (p *PostgresNotificationStore) ListByUser(ctx context.Context, userID string, q notification.ListQuery) ([]*notification.Notification, error) {
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	// LIMIT NULL means no limit.
	var limit any
	if q.Limit > 0 {
		limit = q.Limit
	}

	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM notifications
		 WHERE user_id = $1 AND ($2::boolean IS FALSE OR NOT read)
		 ORDER BY doc->>'created_at' DESC
		 LIMIT $3 OFFSET $4`,
		userID, q.UnreadOnly, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*notification.Notification, 0)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		n, err := decodeNotification(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, rows.Err()
}

func (p *PostgresNotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int

	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`,
		userID,
	).Scan(&count)

	return count, err
}

func (p *PostgresNotificationStore) Update(ctx context.Context, n *notification.Notification) error {
	doc, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE notifications SET read = $2, doc = $3 WHERE id = $1`,
		n.ID, n.Read, doc,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (p *PostgresNotificationStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`UPDATE notifications
		 SET read = TRUE, doc = jsonb_set(doc, '{read}', 'true')
		 WHERE user_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func (p *PostgresNotificationStore) GetPreferences(ctx context.Context, userID string) (*notification.Preferences, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM notification_preferences WHERE user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotFound
		}

		return nil, err
	}

	var prefs notification.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}

	return &prefs, nil
}

func (p *PostgresNotificationStore) SavePreferences(ctx context.Context, userID string, prefs notification.Preferences) error {
	doc, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO notification_preferences (user_id, doc) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc`,
		userID, doc,
	)

	return err
}

func decodeNotification(raw []byte) (*notification.Notification, error) {
	var n notification.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}

	return &n, nil
}

var _ notification.Repository = (*PostgresNotificationStore)(nil)
