package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the notification inbox and preferences.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a notification service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Notify stores a new notification for a user, honoring their preferences.
func (s *Service) Notify(ctx context.Context, userID string, kind Type, title, body string) (*Notification, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if kind == TypeApplicationUpdate && !prefs.ApplicationUpdates {
		return nil, nil
	}

	if kind == TypeJobMatch && !prefs.JobMatches {
		return nil, nil
	}

	n := &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	return n, nil
}

// ListByUser returns a user's notifications, newest first, filtered and
// paged by the query.
func (s *Service) ListByUser(ctx context.Context, userID string, q ListQuery) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, q)
}

// CountUnread returns how many of a user's notifications are unread,
// regardless of paging.
func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one notification as read, enforcing ownership.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if n.UserID != userID {
		return nil, ErrForbidden
	}

	if n.Read {
		return n, nil
	}

	n.Read = true

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	return n, nil
}

// MarkAllRead marks every unread notification of a user as read and returns
// how many were updated.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// GetPreferences returns the user's notification preferences, falling back
// to the defaults when none were saved.
func (s *Service) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultPreferences(), nil
		}

		return Preferences{}, err
	}

	return *prefs, nil
}

// UpdatePreferences stores the user's notification preferences.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, p Preferences) (Preferences, error) {
	if err := s.repo.SavePreferences(ctx, userID, p); err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}

	return p, nil
}
