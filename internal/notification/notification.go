package notification

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no notification matches the lookup.
	ErrNotFound = errors.New("notification not found")
	// ErrForbidden is returned when a caller touches a notification that
	// is not theirs.
	ErrForbidden = errors.New("not authorized to access this notification")
)

// Type categorizes a notification.
type Type string

const (
	TypeApplicationUpdate Type = "application_update"
	TypeResumeParsed      Type = "resume_parsed"
	TypeJobMatch          Type = "job_match"
)

// Notification is a message delivered to a user's inbox.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences controls which notifications a user receives.
type Preferences struct {
	EmailEnabled       bool `json:"email_enabled"`
	ApplicationUpdates bool `json:"application_updates"`
	JobMatches         bool `json:"job_matches"`
}

// DefaultPreferences returns the preferences applied before a user has
// saved any.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailEnabled:       true,
		ApplicationUpdates: true,
		JobMatches:         true,
	}
}

// ListQuery filters and pages a user's inbox. A Limit of zero or less
// returns everything.
type ListQuery struct {
	UnreadOnly bool
	Offset     int
	Limit      int
}

// Repository defines notification persistence.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByUser(ctx context.Context, userID string, q ListQuery) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID string) (int, error)

	// GetPreferences returns ErrNotFound when the user never saved any.
	GetPreferences(ctx context.Context, userID string) (*Preferences, error)
	SavePreferences(ctx context.Context, userID string, p Preferences) error
}
