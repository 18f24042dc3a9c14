package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInactive is returned when a deactivated account tries to log in.
	ErrInactive = errors.New("account is deactivated")
)

// User is a platform account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Skills       []string       `json:"skills"`
	Preferences  map[string]any `json:"preferences"`
	IsActive     bool           `json:"is_active"`
	IsVerified   bool           `json:"is_verified"`
	PasswordHash string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Update holds the fields of a partial profile update. Nil fields are left
// unchanged.
type Update struct {
	Name        *string
	Skills      []string
	Preferences map[string]any
}

// Repository defines user persistence.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail returns ErrNotFound when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
