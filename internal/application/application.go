package application

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no application matches the lookup.
	ErrNotFound = errors.New("application not found")
	// ErrForbidden is returned when a caller accesses an application they
	// do not own.
	ErrForbidden = errors.New("not authorized to access this application")
	// ErrDuplicate is returned when a user applies twice for the same job.
	ErrDuplicate = errors.New("application for this job already exists")
	// ErrInvalidTransition is returned for disallowed status changes.
	ErrInvalidTransition = errors.New("invalid application status transition")
)

// Status tracks an application through its lifecycle.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewing       Status = "interviewing"
	StatusOfferReceived      Status = "offer_received"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusInterviewScheduled,
		StatusInterviewing, StatusOfferReceived, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}

	return false
}

// Terminal reports whether an application in this status is closed.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}

	return false
}

// Application is a user's application for a job.
type Application struct {
	ID            string     `json:"id"`
	Reference     string     `json:"reference"`
	UserID        string     `json:"user_id"`
	JobID         string     `json:"job_id"`
	ResumeID      string     `json:"resume_id"`
	CoverLetter   string     `json:"cover_letter,omitempty"`
	Status        Status     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	InterviewDate *time.Time `json:"interview_date,omitempty"`
}

// Update holds the fields of a partial application update. Nil fields are
// left unchanged.
type Update struct {
	Status        *Status
	Notes         *string
	CoverLetter   *string
	InterviewDate *time.Time
}

// Repository defines application persistence.
type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByUser(ctx context.Context, userID string) ([]*Application, error)

	// GetByUserAndJob returns ErrNotFound when the user has not applied
	// for the job.
	GetByUserAndJob(ctx context.Context, userID, jobID string) (*Application, error)
	Update(ctx context.Context, a *Application) error
}
