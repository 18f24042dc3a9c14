package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/resume"
	"go.uber.org/zap"
)

// ReferenceGenerator produces short human-readable application references.
type ReferenceGenerator func() string

// Service implements the job application lifecycle.
type Service struct {
	repo             Repository
	jobs             job.Repository
	resumes          resume.Repository
	newReference     ReferenceGenerator
	publishSubmitted messaging.Publish[events.ApplicationSubmittedEvent]
	logger           *zap.Logger
	now              func() time.Time
}

// NewService creates an application service.
func NewService(
	repo Repository,
	jobs job.Repository,
	resumes resume.Repository,
	newReference ReferenceGenerator,
	publishSubmitted messaging.Publish[events.ApplicationSubmittedEvent],
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:             repo,
		jobs:             jobs,
		resumes:          resumes,
		newReference:     newReference,
		publishSubmitted: publishSubmitted,
		logger:           logger,
		now:              time.Now,
	}
}

// Apply submits an application for a job using one of the caller's resumes.
func (s *Service) Apply(ctx context.Context, userID, jobID, resumeID, coverLetter string) (*Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	r, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	if r.UserID != userID {
		return nil, resume.ErrForbidden
	}

	_, err = s.repo.GetByUserAndJob(ctx, userID, jobID)
	if err == nil {
		return nil, ErrDuplicate
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing application: %w", err)
	}

	now := s.now()
	a := &Application{
		ID:          uuid.NewString(),
		Reference:   s.newReference(),
		UserID:      userID,
		JobID:       jobID,
		ResumeID:    resumeID,
		CoverLetter: coverLetter,
		Status:      StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
		SubmittedAt: &now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("store application: %w", err)
	}

	event := &events.ApplicationSubmittedEvent{
		ApplicationID: a.ID,
		Reference:     a.Reference,
		UserID:        userID,
		JobID:         jobID,
		JobTitle:      j.Title,
		Company:       j.Company,
		SubmittedAt:   now,
	}
	if err := s.publishSubmitted(event); err != nil {
		s.logger.Error("failed to publish application submitted event",
			zap.String("application_id", a.ID),
			zap.Error(err),
		)
	}

	return a, nil
}

// ListByUser returns all applications a user has made.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Application, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an application, enforcing ownership.
func (s *Service) Get(ctx context.Context, id, userID string) (*Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.UserID != userID {
		return nil, ErrForbidden
	}

	return a, nil
}

// Update applies a partial update. Moving to submitted stamps SubmittedAt;
// leaving a terminal status is not allowed.
func (s *Service) Update(ctx context.Context, id, userID string, update Update) (*Application, error) {
	a, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if update.Status != nil {
		next := *update.Status
		if !next.Valid() {
			return nil, ErrInvalidTransition
		}

		if a.Status.Terminal() && next != a.Status {
			return nil, ErrInvalidTransition
		}

		if next == StatusSubmitted && a.SubmittedAt == nil {
			a.SubmittedAt = &now
		}

		a.Status = next
	}

	if update.Notes != nil {
		a.Notes = *update.Notes
	}

	if update.CoverLetter != nil {
		a.CoverLetter = *update.CoverLetter
	}

	if update.InterviewDate != nil {
		a.InterviewDate = update.InterviewDate
	}

	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	return a, nil
}

// Withdraw cancels an application. Applications in a terminal status cannot
// be withdrawn.
func (s *Service) Withdraw(ctx context.Context, id, userID string) (*Application, error) {
	a, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if a.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	a.Status = StatusWithdrawn
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("withdraw application: %w", err)
	}

	return a, nil
}
