package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc       *application.Service
	jobs      *store.MemoryJobStore
	resumes   *store.MemoryResumeStore
	published []*events.ApplicationSubmittedEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		jobs:    store.NewMemoryJobStore(),
		resumes: store.NewMemoryResumeStore(),
	}

	refs := 0
	newReference := func() string {
		refs++

		return fmt.Sprintf("REF%07d", refs)
	}

	publish := func(event *events.ApplicationSubmittedEvent) error {
		f.published = append(f.published, event)

		return nil
	}

	f.svc = application.NewService(
		store.NewMemoryApplicationStore(),
		f.jobs,
		f.resumes,
		newReference,
		messaging.Publish[events.ApplicationSubmittedEvent](publish),
		zap.NewNop(),
	)

	ctx := context.Background()

	require.NoError(t, f.jobs.Create(ctx, &job.Job{
		ID: "job-1", Title: "Go Developer", Company: "Acme", IsActive: true,
		PostedDate: time.Now(), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, f.resumes.Create(ctx, &resume.Resume{
		ID: "resume-1", UserID: "user-1", FileName: "cv.pdf",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	return f
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("submits and announces the application", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "Dear Acme")
		require.NoError(t, err)

		assert.Equal(t, application.StatusSubmitted, a.Status)
		assert.NotEmpty(t, a.Reference)
		require.NotNil(t, a.SubmittedAt)

		require.Len(t, f.published, 1)
		assert.Equal(t, a.ID, f.published[0].ApplicationID)
		assert.Equal(t, "Go Developer", f.published[0].JobTitle)
		assert.Equal(t, "Acme", f.published[0].Company)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Apply(ctx, "user-1", "missing", "resume-1", "")
		assert.ErrorIs(t, err, job.ErrNotFound)
	})

	t.Run("someone else's resume", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Apply(ctx, "user-2", "job-1", "resume-1", "")
		assert.ErrorIs(t, err, resume.ErrForbidden)
	})

	t.Run("applying twice for the same job", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		_, err = f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		assert.ErrorIs(t, err, application.ErrDuplicate)
	})
}

func TestApplicationUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("moves through the pipeline", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		status := application.StatusInterviewScheduled
		when := time.Now().Add(48 * time.Hour)

		updated, err := f.svc.Update(ctx, a.ID, "user-1", application.Update{
			Status:        &status,
			InterviewDate: &when,
		})
		require.NoError(t, err)

		assert.Equal(t, application.StatusInterviewScheduled, updated.Status)
		require.NotNil(t, updated.InterviewDate)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		bogus := application.Status("ghosted")

		_, err = f.svc.Update(ctx, a.ID, "user-1", application.Update{Status: &bogus})
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})

	t.Run("closed applications stay closed", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		rejected := application.StatusRejected

		_, err = f.svc.Update(ctx, a.ID, "user-1", application.Update{Status: &rejected})
		require.NoError(t, err)

		reopened := application.StatusInterviewing

		_, err = f.svc.Update(ctx, a.ID, "user-1", application.Update{Status: &reopened})
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})

	t.Run("other users cannot touch it", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		notes := "mine now"

		_, err = f.svc.Update(ctx, a.ID, "user-2", application.Update{Notes: &notes})
		assert.ErrorIs(t, err, application.ErrForbidden)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("withdraws an open application", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		withdrawn, err := f.svc.Withdraw(ctx, a.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusWithdrawn, withdrawn.Status)
	})

	t.Run("cannot withdraw twice", func(t *testing.T) {
		f := newFixture(t)

		a, err := f.svc.Apply(ctx, "user-1", "job-1", "resume-1", "")
		require.NoError(t, err)

		_, err = f.svc.Withdraw(ctx, a.ID, "user-1")
		require.NoError(t, err)

		_, err = f.svc.Withdraw(ctx, a.ID, "user-1")
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})
}
