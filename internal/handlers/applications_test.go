package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/handlers"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

func newApplicationHandler(t *testing.T) *handlers.ApplicationHandler {
	t.Helper()

	ctx := context.Background()

	jobs := store.NewMemoryJobStore()
	resumes := store.NewMemoryResumeStore()

	require.NoError(t, jobs.Create(ctx, &job.Job{
		ID: "job-1", Title: "Go Developer", Company: "Acme", IsActive: true,
		PostedDate: time.Now(), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, resumes.Create(ctx, &resume.Resume{
		ID: "resume-1", UserID: "user-1", FileName: "cv.pdf",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	refs := 0
	svc := application.NewService(
		store.NewMemoryApplicationStore(),
		jobs,
		resumes,
		func() string { refs++; return "REF" + string(rune('A'+refs)) },
		noopPublish[events.ApplicationSubmittedEvent](),
		zap.NewNop(),
	)

	return handlers.NewApplicationHandler(svc, zap.NewNop())
}

func applyAsUser1(t *testing.T, handler *handlers.ApplicationHandler) *application.Application {
	t.Helper()

	ctx := auth.ContextWithUserID(context.Background(), "user-1")

	req := &handlers.ApplyRequest{JobID: "job-1"}
	req.Body.ResumeID = "resume-1"

	resp, err := handler.Apply(ctx, req)
	require.NoError(t, err)

	return resp.Body
}

func TestApplyHandler(t *testing.T) {
	t.Run("submits with 201", func(t *testing.T) {
		handler := newApplicationHandler(t)

		a := applyAsUser1(t, handler)
		assert.Equal(t, application.StatusSubmitted, a.Status)
		assert.NotEmpty(t, a.Reference)
	})

	t.Run("unknown job maps to 404", func(t *testing.T) {
		handler := newApplicationHandler(t)
		ctx := auth.ContextWithUserID(context.Background(), "user-1")

		req := &handlers.ApplyRequest{JobID: "missing"}
		req.Body.ResumeID = "resume-1"

		_, err := handler.Apply(ctx, req)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("foreign resume maps to 403", func(t *testing.T) {
		handler := newApplicationHandler(t)
		ctx := auth.ContextWithUserID(context.Background(), "user-2")

		req := &handlers.ApplyRequest{JobID: "job-1"}
		req.Body.ResumeID = "resume-1"

		_, err := handler.Apply(ctx, req)
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("second application maps to 409", func(t *testing.T) {
		handler := newApplicationHandler(t)
		applyAsUser1(t, handler)

		ctx := auth.ContextWithUserID(context.Background(), "user-1")

		req := &handlers.ApplyRequest{JobID: "job-1"}
		req.Body.ResumeID = "resume-1"

		_, err := handler.Apply(ctx, req)
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
	})
}

func TestApplicationLifecycleHandlers(t *testing.T) {
	t.Run("list shows own applications only", func(t *testing.T) {
		handler := newApplicationHandler(t)
		applyAsUser1(t, handler)

		ctx := auth.ContextWithUserID(context.Background(), "user-1")

		resp, err := handler.ListMine(ctx, &handlers.ListApplicationsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Body.Applications, 1)

		other := auth.ContextWithUserID(context.Background(), "user-2")

		resp, err = handler.ListMine(other, &handlers.ListApplicationsRequest{})
		require.NoError(t, err)
		assert.Empty(t, resp.Body.Applications)
	})

	t.Run("update on a closed application maps to 422", func(t *testing.T) {
		handler := newApplicationHandler(t)
		a := applyAsUser1(t, handler)

		ctx := auth.ContextWithUserID(context.Background(), "user-1")

		_, err := handler.Withdraw(ctx, &handlers.WithdrawApplicationRequest{ID: a.ID})
		require.NoError(t, err)

		status := string(application.StatusInterviewing)

		req := &handlers.UpdateApplicationRequest{ID: a.ID}
		req.Body.Status = &status

		_, err = handler.Update(ctx, req)
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("foreign application maps to 403", func(t *testing.T) {
		handler := newApplicationHandler(t)
		a := applyAsUser1(t, handler)

		ctx := auth.ContextWithUserID(context.Background(), "user-2")

		_, err := handler.Get(ctx, &handlers.GetApplicationRequest{ID: a.ID})
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})
}
