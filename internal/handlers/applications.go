package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/resume"
	"go.uber.org/zap"
)

// ApplicationHandler handles job application lifecycle operations.
type ApplicationHandler struct {
	applications *application.Service
	logger       *zap.Logger
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applications *application.Service, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, logger: logger}
}

func (h *ApplicationHandler) Apply(ctx context.Context, req *ApplyRequest) (*ApplicationResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	app, err := h.applications.Apply(ctx, userID, req.JobID, req.Body.ResumeID, req.Body.CoverLetter)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			return nil, huma.Error404NotFound("job not found")
		case errors.Is(err, resume.ErrNotFound):
			return nil, huma.Error404NotFound("resume not found")
		case errors.Is(err, resume.ErrForbidden):
			return nil, huma.Error403Forbidden("not your resume")
		case errors.Is(err, application.ErrDuplicate):
			return nil, huma.Error409Conflict("already applied for this job")
		}

		h.logger.Error("application failed",
			zap.String("user_id", userID),
			zap.String("job_id", req.JobID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to submit application")
	}

	return &ApplicationResponse{Status: http.StatusCreated, Body: app}, nil
}

func (h *ApplicationHandler) ListMine(ctx context.Context, _ *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	apps, err := h.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list applications")
	}

	resp := &ListApplicationsResponse{}
	resp.Body.Applications = apps

	return resp, nil
}

func (h *ApplicationHandler) Get(ctx context.Context, req *GetApplicationRequest) (*ApplicationResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	app, err := h.applications.Get(ctx, req.ID, userID)
	if err != nil {
		return nil, applicationError(err)
	}

	return &ApplicationResponse{Status: http.StatusOK, Body: app}, nil
}

func (h *ApplicationHandler) Update(ctx context.Context, req *UpdateApplicationRequest) (*ApplicationResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	update := application.Update{
		Notes:         req.Body.Notes,
		CoverLetter:   req.Body.CoverLetter,
		InterviewDate: req.Body.InterviewDate,
	}

	if req.Body.Status != nil {
		status := application.Status(*req.Body.Status)
		update.Status = &status
	}

	app, err := h.applications.Update(ctx, req.ID, userID, update)
	if err != nil {
		if errors.Is(err, application.ErrInvalidTransition) {
			return nil, huma.Error422UnprocessableEntity("application is closed")
		}

		return nil, applicationError(err)
	}

	return &ApplicationResponse{Status: http.StatusOK, Body: app}, nil
}

func (h *ApplicationHandler) Withdraw(ctx context.Context, req *WithdrawApplicationRequest) (*ApplicationResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	app, err := h.applications.Withdraw(ctx, req.ID, userID)
	if err != nil {
		if errors.Is(err, application.ErrInvalidTransition) {
			return nil, huma.Error422UnprocessableEntity("application is already closed")
		}

		return nil, applicationError(err)
	}

	return &ApplicationResponse{Status: http.StatusOK, Body: app}, nil
}

func applicationError(err error) error {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return huma.Error404NotFound("application not found")
	case errors.Is(err, application.ErrForbidden):
		return huma.Error403Forbidden("not your application")
	}

	return huma.Error500InternalServerError("application operation failed")
}
