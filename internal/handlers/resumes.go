package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/resume"
	"go.uber.org/zap"
)

// ResumeHandler handles resume upload, retrieval and AI analysis.
type ResumeHandler struct {
	resumes        *resume.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewResumeHandler creates a new resume handler.
func NewResumeHandler(resumes *resume.Service, maxUploadBytes int64, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumes:        resumes,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *ResumeHandler) Upload(ctx context.Context, req *UploadResumeRequest) (*ResumeResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	headers := req.RawBody.File["file"]
	if len(headers) == 0 {
		return nil, huma.Error400BadRequest("missing 'file' form field")
	}

	header := headers[0]
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, huma.Error400BadRequest("only PDF resumes are supported")
	}

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		return nil, huma.Error413RequestEntityTooLarge("resume file too large")
	}

	file, err := header.Open()
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable upload")
	}
	defer file.Close()

	r, err := h.resumes.Upload(ctx, userID, header.Filename, file, header.Size)
	if err != nil {
		h.logger.Error("resume upload failed",
			zap.String("user_id", userID),
			zap.String("file_name", header.Filename),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to process resume")
	}

	return &ResumeResponse{Status: http.StatusCreated, Body: r}, nil
}

func (h *ResumeHandler) ListMine(ctx context.Context, _ *ListResumesRequest) (*ListResumesResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	resumes, err := h.resumes.ListByUser(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list resumes")
	}

	resp := &ListResumesResponse{}
	resp.Body.Resumes = resumes

	return resp, nil
}

func (h *ResumeHandler) Get(ctx context.Context, req *GetResumeRequest) (*ResumeResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	r, err := h.resumes.Get(ctx, req.ID, userID)
	if err != nil {
		return nil, resumeError(err)
	}

	return &ResumeResponse{Status: http.StatusOK, Body: r}, nil
}

func (h *ResumeHandler) Enhance(ctx context.Context, req *EnhanceResumeRequest) (*EnhanceResumeResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	enhancement, err := h.resumes.Enhance(ctx, req.ID, userID)
	if err != nil {
		h.logger.Error("resume enhancement failed", zap.String("resume_id", req.ID), zap.Error(err))

		return nil, resumeError(err)
	}

	return &EnhanceResumeResponse{Body: enhancement}, nil
}

func (h *ResumeHandler) Analyze(ctx context.Context, req *AnalyzeResumeRequest) (*AnalyzeResumeResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	score, err := h.resumes.Analyze(ctx, req.ID, userID)
	if err != nil {
		h.logger.Error("resume analysis failed", zap.String("resume_id", req.ID), zap.Error(err))

		return nil, resumeError(err)
	}

	return &AnalyzeResumeResponse{Body: score}, nil
}

func resumeError(err error) error {
	switch {
	case errors.Is(err, resume.ErrNotFound):
		return huma.Error404NotFound("resume not found")
	case errors.Is(err, resume.ErrForbidden):
		return huma.Error403Forbidden("not your resume")
	}

	return huma.Error500InternalServerError("resume operation failed")
}
