package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/resume"
	"go.uber.org/zap"
)

// JobHandler handles job ingestion, search and resume matching.
type JobHandler struct {
	jobs   *job.Service
	logger *zap.Logger
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs *job.Service, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

func (h *JobHandler) Ingest(ctx context.Context, req *IngestJobRequest) (*JobResponse, error) {
	j, err := h.jobs.Ingest(ctx, job.Ingest{
		Title:        req.Body.Title,
		Company:      req.Body.Company,
		Location:     req.Body.Location,
		Description:  req.Body.Description,
		Requirements: req.Body.Requirements,
		SalaryRange:  req.Body.SalaryRange,
		JobType:      req.Body.JobType,
		Remote:       req.Body.Remote,
		URL:          req.Body.URL,
		Source:       req.Body.Source,
		PostedDate:   req.Body.PostedDate,
	})
	if err != nil {
		h.logger.Error("job ingest failed", zap.String("title", req.Body.Title), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to store job")
	}

	return &JobResponse{Status: http.StatusCreated, Body: j}, nil
}

func (h *JobHandler) Search(ctx context.Context, req *SearchJobsRequest) (*SearchJobsResponse, error) {
	jobs, err := h.jobs.Search(ctx, job.Search{
		Keyword:   req.Keyword,
		Location:  req.Location,
		JobType:   req.JobType,
		Remote:    req.Remote,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
		Offset:    req.Offset,
		Limit:     req.Limit,
	})
	if err != nil {
		h.logger.Error("job search failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to search jobs")
	}

	resp := &SearchJobsResponse{}
	resp.Body.Jobs = jobs
	resp.Body.Total = len(jobs)

	return resp, nil
}

func (h *JobHandler) Get(ctx context.Context, req *GetJobRequest) (*JobResponse, error) {
	j, err := h.jobs.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, huma.Error404NotFound("job not found")
		}

		return nil, huma.Error500InternalServerError("failed to load job")
	}

	return &JobResponse{Status: http.StatusOK, Body: j}, nil
}

func (h *JobHandler) Match(ctx context.Context, req *MatchJobsRequest) (*MatchJobsResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	matches, err := h.jobs.Match(ctx, req.ResumeID, userID, req.Offset, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrNotFound):
			return nil, huma.Error404NotFound("resume not found")
		case errors.Is(err, resume.ErrForbidden):
			return nil, huma.Error403Forbidden("not your resume")
		}

		h.logger.Error("job matching failed", zap.String("resume_id", req.ResumeID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to match jobs")
	}

	resp := &MatchJobsResponse{}
	resp.Body.Matches = matches

	return resp, nil
}
