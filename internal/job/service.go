package job

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jobflow/jobflow/internal/ai"
	"github.com/jobflow/jobflow/internal/resume"
	"go.uber.org/zap"
)

const matchPrompt = `Calculate a job match score based on the resume and the
job posting. Respond with a JSON object
{"match_score": <float 0-1>, "match_reasons": ["..."]}.`

// DefaultMatchLimit caps how many matches are returned when the caller does
// not ask for a specific number.
const DefaultMatchLimit = 10

// Ingest holds the fields of a job posting to store.
type Ingest struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []string
	SalaryRange  string
	JobType      string
	Remote       bool
	URL          string
	Source       string
	PostedDate   time.Time
}

// Service implements job storage, search and resume matching.
type Service struct {
	repo    Repository
	resumes resume.Repository
	client  ai.Client
	model   string
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a job service.
func NewService(repo Repository, resumes resume.Repository, client ai.Client, model string, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		resumes: resumes,
		client:  client,
		model:   model,
		logger:  logger,
		now:     time.Now,
	}
}

// Ingest stores a job posting.
func (s *Service) Ingest(ctx context.Context, in Ingest) (*Job, error) {
	now := s.now()

	posted := in.PostedDate
	if posted.IsZero() {
		posted = now
	}

	if in.Requirements == nil {
		in.Requirements = []string{}
	}

	j := &Job{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Company:      in.Company,
		Location:     in.Location,
		Description:  in.Description,
		Requirements: in.Requirements,
		SalaryRange:  in.SalaryRange,
		JobType:      in.JobType,
		Remote:       in.Remote,
		URL:          in.URL,
		Source:       in.Source,
		PostedDate:   posted,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("store job: %w", err)
	}

	return j, nil
}

// Search returns active jobs matching the filters.
func (s *Service) Search(ctx context.Context, params Search) ([]*Job, error) {
	return s.repo.Search(ctx, params)
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Match scores every active job against a resume and returns the top
// matches sorted by score, paged by offset and limit. The resume must
// belong to the caller.
func (s *Service) Match(ctx context.Context, resumeID, userID string, offset, limit int) ([]*Match, error) {
	r, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	if r.UserID != userID {
		return nil, resume.ErrForbidden
	}

	jobs, err := s.repo.Search(ctx, Search{})
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}

	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	matches := make([]*Match, 0, len(jobs))

	for _, j := range jobs {
		match, err := s.scoreMatch(ctx, r, j)
		if err != nil {
			// One unscorable job should not sink the whole match run.
			s.logger.Warn("failed to score job match",
				zap.String("job_id", j.ID),
				zap.String("resume_id", r.ID),
				zap.Error(err),
			)

			continue
		}

		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].Score > matches[k].Score
	})

	if offset > 0 {
		if offset >= len(matches) {
			return []*Match{}, nil
		}

		matches = matches[offset:]
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

func (s *Service) scoreMatch(ctx context.Context, r *resume.Resume, j *Job) (*Match, error) {
	jobDoc, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}

	resp, err := s.client.Complete(ctx, &ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: matchPrompt},
			{Role: "user", Content: fmt.Sprintf("Resume: %s\nJob: %s", r.Text, jobDoc)},
		},
		Temperature:    ai.Temp(0.2),
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var scored struct {
		Score   float64  `json:"match_score"`
		Reasons []string `json:"match_reasons"`
	}
	if err := ai.Decode(resp, &scored); err != nil {
		return nil, err
	}

	return &Match{Job: j, Score: scored.Score, Reasons: scored.Reasons}, nil
}
