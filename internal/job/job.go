package job

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no job matches the lookup.
var ErrNotFound = errors.New("job not found")

// Job is a stored job posting.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	SalaryRange  string    `json:"salary_range,omitempty"`
	JobType      string    `json:"job_type"` // Full-time, Part-time, Contract, ...
	Remote       bool      `json:"remote"`
	URL          string    `json:"url,omitempty"`
	Source       string    `json:"source"` // LinkedIn, Indeed, ...
	PostedDate   time.Time `json:"posted_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsActive     bool      `json:"is_active"`
}

// Search holds job search filters and paging. Zero values mean "any"; a
// Limit of zero or less returns everything. Salary filters match jobs whose
// advertised range overlaps the requested bounds; jobs without a parseable
// salary are excluded when either bound is set.
type Search struct {
	Keyword   string
	Location  string
	JobType   string
	Remote    *bool
	MinSalary *int
	MaxSalary *int
	Offset    int
	Limit     int
}

// Match pairs a job with a resume-fit score.
type Match struct {
	Job     *Job     `json:"job"`
	Score   float64  `json:"match_score"` // 0-1
	Reasons []string `json:"match_reasons"`
}

// Repository defines job persistence.
type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)

	// Search returns active jobs matching the filters; an empty Search
	// returns all active jobs.
	Search(ctx context.Context, params Search) ([]*Job, error)
}
