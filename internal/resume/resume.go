package resume

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no resume matches the lookup.
	ErrNotFound = errors.New("resume not found")
	// ErrForbidden is returned when a caller accesses a resume they do
	// not own.
	ErrForbidden = errors.New("not authorized to access this resume")
)

// SkillAssessment is one skill extracted from a resume with scoring.
type SkillAssessment struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"` // technical, soft or domain
	Proficiency     int     `json:"proficiency"` // 1-5
	YearsExperience float64 `json:"years_experience"`
	Context         string  `json:"context"`
	RelevanceScore  float64 `json:"relevance_score"` // 0-1
}

// ATSScore is the applicant-tracking-system compatibility verdict.
type ATSScore struct {
	Score    int      `json:"score"` // 0-100
	Feedback []string `json:"feedback"`
}

// Enhancement bundles AI improvement suggestions for a resume.
type Enhancement struct {
	ContentSuggestions map[string][]string `json:"content_suggestions"`
	ATSScore           *ATSScore           `json:"ats_score"`
	SkillAssessment    []SkillAssessment   `json:"skill_assessment"`
	IndustryAlignment  map[string]any      `json:"industry_alignment,omitempty"`
	CareerNarrative    map[string]any      `json:"career_narrative,omitempty"`
}

// Resume is a stored, parsed resume document.
type Resume struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	FileName        string            `json:"file_name"`
	Text            string            `json:"text"`
	StructuredData  map[string]any    `json:"structured_data"`
	SkillAssessment []SkillAssessment `json:"skill_assessment,omitempty"`
	ATSScore        *ATSScore         `json:"ats_score,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Repository defines resume persistence.
type Repository interface {
	Create(ctx context.Context, r *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListByUser(ctx context.Context, userID string) ([]*Resume, error)
	Update(ctx context.Context, r *Resume) error
}
