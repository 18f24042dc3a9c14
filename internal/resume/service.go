package resume

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jobflow/jobflow/internal/ai"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/pdf"
	"go.uber.org/zap"
)

// Service implements resume ingestion and AI-driven analysis.
type Service struct {
	repo          Repository
	extractor     pdf.Extractor
	client        ai.Client
	model         string
	publishParsed messaging.Publish[events.ResumeParsedEvent]
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates a resume service.
func NewService(
	repo Repository,
	extractor pdf.Extractor,
	client ai.Client,
	model string,
	publishParsed messaging.Publish[events.ResumeParsedEvent],
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:          repo,
		extractor:     extractor,
		client:        client,
		model:         model,
		publishParsed: publishParsed,
		logger:        logger,
		now:           time.Now,
	}
}

// Upload parses a resume file, extracts structured data with the language
// model and stores the result.
func (s *Service) Upload(ctx context.Context, userID, fileName string, file io.ReaderAt, size int64) (*Resume, error) {
	text, err := s.extractor.Extract(file, size)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	structured, err := s.extractStructuredData(ctx, text)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r := &Resume{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		Text:           text,
		StructuredData: structured,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	event := &events.ResumeParsedEvent{
		ResumeID: r.ID,
		UserID:   userID,
		FileName: fileName,
		ParsedAt: now,
	}
	if err := s.publishParsed(event); err != nil {
		s.logger.Error("failed to publish resume parsed event",
			zap.String("resume_id", r.ID),
			zap.Error(err),
		)
	}

	return r, nil
}

// Get returns a resume, enforcing ownership.
func (s *Service) Get(ctx context.Context, id, userID string) (*Resume, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.UserID != userID {
		return nil, ErrForbidden
	}

	return r, nil
}

// ListByUser returns all resumes belonging to a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Resume, error) {
	return s.repo.ListByUser(ctx, userID)
}

// AssessSkills extracts and scores the skills on a resume.
func (s *Service) AssessSkills(ctx context.Context, id, userID string) ([]SkillAssessment, error) {
	r, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return s.assessSkills(ctx, r.Text)
}

// Analyze scores a resume's ATS compatibility and persists the score.
func (s *Service) Analyze(ctx context.Context, id, userID string) (*ATSScore, error) {
	r, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	score, err := s.scoreATS(ctx, r.Text)
	if err != nil {
		return nil, err
	}

	r.ATSScore = score
	r.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("store ats score: %w", err)
	}

	return score, nil
}

// Enhance produces improvement suggestions, an ATS score and a skill
// assessment, and persists the score and assessment on the resume.
func (s *Service) Enhance(ctx context.Context, id, userID string) (*Enhancement, error) {
	r, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Complete(ctx, &ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: enhancementPrompt},
			{Role: "user", Content: r.Text},
		},
		Temperature:    ai.Temp(0.7),
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("enhance resume: %w", err)
	}

	var enhancement Enhancement
	if err := ai.Decode(resp, &enhancement); err != nil {
		return nil, fmt.Errorf("enhance resume: %w", err)
	}

	score, err := s.scoreATS(ctx, r.Text)
	if err != nil {
		return nil, err
	}

	skills, err := s.AssessSkills(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	enhancement.ATSScore = score
	enhancement.SkillAssessment = skills

	r.ATSScore = score
	r.SkillAssessment = skills
	r.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("store enhancement: %w", err)
	}

	return &enhancement, nil
}

func (s *Service) extractStructuredData(ctx context.Context, text string) (map[string]any, error) {
	resp, err := s.client.Complete(ctx, &ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: "Parse this resume into structured sections:\n" + text},
		},
		Temperature:    ai.Temp(0.3),
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("extract resume data: %w", err)
	}

	var structured map[string]any
	if err := ai.Decode(resp, &structured); err != nil {
		return nil, fmt.Errorf("extract resume data: %w", err)
	}

	return structured, nil
}

func (s *Service) assessSkills(ctx context.Context, text string) ([]SkillAssessment, error) {
	resp, err := s.client.Complete(ctx, &ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: skillExtractionPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    ai.Temp(0.3),
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("assess skills: %w", err)
	}

	var assessed struct {
		Skills []SkillAssessment `json:"skills"`
	}
	if err := ai.Decode(resp, &assessed); err != nil {
		return nil, fmt.Errorf("assess skills: %w", err)
	}

	return assessed.Skills, nil
}

func (s *Service) scoreATS(ctx context.Context, text string) (*ATSScore, error) {
	resp, err := s.client.Complete(ctx, &ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: atsPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    ai.Temp(0.3),
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("score ats: %w", err)
	}

	var score ATSScore
	if err := ai.Decode(resp, &score); err != nil {
		return nil, fmt.Errorf("score ats: %w", err)
	}

	return &score, nil
}
