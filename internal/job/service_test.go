package job_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/ai"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scoreByTitle fakes the model by returning a canned score per job title.
type scoreByTitle struct {
	scores map[string]float64
	errFor string
	calls  int
}

func (c *scoreByTitle) Complete(_ context.Context, req *ai.Request) (*ai.Response, error) {
	c.calls++

	prompt := req.Messages[len(req.Messages)-1].Content

	for title, score := range c.scores {
		if strings.Contains(prompt, title) {
			if title == c.errFor {
				return nil, errors.New("model unavailable")
			}

			return &ai.Response{
				Content: fmt.Sprintf(`{"match_score": %.2f, "match_reasons": ["fits %s"]}`, score, title),
			}, nil
		}
	}

	return &ai.Response{Content: `{"match_score": 0, "match_reasons": []}`}, nil
}

func seedResume(t *testing.T, repo resume.Repository, userID string) *resume.Resume {
	t.Helper()

	r := &resume.Resume{
		ID:        "resume-1",
		UserID:    userID,
		FileName:  "cv.pdf",
		Text:      "Go engineer with distributed systems experience.",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), r))

	return r
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	repo := store.NewMemoryJobStore()
	svc := job.NewService(repo, store.NewMemoryResumeStore(), &scoreByTitle{}, "test-model", zap.NewNop())

	j, err := svc.Ingest(ctx, job.Ingest{
		Title:   "Backend Engineer",
		Company: "Acme",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, j.ID)
	assert.True(t, j.IsActive)
	assert.False(t, j.PostedDate.IsZero(), "posted date defaults to now")
	assert.NotNil(t, j.Requirements)

	stored, err := repo.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", stored.Title)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	repo := store.NewMemoryJobStore()
	svc := job.NewService(repo, store.NewMemoryResumeStore(), &scoreByTitle{}, "test-model", zap.NewNop())

	_, err := svc.Ingest(ctx, job.Ingest{Title: "Go Developer", Company: "Acme", Location: "Berlin", JobType: "Full-time"})
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, job.Ingest{Title: "Data Analyst", Company: "Beta", Location: "Hamburg", JobType: "Part-time", Remote: true})
	require.NoError(t, err)

	t.Run("keyword filter", func(t *testing.T) {
		jobs, err := svc.Search(ctx, job.Search{Keyword: "go"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Go Developer", jobs[0].Title)
	})

	t.Run("remote filter", func(t *testing.T) {
		remote := true

		jobs, err := svc.Search(ctx, job.Search{Remote: &remote})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Data Analyst", jobs[0].Title)
	})

	t.Run("empty search returns all active jobs", func(t *testing.T) {
		jobs, err := svc.Search(ctx, job.Search{})
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})
}

func TestMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks matches by score", func(t *testing.T) {
		repo := store.NewMemoryJobStore()
		resumes := store.NewMemoryResumeStore()
		client := &scoreByTitle{scores: map[string]float64{
			"Go Developer": 0.9,
			"Data Analyst": 0.4,
		}}
		svc := job.NewService(repo, resumes, client, "test-model", zap.NewNop())

		seedResume(t, resumes, "user-1")

		_, err := svc.Ingest(ctx, job.Ingest{Title: "Data Analyst", Company: "Beta"})
		require.NoError(t, err)
		_, err = svc.Ingest(ctx, job.Ingest{Title: "Go Developer", Company: "Acme"})
		require.NoError(t, err)

		matches, err := svc.Match(ctx, "resume-1", "user-1", 0, 10)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		assert.Equal(t, "Go Developer", matches[0].Job.Title)
		assert.InDelta(t, 0.9, matches[0].Score, 0.001)
		assert.Equal(t, "Data Analyst", matches[1].Job.Title)
	})

	t.Run("truncates to the limit", func(t *testing.T) {
		repo := store.NewMemoryJobStore()
		resumes := store.NewMemoryResumeStore()
		client := &scoreByTitle{scores: map[string]float64{
			"Go Developer": 0.9,
			"Data Analyst": 0.4,
		}}
		svc := job.NewService(repo, resumes, client, "test-model", zap.NewNop())

		seedResume(t, resumes, "user-1")

		_, err := svc.Ingest(ctx, job.Ingest{Title: "Go Developer", Company: "Acme"})
		require.NoError(t, err)
		_, err = svc.Ingest(ctx, job.Ingest{Title: "Data Analyst", Company: "Beta"})
		require.NoError(t, err)

		matches, err := svc.Match(ctx, "resume-1", "user-1", 0, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Go Developer", matches[0].Job.Title)
	})

	t.Run("offset skips the top matches", func(t *testing.T) {
		repo := store.NewMemoryJobStore()
		resumes := store.NewMemoryResumeStore()
		client := &scoreByTitle{scores: map[string]float64{
			"Go Developer": 0.9,
			"Data Analyst": 0.4,
		}}
		svc := job.NewService(repo, resumes, client, "test-model", zap.NewNop())

		seedResume(t, resumes, "user-1")

		_, err := svc.Ingest(ctx, job.Ingest{Title: "Go Developer", Company: "Acme"})
		require.NoError(t, err)
		_, err = svc.Ingest(ctx, job.Ingest{Title: "Data Analyst", Company: "Beta"})
		require.NoError(t, err)

		matches, err := svc.Match(ctx, "resume-1", "user-1", 1, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Data Analyst", matches[0].Job.Title)

		matches, err = svc.Match(ctx, "resume-1", "user-1", 5, 10)
		require.NoError(t, err)
		assert.Empty(t, matches, "offset past the result set returns nothing")
	})

	t.Run("skips jobs the model cannot score", func(t *testing.T) {
		repo := store.NewMemoryJobStore()
		resumes := store.NewMemoryResumeStore()
		client := &scoreByTitle{
			scores: map[string]float64{
				"Go Developer": 0.9,
				"Data Analyst": 0.4,
			},
			errFor: "Data Analyst",
		}
		svc := job.NewService(repo, resumes, client, "test-model", zap.NewNop())

		seedResume(t, resumes, "user-1")

		_, err := svc.Ingest(ctx, job.Ingest{Title: "Go Developer", Company: "Acme"})
		require.NoError(t, err)
		_, err = svc.Ingest(ctx, job.Ingest{Title: "Data Analyst", Company: "Beta"})
		require.NoError(t, err)

		matches, err := svc.Match(ctx, "resume-1", "user-1", 0, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Go Developer", matches[0].Job.Title)
	})

	t.Run("rejects a resume the caller does not own", func(t *testing.T) {
		resumes := store.NewMemoryResumeStore()
		svc := job.NewService(store.NewMemoryJobStore(), resumes, &scoreByTitle{}, "test-model", zap.NewNop())

		seedResume(t, resumes, "user-1")

		_, err := svc.Match(ctx, "resume-1", "user-2", 0, 10)
		assert.ErrorIs(t, err, resume.ErrForbidden)
	})
}
