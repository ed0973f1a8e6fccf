package comparecandidates

import (
	"context"
	"testing"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	jobs map[string]*matching.JobRequirements
}

func (f *fakeJobs) GetJob(_ context.Context, jobID string) (*matching.JobRequirements, error) {
	return f.jobs[jobID], nil
}

type fakeApps struct {
	byJob map[string][]matching.Application
}

func (f *fakeApps) ListByJob(_ context.Context, jobID string, _ bool) ([]matching.Application, error) {
	return f.byJob[jobID], nil
}

func (f *fakeApps) GetByID(context.Context, string) (*matching.Application, error) {
	return nil, nil
}

type fakeSignals struct{}

func (fakeSignals) MentorshipSessions(context.Context, string) (int, error) { return 0, nil }
func (fakeSignals) CompletedCourses(context.Context, string) (int, error)   { return 0, nil }
func (fakeSignals) ForumPosts(context.Context, string) (int, error)         { return 0, nil }
func (fakeSignals) Badges(context.Context, string) (int, error)             { return 0, nil }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	jobs := &fakeJobs{jobs: map[string]*matching.JobRequirements{
		"job-1": {
			ID:             "job-1",
			RequiredSkills: []string{"Leadership"},
			MinExperience:  2,
			MaxExperience:  8,
		},
	}}
	apps := &fakeApps{byJob: map[string][]matching.Application{
		"job-1": {
			{
				ID:     "app-strong",
				JobID:  "job-1",
				Status: "SUBMITTED",
				Candidate: matching.Candidate{
					UserID:          "user-1",
					Skills:          []string{"Leadership"},
					YearsExperience: 5,
				},
			},
			{
				ID:        "app-weak",
				JobID:     "job-1",
				Status:    "SUBMITTED",
				Candidate: matching.Candidate{UserID: "user-2"},
			},
		},
	}}
	svc := matching.NewService(matching.Config{}, jobs, apps, fakeSignals{}, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), svc, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		JobID:          "job-1",
		ApplicationIDA: "app-strong",
		ApplicationIDB: "app-weak",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Comparison)

	assert.Equal(t, matching.WinnerA, out.Comparison.Winner)
	assert.Greater(t, out.Comparison.ScoreDifference, 0)
	assert.Len(t, out.Comparison.Dimensions, 6)
}

func TestHandler_Execute_MissingInput(t *testing.T) {
	h := newTestHandler(t)

	tests := []Input{
		{},
		{JobID: "job-1"},
		{JobID: "job-1", ApplicationIDA: "app-strong"},
	}
	for _, input := range tests {
		_, err := h.Execute(context.Background(), &input)
		require.Error(t, err)
		se, ok := err.(*errors.StandardError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidationFailed, se.Code)
	}
}

func TestHandler_Execute_SelfComparison(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		JobID:          "job-1",
		ApplicationIDA: "app-strong",
		ApplicationIDB: "app-strong",
	})
	require.Error(t, err)
	se, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidationFailed, se.Code)
}

func TestHandler_Execute_UnknownApplicant(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		JobID:          "job-1",
		ApplicationIDA: "app-strong",
		ApplicationIDB: "no-such-app",
	})
	assert.True(t, errors.IsNotFound(err))
}
