package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "matching-workers/internal/common/errors"
)

func TestScoreCandidatePerfectMatch(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	got := svc.ScoreCandidate(context.Background(), testJob(), testApplication("app-1"))

	// All six sub-scores but cultural are 100; cultural sits at the neutral
	// baseline of 50 which contributes 5 of its 10 points.
	assert.Equal(t, 95, got.Score)
	assert.Equal(t, TierExcellent, got.Tier)
	assert.Equal(t, ScoreBreakdown{
		SkillsRequired:  35,
		SkillsPreferred: 15,
		Experience:      20,
		Qualifications:  15,
		Cultural:        5,
		Availability:    5,
	}, got.Breakdown)
	assert.Empty(t, got.RedFlags)
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, []string{"Leadership", "Inventory Management"}, got.MatchedRequired)
	assert.Empty(t, got.MissingRequired)
}

func TestScoreCandidateDeterministic(t *testing.T) {
	svc := newTestService(t, nil, nil, &fakeSignals{mentorship: 2, badges: 1})
	job := testJob()
	app := testApplication("app-1")

	first := svc.ScoreCandidate(context.Background(), job, app)
	second := svc.ScoreCandidate(context.Background(), job, app)
	assert.Equal(t, first, second)
}

func TestScoreCandidateVacuousRequirements(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	job := JobRequirements{ID: "job-open"}
	app := Application{ID: "app-1", Candidate: Candidate{UserID: "user-1", YearsExperience: 3}}

	got := svc.ScoreCandidate(context.Background(), job, app)
	assert.Equal(t, 35, got.Breakdown.SkillsRequired)
	assert.Equal(t, 15, got.Breakdown.SkillsPreferred)
	assert.Equal(t, 15, got.Breakdown.Qualifications)
}

func TestScoreCandidateTierBoundaries(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierExcellent},
		{80, TierExcellent},
		{79, TierGood},
		{65, TierGood},
		{64, TierPotential},
		{50, TierPotential},
		{49, TierDeveloping},
		{35, TierDeveloping},
		{34, TierNotReady},
		{0, TierNotReady},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.tierFor(tt.score), "score %d", tt.score)
	}
}

func TestScoreCandidateBreakdownNearComposite(t *testing.T) {
	svc := newTestService(t, nil, nil, &fakeSignals{forumPosts: 7})

	job := testJob()
	job.PreferredSkills = []string{"Rostering", "Budgeting", "Merchandising"}
	app := testApplication("app-1")
	app.Candidate.Skills = []string{"Leadership", "Rostering"}

	got := svc.ScoreCandidate(context.Background(), job, app)

	sum := got.Breakdown.SkillsRequired + got.Breakdown.SkillsPreferred +
		got.Breakdown.Experience + got.Breakdown.Qualifications +
		got.Breakdown.Cultural + got.Breakdown.Availability
	assert.InDelta(t, got.Score, sum, 3, "independently rounded parts may drift slightly")
}

func TestScoreCandidateSignalFailureDegradesGracefully(t *testing.T) {
	svc := newTestService(t, nil, nil, &fakeSignals{err: errors.New("redis down")})

	got := svc.ScoreCandidate(context.Background(), testJob(), testApplication("app-1"))
	assert.Equal(t, 5, got.Breakdown.Cultural)
	assert.Equal(t, 95, got.Score)
}

func TestAvailabilityScore(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	job := testJob()
	job.StartDate = &start

	tests := []struct {
		name      string
		available *time.Time
		want      float64
	}{
		{name: "no stated availability means immediate", available: nil, want: 100},
		{name: "available before start", available: datePtr(start.AddDate(0, 0, -10)), want: 100},
		{name: "on the start date", available: datePtr(start), want: 100},
		{name: "ten days late", available: datePtr(start.AddDate(0, 0, 10)), want: 80},
		{name: "floors at zero", available: datePtr(start.AddDate(0, 0, 90)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApplication("app-1")
			app.AvailableFrom = tt.available
			assert.InDelta(t, tt.want, svc.availabilityScore(job, app), 0.001)
		})
	}
}

func TestRecommendations(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	t.Run("small skill gap suggests training", func(t *testing.T) {
		job := testJob()
		app := testApplication("app-1")
		app.Candidate.Skills = []string{"Leadership"}

		got := svc.ScoreCandidate(context.Background(), job, app)
		require.Len(t, got.Recommendations, 1)
		assert.Contains(t, got.Recommendations[0], "Inventory Management")
	})

	t.Run("large skill gap gets no training suggestion", func(t *testing.T) {
		job := testJob()
		job.RequiredSkills = []string{"A", "B", "C", "D"}
		app := testApplication("app-1")
		app.Candidate.Skills = nil

		got := svc.ScoreCandidate(context.Background(), job, app)
		assert.Empty(t, got.Recommendations)
	})

	t.Run("flags drive relocation and salary suggestions", func(t *testing.T) {
		job := testJob()
		job.SalaryMax = 100000
		app := testApplication("app-1")
		app.Candidate.Location = "Melbourne"
		app.Candidate.ExpectedSalary = 130000

		got := svc.ScoreCandidate(context.Background(), job, app)
		require.Len(t, got.Recommendations, 2)
		assert.Contains(t, got.Recommendations[0], "relocation")
		assert.Contains(t, got.Recommendations[1], "compensation")
	})
}

func TestScoreApplication(t *testing.T) {
	job := testJob()
	app := testApplication("app-1")

	jobs := &fakeJobs{jobs: map[string]*JobRequirements{job.ID: &job}}
	apps := &fakeApps{
		byJob: map[string][]Application{},
		byID:  map[string]*Application{app.ID: &app},
	}
	svc := newTestService(t, jobs, apps, nil)

	got, err := svc.ScoreApplication(context.Background(), job.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "app-1", got.ApplicationID)
	assert.Equal(t, 95, got.Score)

	_, err = svc.ScoreApplication(context.Background(), "missing-job", app.ID)
	assert.True(t, commonerrors.IsNotFound(err))

	_, err = svc.ScoreApplication(context.Background(), job.ID, "missing-app")
	assert.True(t, commonerrors.IsNotFound(err))
}
