package matching

import (
	"context"
	"testing"
	"time"

	"matching-workers/internal/common/logger"
)

type fakeJobs struct {
	jobs map[string]*JobRequirements
}

func (f *fakeJobs) GetJob(_ context.Context, jobID string) (*JobRequirements, error) {
	return f.jobs[jobID], nil
}

type fakeApps struct {
	byJob map[string][]Application
	byID  map[string]*Application
}

func (f *fakeApps) ListByJob(_ context.Context, jobID string, includeWithdrawn bool) ([]Application, error) {
	out := []Application{}
	for _, a := range f.byJob[jobID] {
		if !includeWithdrawn && a.Status == StatusWithdrawn {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApps) GetByID(_ context.Context, applicationID string) (*Application, error) {
	return f.byID[applicationID], nil
}

// fakeSignals returns fixed counts, or the configured error for every lookup.
type fakeSignals struct {
	mentorship int
	courses    int
	forumPosts int
	badges     int
	err        error
}

func (f *fakeSignals) MentorshipSessions(context.Context, string) (int, error) {
	return f.mentorship, f.err
}

func (f *fakeSignals) CompletedCourses(context.Context, string) (int, error) {
	return f.courses, f.err
}

func (f *fakeSignals) ForumPosts(context.Context, string) (int, error) {
	return f.forumPosts, f.err
}

func (f *fakeSignals) Badges(context.Context, string) (int, error) {
	return f.badges, f.err
}

func newTestService(t *testing.T, jobs *fakeJobs, apps *fakeApps, signals *fakeSignals) *Service {
	t.Helper()
	if jobs == nil {
		jobs = &fakeJobs{jobs: map[string]*JobRequirements{}}
	}
	if apps == nil {
		apps = &fakeApps{byJob: map[string][]Application{}, byID: map[string]*Application{}}
	}
	if signals == nil {
		signals = &fakeSignals{}
	}
	return NewService(Config{}, jobs, apps, signals, logger.NewTestLogger(t))
}

func testJob() JobRequirements {
	return JobRequirements{
		ID:             "job-1",
		Title:          "Store Manager",
		RequiredSkills: []string{"Leadership", "Inventory Management"},
		MinExperience:  2,
		MaxExperience:  8,
		Location:       "Sydney",
	}
}

func testApplication(id string) Application {
	return Application{
		ID:     id,
		JobID:  "job-1",
		Status: "SUBMITTED",
		Candidate: Candidate{
			UserID:          "user-" + id,
			Name:            "Candidate " + id,
			Skills:          []string{"Leadership", "Inventory Management"},
			YearsExperience: 5,
			Location:        "Sydney",
		},
		SubmittedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func datePtr(t time.Time) *time.Time { return &t }
