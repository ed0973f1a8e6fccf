package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func flagIDs(flags []Flag) []string {
	ids := make([]string, 0, len(flags))
	for _, f := range flags {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestRedFlagsOverqualified(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	job := testJob()
	app := testApplication("app-1")
	app.Candidate.YearsExperience = 20

	flags := svc.redFlags(job, app, ExperienceFit{Score: 70, IsOverqualified: true})
	assert.Equal(t, []string{flagOverqualified}, flagIDs(flags))
	assert.Equal(t, SeverityWarning, flags[0].Severity)
}

func TestRedFlagsLocationMismatch(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	tests := []struct {
		name      string
		candidate string
		jobLoc    string
		remote    bool
		want      bool
	}{
		{name: "different cities", candidate: "Melbourne", jobLoc: "Sydney", want: true},
		{name: "same city", candidate: "Sydney", jobLoc: "Sydney", want: false},
		{name: "substring overlap", candidate: "Sydney NSW", jobLoc: "sydney", want: false},
		{name: "remote job never mismatches", candidate: "Melbourne", jobLoc: "Sydney", remote: true, want: false},
		{name: "unknown candidate location", candidate: "", jobLoc: "Sydney", want: false},
		{name: "unknown job location", candidate: "Melbourne", jobLoc: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := testJob()
			job.Location = tt.jobLoc
			job.Remote = tt.remote
			app := testApplication("app-1")
			app.Candidate.Location = tt.candidate

			flags := svc.redFlags(job, app, ExperienceFit{Score: 100})
			if tt.want {
				assert.Equal(t, []string{flagLocationMismatch}, flagIDs(flags))
				assert.Equal(t, SeverityInfo, flags[0].Severity)
			} else {
				assert.Empty(t, flags)
			}
		})
	}
}

func TestRedFlagsSalaryMismatch(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	job := testJob()
	job.SalaryMax = 100000

	// 115k is within the 20% stretch of a 100k maximum; 130k is not.
	app := testApplication("app-1")
	app.Candidate.ExpectedSalary = 115000
	assert.Empty(t, svc.redFlags(job, app, ExperienceFit{Score: 100}))

	app.Candidate.ExpectedSalary = 130000
	flags := svc.redFlags(job, app, ExperienceFit{Score: 100})
	assert.Equal(t, []string{flagSalaryMismatch}, flagIDs(flags))
	assert.Equal(t, SeverityWarning, flags[0].Severity)
}

func TestRedFlagsSalaryOverridePrecedence(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	job := testJob()
	job.SalaryMax = 100000

	// The application figure wins over the profile default.
	app := testApplication("app-1")
	app.Candidate.ExpectedSalary = 150000
	app.ExpectedSalary = 110000
	assert.Empty(t, svc.redFlags(job, app, ExperienceFit{Score: 100}))

	app.ExpectedSalary = 0
	flags := svc.redFlags(job, app, ExperienceFit{Score: 100})
	assert.Equal(t, []string{flagSalaryMismatch}, flagIDs(flags))
}

func TestRedFlagsDelayedStart(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	job := testJob()
	job.StartDate = &start

	app := testApplication("app-1")
	app.AvailableFrom = datePtr(start.AddDate(0, 0, 30))
	assert.Empty(t, svc.redFlags(job, app, ExperienceFit{Score: 100}))

	app.AvailableFrom = datePtr(start.AddDate(0, 0, 45))
	flags := svc.redFlags(job, app, ExperienceFit{Score: 100})
	assert.Equal(t, []string{flagDelayedStart}, flagIDs(flags))
	assert.Equal(t, SeverityInfo, flags[0].Severity)
	assert.Contains(t, flags[0].Detail, "45 days")
}

func TestRedFlagsFixedOrder(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	job := testJob()
	job.SalaryMax = 100000
	job.StartDate = &start

	app := testApplication("app-1")
	app.Candidate.YearsExperience = 20
	app.Candidate.Location = "Melbourne"
	app.Candidate.ExpectedSalary = 130000
	app.AvailableFrom = datePtr(start.AddDate(0, 0, 60))

	flags := svc.redFlags(job, app, ExperienceFit{Score: 70, IsOverqualified: true})
	assert.Equal(t, []string{
		flagOverqualified,
		flagLocationMismatch,
		flagSalaryMismatch,
		flagDelayedStart,
	}, flagIDs(flags))
}

func TestDaysLate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysLate(start, start))
	assert.Equal(t, 0, daysLate(start.AddDate(0, 0, -5), start))
	assert.Equal(t, 10, daysLate(start.AddDate(0, 0, 10), start))
	// A partial day counts as a whole day late.
	assert.Equal(t, 1, daysLate(start.Add(6*time.Hour), start))
}
