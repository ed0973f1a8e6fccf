package matching

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Red flag identifiers.
const (
	flagOverqualified    = "overqualified"
	flagLocationMismatch = "location-mismatch"
	flagSalaryMismatch   = "salary-mismatch"
	flagDelayedStart     = "delayed-start"
)

// redFlags evaluates the risk rules in a fixed order: overqualification,
// location, salary, delayed start. A rule whose condition does not hold
// emits nothing.
func (s *Service) redFlags(job JobRequirements, app Application, fit ExperienceFit) []Flag {
	flags := []Flag{}

	if fit.IsOverqualified {
		flags = append(flags, Flag{
			ID:          flagOverqualified,
			Label:       "Overqualified",
			Severity:    SeverityWarning,
			Description: "Candidate significantly exceeds the preferred experience range",
			Detail: fmt.Sprintf("%.0f years against a preferred maximum of %.0f",
				app.Candidate.YearsExperience, job.MaxExperience),
		})
	}

	if !job.Remote && job.Location != "" && app.Candidate.Location != "" &&
		!locationsOverlap(app.Candidate.Location, job.Location) {
		flags = append(flags, Flag{
			ID:          flagLocationMismatch,
			Label:       "Location mismatch",
			Severity:    SeverityInfo,
			Description: "Candidate location does not match the on-site job location",
			Detail:      fmt.Sprintf("candidate in %s, job in %s", app.Candidate.Location, job.Location),
		})
	}

	if expected := app.expectedSalary(); expected > 0 && job.SalaryMax > 0 &&
		expected > job.SalaryMax*s.cfg.Flags.SalaryStretch {
		flags = append(flags, Flag{
			ID:          flagSalaryMismatch,
			Label:       "Salary mismatch",
			Severity:    SeverityWarning,
			Description: "Expected salary is well above the job's maximum",
			Detail:      fmt.Sprintf("expects %.0f, job maximum %.0f", expected, job.SalaryMax),
		})
	}

	if app.AvailableFrom != nil && job.StartDate != nil {
		if days := daysLate(*app.AvailableFrom, *job.StartDate); days > s.cfg.Flags.DelayedStartDays {
			flags = append(flags, Flag{
				ID:          flagDelayedStart,
				Label:       "Delayed start",
				Severity:    SeverityInfo,
				Description: "Candidate is not available until well after the preferred start date",
				Detail:      fmt.Sprintf("%d days after preferred start", days),
			})
		}
	}

	return flags
}

// locationsOverlap treats two free-text locations as compatible when either
// contains the other, case-insensitively ("Sydney" vs "Sydney NSW").
func locationsOverlap(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return true
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// daysLate counts whole days from start until available; a partial day late
// counts as a full day. Zero when available on or before start.
func daysLate(available, start time.Time) int {
	diff := available.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}
