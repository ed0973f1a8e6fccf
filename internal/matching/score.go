package matching

import (
	"context"
	"fmt"
	"math"
	"time"

	commonerrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/metrics"
)

// ScoreCandidate runs the full scoring pipeline for one application against
// one job and returns the composite result. It is deterministic for identical
// inputs and engagement counts, and never fails on degraded signal lookups.
func (s *Service) ScoreCandidate(ctx context.Context, job JobRequirements, app Application) *CandidateScore {
	job = job.normalized(s.cfg.Experience)
	app = app.normalized()

	required := matchSkills(app.Candidate.Skills, job.RequiredSkills)
	preferred := matchSkills(app.Candidate.Skills, job.PreferredSkills)
	quals := matchSkills(app.Candidate.Qualifications, job.RequiredQualifications)
	fit := evaluateExperience(app.Candidate.YearsExperience, job.MinExperience, job.MaxExperience, s.cfg.Experience)
	cultural := s.culturalSignals(ctx, app.Candidate)
	availability := s.availabilityScore(job, app)

	w := s.cfg.Weights
	composite := int(math.Round(
		required.Score/100*w.SkillsRequired +
			preferred.Score/100*w.SkillsPreferred +
			fit.Score/100*w.Experience +
			quals.Score/100*w.Qualifications +
			float64(cultural.Score)/100*w.Cultural +
			availability/100*w.Availability))

	score := &CandidateScore{
		ApplicationID: app.ID,
		UserID:        app.Candidate.UserID,
		Name:          app.Candidate.Name,
		Score:         composite,
		Tier:          s.tierFor(composite),
		Breakdown: ScoreBreakdown{
			SkillsRequired:  roundPts(required.Score, w.SkillsRequired),
			SkillsPreferred: roundPts(preferred.Score, w.SkillsPreferred),
			Experience:      roundPts(fit.Score, w.Experience),
			Qualifications:  roundPts(quals.Score, w.Qualifications),
			Cultural:        roundPts(float64(cultural.Score), w.Cultural),
			Availability:    roundPts(availability, w.Availability),
		},
		GreenFlags:      cultural.Signals,
		MatchedRequired: required.Matched,
		MissingRequired: required.Missing,
	}
	score.RedFlags = s.redFlags(job, app, fit)
	score.Recommendations = s.recommendations(required, fit, score.RedFlags)

	metrics.ScoresComputed.WithLabelValues(string(score.Tier)).Inc()
	return score
}

// ScoreApplication resolves the job and application by id and scores them.
func (s *Service) ScoreApplication(ctx context.Context, jobID, applicationID string) (*CandidateScore, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, commonerrors.NewJobNotFoundError(jobID)
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, commonerrors.NewApplicantNotFoundError(applicationID)
	}

	return s.ScoreCandidate(ctx, *job, *app), nil
}

// roundPts scales a 0-100 sub-score onto its weight and rounds to whole points.
func roundPts(sub, weight float64) int {
	return int(math.Round(sub / 100 * weight))
}

func (s *Service) tierFor(score int) Tier {
	t := s.cfg.Tiers
	switch {
	case score >= t.Excellent:
		return TierExcellent
	case score >= t.Good:
		return TierGood
	case score >= t.Potential:
		return TierPotential
	case score >= t.Developing:
		return TierDeveloping
	default:
		return TierNotReady
	}
}

// availabilityScore decays from 100 by a fixed amount per day the candidate is
// available after the job start. No stated availability counts as immediate;
// no job start date means measuring against now.
func (s *Service) availabilityScore(job JobRequirements, app Application) float64 {
	if app.AvailableFrom == nil {
		return 100
	}
	start := time.Now()
	if job.StartDate != nil {
		start = *job.StartDate
	}
	late := daysLate(*app.AvailableFrom, start)
	score := 100 - float64(late)*s.cfg.AvailabilityDecayPerDay
	if score < 0 {
		return 0
	}
	return score
}

// recommendations derives improvement suggestions from the skill gaps and
// flags. At most one suggestion per concern.
func (s *Service) recommendations(required SkillMatch, fit ExperienceFit, redFlags []Flag) []string {
	recs := []string{}

	if n := len(required.Missing); n > 0 && n <= 2 {
		recs = append(recs, fmt.Sprintf(
			"Close the remaining skill gap through platform training: %s",
			joinSkills(required.Missing)))
	}
	if fit.IsOverqualified {
		recs = append(recs, "Discuss career goals to confirm the role matches the candidate's trajectory")
	}
	for _, f := range redFlags {
		switch f.ID {
		case flagLocationMismatch:
			recs = append(recs, "Explore relocation support or remote-work arrangements")
		case flagSalaryMismatch:
			recs = append(recs, "Align compensation expectations before progressing")
		}
	}

	return recs
}

func joinSkills(skills []string) string {
	out := ""
	for i, s := range skills {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
