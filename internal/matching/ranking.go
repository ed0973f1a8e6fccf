package matching

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	commonerrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/metrics"
)

// RankApplicants scores every applicant for a job concurrently, filters by
// the request options and returns them in descending score order. Equal
// scores keep the application listing order.
func (s *Service) RankApplicants(ctx context.Context, jobID string, opts RankOptions) (*RankingResult, error) {
	requestID := uuid.New().String()

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, commonerrors.NewJobNotFoundError(jobID)
	}

	apps, err := s.apps.ListByJob(ctx, jobID, opts.IncludeWithdrawn)
	if err != nil {
		return nil, err
	}
	metrics.RankingBatchSize.Observe(float64(len(apps)))

	s.logger.Info("ranking applicants", map[string]interface{}{
		"requestId":  requestID,
		"jobId":      jobID,
		"applicants": len(apps),
		"minScore":   opts.MinScore,
		"tier":       string(opts.Tier),
	})

	// Positional slots keep the listing order intact regardless of which
	// goroutine finishes first.
	scores := make([]*CandidateScore, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ScoreConcurrency)
	for i, app := range apps {
		i, app := i, app
		g.Go(func() error {
			scores[i] = s.ScoreCandidate(gctx, *job, app)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]CandidateScore, 0, len(scores))
	for _, sc := range scores {
		if sc.Score < opts.MinScore {
			continue
		}
		if opts.Tier != "" && sc.Tier != opts.Tier {
			continue
		}
		filtered = append(filtered, *sc)
	}

	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].Score > filtered[b].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return &RankingResult{
		JobID:      jobID,
		JobTitle:   job.Title,
		Applicants: filtered,
		Total:      total,
	}, nil
}

// Stats aggregates tier distribution, average score and flag counts over the
// complete unfiltered ranking of a job.
func (s *Service) Stats(ctx context.Context, jobID string) (*ApplicantStats, error) {
	ranking, err := s.RankApplicants(ctx, jobID, RankOptions{Limit: s.cfg.StatsLimit})
	if err != nil {
		return nil, err
	}

	stats := &ApplicantStats{
		JobID: jobID,
		Total: len(ranking.Applicants),
		TierCounts: map[Tier]int{
			TierExcellent:  0,
			TierGood:       0,
			TierPotential:  0,
			TierDeveloping: 0,
			TierNotReady:   0,
		},
	}
	if stats.Total == 0 {
		return stats, nil
	}

	sum := 0
	for i := range ranking.Applicants {
		sc := &ranking.Applicants[i]
		stats.TierCounts[sc.Tier]++
		sum += sc.Score
		if len(sc.RedFlags) > 0 {
			stats.WithRedFlags++
		}
		if len(sc.GreenFlags) > 0 {
			stats.WithGreenFlags++
		}
	}
	stats.AverageScore = math.Round(float64(sum)/float64(stats.Total)*10) / 10
	top := ranking.Applicants[0]
	stats.TopCandidate = &top

	return stats, nil
}

// Compare scores two applicants on the same job and reports per-dimension
// winners. Dimension ties go to candidate A; the overall result is a tie only
// on exact composite equality.
func (s *Service) Compare(ctx context.Context, jobID, applicationA, applicationB string) (*Comparison, error) {
	ranking, err := s.RankApplicants(ctx, jobID, RankOptions{
		IncludeWithdrawn: true,
		Limit:            s.cfg.StatsLimit,
	})
	if err != nil {
		return nil, err
	}

	a := findScore(ranking.Applicants, applicationA)
	if a == nil {
		return nil, commonerrors.NewApplicantNotFoundError(applicationA)
	}
	b := findScore(ranking.Applicants, applicationB)
	if b == nil {
		return nil, commonerrors.NewApplicantNotFoundError(applicationB)
	}

	winner := WinnerTie
	if a.Score > b.Score {
		winner = WinnerA
	} else if b.Score > a.Score {
		winner = WinnerB
	}

	return &Comparison{
		JobID:           jobID,
		CandidateA:      *a,
		CandidateB:      *b,
		ScoreDifference: abs(a.Score - b.Score),
		Winner:          winner,
		Dimensions: []DimensionComparison{
			compareDimension("skillsRequired", a.Breakdown.SkillsRequired, b.Breakdown.SkillsRequired),
			compareDimension("skillsPreferred", a.Breakdown.SkillsPreferred, b.Breakdown.SkillsPreferred),
			compareDimension("experience", a.Breakdown.Experience, b.Breakdown.Experience),
			compareDimension("qualifications", a.Breakdown.Qualifications, b.Breakdown.Qualifications),
			compareDimension("cultural", a.Breakdown.Cultural, b.Breakdown.Cultural),
			compareDimension("availability", a.Breakdown.Availability, b.Breakdown.Availability),
		},
	}, nil
}

func findScore(scores []CandidateScore, applicationID string) *CandidateScore {
	for i := range scores {
		if scores[i].ApplicationID == applicationID {
			return &scores[i]
		}
	}
	return nil
}

func compareDimension(name string, a, b int) DimensionComparison {
	winner := WinnerA
	if b > a {
		winner = WinnerB
	}
	return DimensionComparison{Dimension: name, A: a, B: b, Winner: winner}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
