package matching

import (
	"context"
	"fmt"

	"matching-workers/internal/common/metrics"
)

// Green flag identifiers.
const (
	flagActiveMentee     = "active-mentee"
	flagTrainingComplete = "training-complete"
	flagCommunityEngaged = "community-engaged"
	flagBadgeHolder      = "badge-holder"
	flagVerifiedProfile  = "verified-profile"
	flagReferred         = "referred"
)

// lookupResult makes the "failed lookup counts as zero" policy an explicit
// decision at the call site instead of a side effect of a generic catch.
type lookupResult struct {
	count int
	err   error
}

func (r lookupResult) orZero() int {
	if r.err != nil || r.count < 0 {
		return 0
	}
	return r.count
}

// culturalSignals produces the community-engagement score and its green
// flags. Every count lookup is individually fault-tolerant: a failure
// degrades that one signal to absent and must never abort the scoring
// pipeline. Without a user id no lookups are attempted and the neutral
// baseline is returned.
func (s *Service) culturalSignals(ctx context.Context, c Candidate) SignalReport {
	bonuses := s.cfg.Signals
	report := SignalReport{Score: bonuses.Baseline, Signals: []Flag{}}
	if c.UserID == "" {
		return report
	}

	mentorship := s.lookupCount(ctx, "mentorship_sessions", c.UserID, s.signals.MentorshipSessions)
	courses := s.lookupCount(ctx, "completed_courses", c.UserID, s.signals.CompletedCourses)
	forumPosts := s.lookupCount(ctx, "forum_posts", c.UserID, s.signals.ForumPosts)
	badges := s.lookupCount(ctx, "badges", c.UserID, s.signals.Badges)

	if n := mentorship.orZero(); n > 0 {
		report.Score += bonuses.Mentorship
		report.Signals = append(report.Signals, Flag{
			ID:          flagActiveMentee,
			Label:       "Active mentee",
			Description: "Participates in platform mentorship",
			Detail:      fmt.Sprintf("%d mentorship sessions", n),
		})
	}
	if n := courses.orZero(); n > 0 {
		report.Score += bonuses.Training
		report.Signals = append(report.Signals, Flag{
			ID:          flagTrainingComplete,
			Label:       "Training complete",
			Description: "Has completed platform courses",
			Detail:      fmt.Sprintf("%d completed courses", n),
		})
	}
	if n := forumPosts.orZero(); n >= bonuses.ForumPostThreshold {
		report.Score += bonuses.Forum
		report.Signals = append(report.Signals, Flag{
			ID:          flagCommunityEngaged,
			Label:       "Community engaged",
			Description: "Regular forum contributor",
			Detail:      fmt.Sprintf("%d forum posts", n),
		})
	}
	if n := badges.orZero(); n > 0 {
		report.Score += bonuses.Badges
		report.Signals = append(report.Signals, Flag{
			ID:          flagBadgeHolder,
			Label:       "Badge holder",
			Description: "Holds community badges",
			Detail:      fmt.Sprintf("%d badges", n),
		})
	}
	if c.Verified {
		report.Score += bonuses.Verified
		report.Signals = append(report.Signals, Flag{
			ID:          flagVerifiedProfile,
			Label:       "Verified profile",
			Description: "Identity verified on the platform",
		})
	}
	if c.Referred {
		report.Score += bonuses.Referred
		report.Signals = append(report.Signals, Flag{
			ID:          flagReferred,
			Label:       "Referred",
			Description: "Referred by a community member",
		})
	}

	if report.Score > 100 {
		report.Score = 100
	}
	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

func (s *Service) lookupCount(ctx context.Context, signal, userID string, fn func(context.Context, string) (int, error)) lookupResult {
	count, err := fn(ctx, userID)
	if err != nil {
		metrics.SignalLookupFailures.WithLabelValues(signal).Inc()
		s.logger.Warn("signal lookup failed, treating as absent", map[string]interface{}{
			"signal": signal,
			"userId": userID,
			"error":  err,
		})
		return lookupResult{err: err}
	}
	return lookupResult{count: count}
}
