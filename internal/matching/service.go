package matching

import (
	"context"

	"matching-workers/internal/common/logger"
)

// JobSource provides job requirement sets. The matching service never writes
// through it.
type JobSource interface {
	GetJob(ctx context.Context, jobID string) (*JobRequirements, error)
}

// ApplicationSource provides application snapshots for scoring and ranking.
type ApplicationSource interface {
	ListByJob(ctx context.Context, jobID string, includeWithdrawn bool) ([]Application, error)
	GetByID(ctx context.Context, applicationID string) (*Application, error)
}

// SignalSource provides per-user community-engagement counts. Each lookup is
// independent; the service tolerates individual failures.
type SignalSource interface {
	MentorshipSessions(ctx context.Context, userID string) (int, error)
	CompletedCourses(ctx context.Context, userID string) (int, error)
	ForumPosts(ctx context.Context, userID string) (int, error)
	Badges(ctx context.Context, userID string) (int, error)
}

// Service is the candidate matching engine. It is stateless between calls;
// every score is recomputed from current inputs.
type Service struct {
	cfg     Config
	jobs    JobSource
	apps    ApplicationSource
	signals SignalSource
	logger  logger.Logger
}

// NewService builds a matching service. Zero-valued config fields are filled
// with the production defaults.
func NewService(cfg Config, jobs JobSource, apps ApplicationSource, signals SignalSource, log logger.Logger) *Service {
	cfg.ApplyDefaults()
	return &Service{
		cfg:     cfg,
		jobs:    jobs,
		apps:    apps,
		signals: signals,
		logger:  log,
	}
}
