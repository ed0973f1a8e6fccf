package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"matching-workers/internal/common/database"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
)

const signalCacheKeyPrefix = "matching:signal:"

// SignalStore serves per-user community-engagement counts. Mentorship,
// course and badge counts come from Postgres; forum posts come from the
// search index, since forum content lives in Elasticsearch. Counts are
// cached briefly in Redis since a ranking run asks for the same users'
// signals in quick succession. It implements matching.SignalSource.
type SignalStore struct {
	db         *sql.DB
	cache      *redis.Client
	es         *elasticsearch.Client
	forumIndex string
	ttl        time.Duration
	logger     logger.Logger
}

// NewSignalStore builds a SignalStore. Pass a zero ttl to disable count
// caching.
func NewSignalStore(pg *database.PostgresClient, rdb *database.RedisClient, es *database.ElasticsearchClient, forumIndex string, ttl time.Duration, log logger.Logger) *SignalStore {
	s := &SignalStore{
		db:         pg.DB,
		es:         es.Client,
		forumIndex: forumIndex,
		ttl:        ttl,
		logger:     log,
	}
	if rdb != nil && ttl > 0 {
		s.cache = rdb.Client
	}
	return s
}

// MentorshipSessions counts completed mentorship sessions for a user.
func (s *SignalStore) MentorshipSessions(ctx context.Context, userID string) (int, error) {
	return s.cachedCount(ctx, "mentorship", userID, func(ctx context.Context) (int, error) {
		return s.sqlCount(ctx, `
			SELECT COUNT(*)
			FROM mentorship_sessions
			WHERE mentee_id = $1 AND status = 'COMPLETED'`, userID)
	})
}

// CompletedCourses counts course enrollments the user has completed.
func (s *SignalStore) CompletedCourses(ctx context.Context, userID string) (int, error) {
	return s.cachedCount(ctx, "courses", userID, func(ctx context.Context) (int, error) {
		return s.sqlCount(ctx, `
			SELECT COUNT(*)
			FROM course_enrollments
			WHERE user_id = $1 AND status = 'COMPLETED'`, userID)
	})
}

// Badges counts community badges awarded to the user.
func (s *SignalStore) Badges(ctx context.Context, userID string) (int, error) {
	return s.cachedCount(ctx, "badges", userID, func(ctx context.Context) (int, error) {
		return s.sqlCount(ctx, `
			SELECT COUNT(*)
			FROM user_badges
			WHERE user_id = $1`, userID)
	})
}

// ForumPosts counts the user's forum posts in the search index.
func (s *SignalStore) ForumPosts(ctx context.Context, userID string) (int, error) {
	return s.cachedCount(ctx, "forum", userID, func(ctx context.Context) (int, error) {
		return s.forumPostCount(ctx, userID)
	})
}

func (s *SignalStore) sqlCount(ctx context.Context, query, userID string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, errors.NewQueryExecutionError("count signal", err)
	}
	return count, nil
}

func (s *SignalStore) forumPostCount(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`{"query":{"term":{"authorId":%q}}}`, userID)

	res, err := s.es.Count(
		s.es.Count.WithContext(ctx),
		s.es.Count.WithIndex(s.forumIndex),
		s.es.Count.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return 0, fmt.Errorf("forum post count: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("forum post count: %s", res.Status())
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("forum post count decode: %w", err)
	}
	return body.Count, nil
}

func (s *SignalStore) cachedCount(ctx context.Context, signal, userID string, load func(context.Context) (int, error)) (int, error) {
	key := signalCacheKeyPrefix + signal + ":" + userID

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			if n, convErr := strconv.Atoi(raw); convErr == nil {
				return n, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("signal cache read failed", map[string]interface{}{
				"signal": signal,
				"userId": userID,
				"error":  err,
			})
		}
	}

	count, err := load(ctx)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.Itoa(count), s.ttl).Err(); err != nil {
			s.logger.Warn("signal cache write failed", map[string]interface{}{
				"signal": signal,
				"userId": userID,
				"error":  err,
			})
		}
	}
	return count, nil
}
