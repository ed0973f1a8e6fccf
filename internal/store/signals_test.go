package store

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
)

// countingESTransport answers every request with a fixed count response and
// records how many requests it served.
type countingESTransport struct {
	count    string
	requests int
}

func (tr *countingESTransport) RoundTrip(*http.Request) (*http.Response, error) {
	tr.requests++
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(`{"count":` + tr.count + `}`)),
	}, nil
}

func newTestSignalStore(t *testing.T, ttl time.Duration, es *countingESTransport) (*SignalStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var rdb *database.RedisClient
	if ttl > 0 {
		mr := miniredis.RunT(t)
		rdb = &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	}

	if es == nil {
		es = &countingESTransport{count: "0"}
	}
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: es,
	})
	require.NoError(t, err)

	s := NewSignalStore(&database.PostgresClient{DB: db}, rdb,
		&database.ElasticsearchClient{Client: esClient}, "forum-posts", ttl, logger.NewTestLogger(t))
	return s, mock
}

func TestMentorshipSessions(t *testing.T) {
	s, mock := newTestSignalStore(t, 0, nil)

	mock.ExpectQuery("FROM mentorship_sessions").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.MentorshipSessions(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedCourses(t *testing.T) {
	s, mock := newTestSignalStore(t, 0, nil)

	mock.ExpectQuery("FROM course_enrollments").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := s.CompletedCourses(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBadges(t *testing.T) {
	s, mock := newTestSignalStore(t, 0, nil)

	mock.ExpectQuery("FROM user_badges").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := s.Badges(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestForumPosts(t *testing.T) {
	es := &countingESTransport{count: "7"}
	s, _ := newTestSignalStore(t, 0, es)

	n, err := s.ForumPosts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 1, es.requests)
}

func TestForumPostsCached(t *testing.T) {
	es := &countingESTransport{count: "7"}
	s, _ := newTestSignalStore(t, 2*time.Minute, es)

	first, err := s.ForumPosts(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := s.ForumPosts(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 7, first)
	assert.Equal(t, 7, second)
	// The second read came from the cache, not the search index.
	assert.Equal(t, 1, es.requests)
}

func TestSQLCountCached(t *testing.T) {
	s, mock := newTestSignalStore(t, 2*time.Minute, nil)

	mock.ExpectQuery("FROM user_badges").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	first, err := s.Badges(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := s.Badges(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, first)
	assert.Equal(t, 4, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignalCountQueryError(t *testing.T) {
	s, mock := newTestSignalStore(t, 0, nil)

	mock.ExpectQuery("FROM mentorship_sessions").
		WithArgs("user-1").
		WillReturnError(assert.AnError)

	_, err := s.MentorshipSessions(context.Background(), "user-1")
	assert.Error(t, err)
}
