package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"matching-workers/internal/common/database"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
)

const jobCacheKeyPrefix = "matching:job:"

// Store reads jobs and applications from Postgres, with a read-through Redis
// cache in front of job requirement sets. It implements matching.JobSource
// and matching.ApplicationSource.
type Store struct {
	db     *sql.DB
	cache  *redis.Client
	jobTTL time.Duration
	logger logger.Logger
}

// New builds a Store. jobCacheTTL bounds how stale a cached requirement set
// may get; pass zero to disable caching.
func New(pg *database.PostgresClient, rdb *database.RedisClient, jobCacheTTL time.Duration, log logger.Logger) *Store {
	s := &Store{db: pg.DB, jobTTL: jobCacheTTL, logger: log}
	if rdb != nil && jobCacheTTL > 0 {
		s.cache = rdb.Client
	}
	return s
}

// GetJob loads a job's requirement set, serving from cache when possible.
// A missing job returns (nil, nil).
func (s *Store) GetJob(ctx context.Context, jobID string) (*matching.JobRequirements, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, jobCacheKeyPrefix+jobID).Result()
		if err == nil {
			var job matching.JobRequirements
			if err := json.Unmarshal([]byte(raw), &job); err == nil {
				return &job, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("job cache read failed, falling back to database", map[string]interface{}{
				"jobId": jobID,
				"error": err,
			})
		}
	}

	job, err := s.loadJob(ctx, jobID)
	if err != nil || job == nil {
		return job, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(job); err == nil {
			if err := s.cache.Set(ctx, jobCacheKeyPrefix+jobID, raw, s.jobTTL).Err(); err != nil {
				s.logger.Warn("job cache write failed", map[string]interface{}{
					"jobId": jobID,
					"error": err,
				})
			}
		}
	}
	return job, nil
}

func (s *Store) loadJob(ctx context.Context, jobID string) (*matching.JobRequirements, error) {
	var (
		job       matching.JobRequirements
		title     sql.NullString
		location  sql.NullString
		salaryMax sql.NullFloat64
		startDate sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, location, remote, min_experience, max_experience, salary_max, start_date
		FROM jobs
		WHERE id = $1`, jobID).
		Scan(&job.ID, &title, &location, &job.Remote,
			&job.MinExperience, &job.MaxExperience, &salaryMax, &startDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionError("load job", err)
	}
	job.Title = title.String
	job.Location = location.String
	job.SalaryMax = salaryMax.Float64
	if startDate.Valid {
		t := startDate.Time
		job.StartDate = &t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT skill, required
		FROM job_skills
		WHERE job_id = $1
		ORDER BY skill`, jobID)
	if err != nil {
		return nil, errors.NewQueryExecutionError("load job skills", err)
	}
	defer rows.Close()

	job.RequiredSkills = []string{}
	job.PreferredSkills = []string{}
	for rows.Next() {
		var (
			skill    string
			required bool
		)
		if err := rows.Scan(&skill, &required); err != nil {
			return nil, errors.NewQueryExecutionError("scan job skill", err)
		}
		if required {
			job.RequiredSkills = append(job.RequiredSkills, skill)
		} else {
			job.PreferredSkills = append(job.PreferredSkills, skill)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionError("iterate job skills", err)
	}

	job.RequiredQualifications, err = s.stringColumn(ctx, `
		SELECT qualification
		FROM job_qualifications
		WHERE job_id = $1
		ORDER BY qualification`, jobID)
	if err != nil {
		return nil, err
	}

	return &job, nil
}

const applicationColumns = `
	a.id, a.job_id, a.status, a.expected_salary, a.available_from, a.submitted_at,
	u.id, u.name, u.location, u.expected_salary, u.years_experience, u.verified, u.referred`

// ListByJob returns every application for a job in submission order. Unless
// includeWithdrawn is set, withdrawn applications are filtered in SQL so they
// never reach the scoring pipeline.
func (s *Store) ListByJob(ctx context.Context, jobID string, includeWithdrawn bool) ([]matching.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.job_id = $1`, applicationColumns)
	if !includeWithdrawn {
		query += fmt.Sprintf(" AND a.status <> '%s'", matching.StatusWithdrawn)
	}
	query += " ORDER BY a.submitted_at, a.id"

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, errors.NewQueryExecutionError("list applications", err)
	}
	defer rows.Close()

	apps := []matching.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionError("iterate applications", err)
	}

	for i := range apps {
		if err := s.loadCandidateLists(ctx, &apps[i].Candidate); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

// GetByID loads one application with its candidate snapshot. A missing
// application returns (nil, nil).
func (s *Store) GetByID(ctx context.Context, applicationID string) (*matching.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1`, applicationColumns)

	rows, err := s.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, errors.NewQueryExecutionError("load application", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.NewQueryExecutionError("load application", err)
		}
		return nil, nil
	}
	app, err := scanApplication(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadCandidateLists(ctx, &app.Candidate); err != nil {
		return nil, err
	}
	return app, nil
}

func scanApplication(rows *sql.Rows) (*matching.Application, error) {
	var (
		app           matching.Application
		appSalary     sql.NullFloat64
		availableFrom sql.NullTime
		name          sql.NullString
		location      sql.NullString
		profileSalary sql.NullFloat64
	)
	err := rows.Scan(&app.ID, &app.JobID, &app.Status, &appSalary, &availableFrom, &app.SubmittedAt,
		&app.Candidate.UserID, &name, &location, &profileSalary,
		&app.Candidate.YearsExperience, &app.Candidate.Verified, &app.Candidate.Referred)
	if err != nil {
		return nil, errors.NewQueryExecutionError("scan application", err)
	}
	app.ExpectedSalary = appSalary.Float64
	if availableFrom.Valid {
		t := availableFrom.Time
		app.AvailableFrom = &t
	}
	app.Candidate.Name = name.String
	app.Candidate.Location = location.String
	app.Candidate.ExpectedSalary = profileSalary.Float64
	return &app, nil
}

func (s *Store) loadCandidateLists(ctx context.Context, c *matching.Candidate) error {
	var err error
	c.Skills, err = s.stringColumn(ctx, `
		SELECT skill
		FROM user_skills
		WHERE user_id = $1
		ORDER BY skill`, c.UserID)
	if err != nil {
		return err
	}
	c.Qualifications, err = s.stringColumn(ctx, `
		SELECT qualification
		FROM user_qualifications
		WHERE user_id = $1
		ORDER BY qualification`, c.UserID)
	return err
}

func (s *Store) stringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewQueryExecutionError("load list", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.NewQueryExecutionError("scan list", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionError("iterate list", err)
	}
	return out, nil
}
