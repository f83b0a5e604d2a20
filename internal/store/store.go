// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chakri-scan/internal/job"
)

// ErrNotFound is returned when a job id does not exist.
var ErrNotFound = errors.New("job not found")

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    job_id           TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    department       TEXT NOT NULL,
    location         TEXT NOT NULL,
    grade            TEXT,
    salary           TEXT,
    vacancies        INT,
    education        TEXT,
    experience       TEXT,
    age_min          INT,
    age_max          INT,
    skills           TEXT[],
    description      TEXT,
    posting_date     DATE,
    deadline_date    DATE,
    application_link TEXT,
    source_url       TEXT,
    source_site      TEXT,
    quality_score    DOUBLE PRECISION,
    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
    scraped_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_jobs_active_deadline ON jobs (is_active, deadline_date);
CREATE INDEX IF NOT EXISTS idx_jobs_department ON jobs (department);
CREATE INDEX IF NOT EXISTS idx_jobs_location ON jobs (location);
`

// Store wraps the connection pool with job persistence operations.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store over an established pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the jobs table and indexes if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertJobs inserts or refreshes jobs by fingerprint. It returns the jobs
// that were newly inserted (for alerting) and the count of refreshed rows. A
// failed row is reported but does not abort the rest of the batch.
func (s *Store) UpsertJobs(ctx context.Context, jobs []job.ScoredJob) (insertedJobs []job.CanonicalJob, updated int, err error) {
	for _, sj := range jobs {
		j := sj.Job
		var wasInsert bool
		execErr := s.pool.QueryRow(ctx,
			`INSERT INTO jobs (
			    job_id, title, department, location, grade, salary, vacancies,
			    education, experience, age_min, age_max, skills, description,
			    posting_date, deadline_date, application_link, source_url,
			    source_site, quality_score, is_active, updated_at
			 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,TRUE,now())
			 ON CONFLICT (job_id) DO UPDATE SET
			    salary = EXCLUDED.salary,
			    vacancies = EXCLUDED.vacancies,
			    deadline_date = EXCLUDED.deadline_date,
			    application_link = EXCLUDED.application_link,
			    quality_score = EXCLUDED.quality_score,
			    is_active = TRUE,
			    updated_at = now()
			 RETURNING (xmax = 0)`,
			j.ID, j.Title, j.Department, j.Location, j.Grade, j.Salary,
			zeroToNil(j.Vacancies), j.Education, j.Experience, j.AgeMin, j.AgeMax,
			j.Skills, j.Description, j.PostingDate, j.DeadlineDate,
			j.ApplicationLink, j.SourceURL, j.SourceSite, sj.QualityScore,
		).Scan(&wasInsert)
		if execErr != nil {
			err = fmt.Errorf("upsert job %s: %w", j.ID, execErr)
			continue
		}
		if wasInsert {
			insertedJobs = append(insertedJobs, j)
		} else {
			updated++
		}
	}
	return insertedJobs, updated, err
}

// Filter narrows List results.
type Filter struct {
	Department string
	Location   string
	MinQuality float64
	ActiveOnly bool
	Limit      int
	Offset     int
}

// List returns jobs matching the filter, newest deadline first.
func (s *Store) List(ctx context.Context, f Filter) ([]job.CanonicalJob, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	var args []interface{}

	if f.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if f.Department != "" {
		args = append(args, "%"+f.Department+"%")
		query += fmt.Sprintf(` AND department ILIKE $%d`, len(args))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		query += fmt.Sprintf(` AND location ILIKE $%d`, len(args))
	}
	if f.MinQuality > 0 {
		args = append(args, f.MinQuality)
		query += fmt.Sprintf(` AND quality_score >= $%d`, len(args))
	}

	query += ` ORDER BY deadline_date DESC NULLS LAST, title`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// GetByID returns one job by fingerprint.
func (s *Store) GetByID(ctx context.Context, id string) (job.CanonicalJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, id)
	if err != nil {
		return job.CanonicalJob{}, fmt.Errorf("get job: %w", err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return job.CanonicalJob{}, err
	}
	if len(jobs) == 0 {
		return job.CanonicalJob{}, ErrNotFound
	}
	return jobs[0], nil
}

// Search matches the query against title, department, location, skills and
// description.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]job.CanonicalJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE is_active = TRUE AND (
		    title ILIKE $1 OR department ILIKE $1 OR location ILIKE $1
		    OR description ILIKE $1
		    OR EXISTS (SELECT 1 FROM unnest(skills) sk WHERE sk ILIKE $1)
		 )
		 ORDER BY deadline_date DESC NULLS LAST
		 LIMIT $2`,
		"%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// DeactivateExpired flags jobs whose deadline has passed, or which carry no
// deadline and have not been seen for 180 days. Returns how many rows were
// flipped.
func (s *Store) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET is_active = FALSE, updated_at = now()
		 WHERE is_active = TRUE
		   AND ((deadline_date IS NOT NULL AND deadline_date < $1)
		     OR (deadline_date IS NULL AND updated_at < $1 - INTERVAL '180 days'))`,
		now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountActive returns the number of active jobs.
func (s *Store) CountActive(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM jobs WHERE is_active = TRUE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active: %w", err)
	}
	return n, nil
}

const jobColumns = `job_id, title, department, location, grade, salary,
	vacancies, education, experience, age_min, age_max, skills, description,
	posting_date, deadline_date, application_link, source_url, source_site`

func scanJobs(rows pgx.Rows) ([]job.CanonicalJob, error) {
	var jobs []job.CanonicalJob
	for rows.Next() {
		var j job.CanonicalJob
		var grade, salary, education, experience, description, appLink, srcURL, srcSite *string
		var vacancies *int
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Department, &j.Location, &grade, &salary,
			&vacancies, &education, &experience, &j.AgeMin, &j.AgeMax,
			&j.Skills, &description, &j.PostingDate, &j.DeadlineDate,
			&appLink, &srcURL, &srcSite,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		j.Grade = deref(grade)
		j.Salary = deref(salary)
		j.Education = deref(education)
		j.Experience = deref(experience)
		j.Description = deref(description)
		j.ApplicationLink = deref(appLink)
		j.SourceURL = deref(srcURL)
		j.SourceSite = deref(srcSite)
		if vacancies != nil {
			j.Vacancies = *vacancies
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func zeroToNil(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
