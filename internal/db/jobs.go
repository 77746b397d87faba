package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jobfinder/job-assistant/internal/types"
)

// ErrJobNotFound is returned when a job id does not exist.
var ErrJobNotFound = errors.New("job not found")

// Every nullable text column is COALESCEd: rows with no salary text, no
// categorical attributes, or no company at all are valid input, and pgx
// refuses to scan NULL into plain strings. The company columns go through a
// LEFT JOIN, so even NOT NULL ones can come back NULL.
const getJobQuery = `SELECT j.id, j.url, j.title,
       j.salary_min, j.salary_max,
       COALESCE(j.salary_currency, ''), COALESCE(j.salary_interval, ''), COALESCE(j.salary_raw_text, ''),
       j.experience_months, COALESCE(j.experience_raw_text, ''),
       j.deadline, j.crawled_at,
       COALESCE(j.cap_bac, ''), COALESCE(j.hoc_van, ''),
       COALESCE(j.so_luong_tuyen, ''), COALESCE(j.so_luong_tuyen_raw, ''),
       COALESCE(j.hinh_thuc_lam_viec, ''), COALESCE(j.hinh_thuc_lam_viec_raw, ''),
       COALESCE(c.name, ''), COALESCE(c.url, ''), COALESCE(c.logo, ''),
       COALESCE(c.size, ''), COALESCE(c.industry, ''), COALESCE(c.address, '')
FROM jobs j
LEFT JOIN companies c ON j.company_id = c.id
WHERE j.id = $1`

// GetJob retrieves a full job record: the jobs row joined with its company,
// plus locations and sections.
func (db *DB) GetJob(ctx context.Context, jobID int64) (*types.JobRecord, error) {
	var j types.JobRecord

	err := db.pool.QueryRow(ctx, getJobQuery, jobID).Scan(&j.ID, &j.URL, &j.Title,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &j.Salary.Interval, &j.Salary.RawText,
		&j.Experience.Months, &j.Experience.RawText,
		&j.Deadline, &j.CrawledAt,
		&j.General.Seniority, &j.General.Education, &j.General.Headcount, &j.General.HeadcountRaw,
		&j.General.WorkType, &j.General.WorkTypeRaw,
		&j.Company.Name, &j.Company.URL, &j.Company.Logo, &j.Company.Size, &j.Company.Industry, &j.Company.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %d: %w", jobID, ErrJobNotFound)
		}
		return nil, fmt.Errorf("failed to get job %d: %w", jobID, err)
	}

	if j.Locations, err = db.jobLocations(ctx, jobID); err != nil {
		return nil, err
	}
	if j.Sections, err = db.jobSections(ctx, jobID); err != nil {
		return nil, err
	}

	return &j, nil
}

func (db *DB) jobLocations(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT location_text
		 FROM job_locations
		 WHERE job_id = $1
		 ORDER BY is_primary DESC, sort_order, id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations for job %d: %w", jobID, err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (db *DB) jobSections(ctx context.Context, jobID int64) ([]types.Section, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT section_type, COALESCE(text_content, ''), COALESCE(html_content, '')
		 FROM job_sections
		 WHERE job_id = $1
		 ORDER BY id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections for job %d: %w", jobID, err)
	}
	defer rows.Close()

	var sections []types.Section
	for rows.Next() {
		var s types.Section
		if err := rows.Scan(&s.Type, &s.Text, &s.HTML); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		if s.Text == "" && s.HTML == "" {
			continue
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// SelectJobsToIndex returns ids of jobs whose index state needs refreshing.
//
// Incremental (full=false): active jobs with no overview document yet.
// Full reindex (full=true): every active job, plus expired jobs whose last
// indexed snapshot still claims is_active, so they get one final pass to
// flip the flag instead of vanishing with stale metadata.
func (db *DB) SelectJobsToIndex(ctx context.Context, limit int, full bool) ([]int64, error) {
	now := time.Now().UTC()
	if limit <= 0 {
		limit = 10_000_000
	}

	var sql string
	if full {
		sql = `
			WITH last_index AS (
				SELECT job_id, is_active
				FROM rag_job_documents
				WHERE doc_type = 'job_overview' AND chunk_index = 0
			)
			SELECT j.id
			FROM jobs j
			LEFT JOIN last_index d ON d.job_id = j.id
			WHERE (j.deadline IS NULL OR j.deadline >= $1)
			   OR (j.deadline < $1 AND d.is_active)
			ORDER BY j.id
			LIMIT $2`
	} else {
		sql = `
			SELECT j.id
			FROM jobs j
			WHERE (j.deadline IS NULL OR j.deadline >= $1)
			  AND NOT EXISTS (
				SELECT 1
				FROM rag_job_documents d
				WHERE d.job_id = j.id
				  AND d.doc_type = 'job_overview'
				  AND d.chunk_index = 0
			  )
			ORDER BY j.id
			LIMIT $2`
	}

	rows, err := db.pool.Query(ctx, sql, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select jobs to index: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
