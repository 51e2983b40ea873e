package repositories

import (
	"database/sql"
	"time"

	"github.com/canmap/canmap/internal/models"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	query := `
		INSERT INTO jobs (id, project_id, job_type, status, error_message, worker_id, started_at, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID, job.ProjectID, job.JobType, job.Status, job.ErrorMessage, job.WorkerID,
		job.StartedAt, job.CompletedAt, job.CreatedAt, job.UpdatedAt,
	)

	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	query := `
		SELECT id, project_id, job_type, status, error_message, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs WHERE id = ?
	`

	job := &models.Job{}
	err := r.db.QueryRow(query, id).Scan(
		&job.ID, &job.ProjectID, &job.JobType, &job.Status, &job.ErrorMessage, &job.WorkerID,
		&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// GetNextPendingJob retrieves the oldest pending job of the given type
func (r *JobRepository) GetNextPendingJob(jobType models.JobType) (*models.Job, error) {
	query := `
		SELECT id, project_id, job_type, status, error_message, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs WHERE status = ? AND job_type = ?
		ORDER BY created_at ASC LIMIT 1
	`

	job := &models.Job{}
	err := r.db.QueryRow(query, models.JobStatusPending, jobType).Scan(
		&job.ID, &job.ProjectID, &job.JobType, &job.Status, &job.ErrorMessage, &job.WorkerID,
		&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

// GetByProjectID retrieves all jobs for a project, newest first
func (r *JobRepository) GetByProjectID(projectID string) ([]*models.Job, error) {
	query := `
		SELECT id, project_id, job_type, status, error_message, worker_id, started_at, completed_at, created_at, updated_at
		FROM jobs WHERE project_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job := &models.Job{}
		err := rows.Scan(
			&job.ID, &job.ProjectID, &job.JobType, &job.Status, &job.ErrorMessage, &job.WorkerID,
			&job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Update updates an existing job
func (r *JobRepository) Update(job *models.Job) error {
	job.UpdatedAt = time.Now()

	query := `
		UPDATE jobs SET
			status = ?, error_message = ?, worker_id = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.Status, job.ErrorMessage, job.WorkerID, job.StartedAt, job.CompletedAt, job.UpdatedAt, job.ID,
	)

	return err
}
