package services

import (
	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
)

type JobService struct {
	jobRepo *repositories.JobRepository
}

func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// EnqueueScan queues a scan job for a project
func (s *JobService) EnqueueScan(projectID string) (*models.Job, error) {
	job := models.NewJob(projectID, models.JobTypeScan)
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJobByID retrieves a job by ID
func (s *JobService) GetJobByID(id string) (*models.Job, error) {
	return s.jobRepo.GetByID(id)
}

// GetJobsByProjectID retrieves all jobs for a project
func (s *JobService) GetJobsByProjectID(projectID string) ([]*models.Job, error) {
	return s.jobRepo.GetByProjectID(projectID)
}
