package workers

import (
	"context"
	"time"

	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/canmap/canmap/pkg/logger"
)

// ScanWorker processes author scan jobs: it walks a project repository's
// commit log and stores every recorded identity with its resolved form.
type ScanWorker struct {
	*BaseWorker
	jobRepo        *repositories.JobRepository
	resolveService *services.ResolveService
}

// NewScanWorker creates a new scan worker
func NewScanWorker(workerID string, jobRepo *repositories.JobRepository, resolveService *services.ResolveService) *ScanWorker {
	return &ScanWorker{
		BaseWorker:     NewBaseWorker(workerID, models.JobTypeScan),
		jobRepo:        jobRepo,
		resolveService: resolveService,
	}
}

// Start begins the scan worker process
func (w *ScanWorker) Start(ctx context.Context) error {
	w.Running = true
	log := logger.WithComponent("scan-worker").WithField("worker_id", w.WorkerID)
	log.Info("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopping due to context cancellation")
			return ctx.Err()
		case <-w.StopChan:
			log.Info("worker stopping")
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeScan)
			if err != nil {
				log.WithError(err).Error("failed to fetch next job")
				time.Sleep(5 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(10 * time.Second)
				continue
			}

			w.processScanJob(ctx, job)
		}
	}
}

// processScanJob runs one scan job to completion
func (w *ScanWorker) processScanJob(ctx context.Context, job *models.Job) {
	log := logger.WithComponent("scan-worker").WithField("worker_id", w.WorkerID).WithField("job_id", job.ID)
	log.Info("processing scan job")

	job.MarkStarted(w.WorkerID)
	if err := w.jobRepo.Update(job); err != nil {
		log.WithError(err).Error("failed to mark job started")
		return
	}

	scanned, err := w.resolveService.ScanAuthors(ctx, job.ProjectID)
	if err != nil {
		job.SetError(err.Error())
		job.MarkFailed()
		log.WithError(err).Error("scan job failed")
	} else {
		job.MarkCompleted()
		log.WithField("authors", scanned).Info("scan job completed")
	}

	if err := w.jobRepo.Update(job); err != nil {
		log.WithError(err).Error("failed to update job status")
	}
}
