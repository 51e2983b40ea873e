package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/canmap/canmap/pkg/logger"
)

// WorkerManager manages the pool of background workers
type WorkerManager struct {
	workers        []Worker
	jobRepo        *repositories.JobRepository
	resolveService *services.ResolveService
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(jobRepo *repositories.JobRepository, resolveService *services.ResolveService) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:        make([]Worker, 0),
		jobRepo:        jobRepo,
		resolveService: resolveService,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// StartAll starts the configured number of scan workers
func (wm *WorkerManager) StartAll(scanWorkers int) error {
	if scanWorkers < 1 {
		scanWorkers = 1
	}

	for i := 0; i < scanWorkers; i++ {
		worker := NewScanWorker(fmt.Sprintf("scan-%d", i+1), wm.jobRepo, wm.resolveService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	logger.Infof("Started %d workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	logger.Infof("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).Errorf("Error stopping worker %s", worker.GetWorkerID())
		}
	}

	wm.wg.Wait()
	logger.Infof("All workers stopped")
	return nil
}

// startWorker launches one worker in its own goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Errorf("Worker %s exited with error", worker.GetWorkerID())
		}
	}()
}
