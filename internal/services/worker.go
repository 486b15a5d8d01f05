package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(feedbackID uuid.UUID)
}

type worker struct {
	feedbackRepo     repositories.FeedbackRepository
	evaluatorService EvaluatorService
	jobQueue         chan uuid.UUID
	concurrency      int
	pollInterval     time.Duration
	wg               sync.WaitGroup
	stopChan         chan struct{}
	stopOnce         sync.Once
}

func NewWorker(
	feedbackRepo repositories.FeedbackRepository,
	evaluatorService EvaluatorService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	return &worker{
		feedbackRepo:     feedbackRepo,
		evaluatorService: evaluatorService,
		jobQueue:         make(chan uuid.UUID, 100),
		concurrency:      concurrency,
		pollInterval:     pollInterval,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker. A full queue drops the id; the poller
// picks the row up again while it is still queued.
func (w *worker) EnqueueJob(feedbackID uuid.UUID) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️ Worker stopped, cannot enqueue job %s", feedbackID)
		return
	default:
	}

	select {
	case w.jobQueue <- feedbackID:
		log.Printf("📥 Job %s enqueued", feedbackID)
	case <-w.stopChan:
		log.Printf("⚠️ Worker stopped, cannot enqueue job %s", feedbackID)
	default:
		log.Printf("⚠️ Job queue full, job %s left for the poller", feedbackID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d stopped: %v", workerID, ctx.Err())
			return
		case feedbackID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s", workerID, feedbackID)
			if err := w.evaluatorService.EvaluateFeedback(ctx, feedbackID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v", workerID, feedbackID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s", workerID, feedbackID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.feedbackRepo.FindPendingJobs(ctx, 10)
			if err != nil {
				log.Printf("⚠️ Failed to fetch pending jobs: %v", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending jobs", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
