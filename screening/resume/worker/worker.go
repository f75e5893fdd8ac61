package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hireloop/screenline/pkg/logx"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/resume/resumesrv"
)

const (
	dequeueTimeout   = 5 * time.Second
	delayedMoveEvery = 30 * time.Second
)

// ReparseWorker drains the re-parse queue with a fixed pool of goroutines.
type ReparseWorker struct {
	service *resumesrv.Service
	queue   resume.ReparseQueue
	workers int
}

func NewReparseWorker(service *resumesrv.Service, queue resume.ReparseQueue, workers int) *ReparseWorker {
	return &ReparseWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *ReparseWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d re-parse workers", w.workers)

	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *ReparseWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Re-parse worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Re-parse worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				if ctx.Err() == nil {
					logx.Errorf("Re-parse worker %d dequeue error: %v", workerID, err)
				}
				continue
			}

			// Nil payload means the blocking wait timed out.
			if len(data) == 0 {
				continue
			}

			var job resume.ReparseJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Re-parse worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Re-parse worker %d processing resume %s", workerID, job.ResumeID)
			if err := w.service.ProcessReparseJob(ctx, &job); err != nil {
				logx.Errorf("Re-parse worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *ReparseWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(delayedMoveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed re-parse jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed re-parse jobs to ready queue", count)
			}
		}
	}
}
