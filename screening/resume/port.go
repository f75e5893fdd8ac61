package resume

import (
	"context"
	"time"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
)

type Repository interface {
	// Create persists a new resume record
	Create(ctx context.Context, record *ResumeRecord) error

	// GetByID retrieves a resume record by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*ResumeRecord, error)

	// UpdateParse replaces the parsed snapshot of an existing record
	UpdateParse(ctx context.Context, id kernel.ResumeID, parsed *resumeparse.Parsed, formatScore float64, parserVersion string) error

	// ListByJob retrieves the resume pool for a job's applications,
	// newest-first by creation time
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*ResumeRecord, error)

	// ListStale returns IDs of records parsed under a version other than
	// the given one, up to limit
	ListStale(ctx context.Context, currentVersion string, limit int) ([]kernel.ResumeID, error)

	// List retrieves resume records with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ResumeRecord], error)
}

// ReparseQueue is the asynchronous re-parse pipeline.
type ReparseQueue interface {
	// Enqueue adds a re-parse job to the queue
	Enqueue(ctx context.Context, job *ReparseJob) error

	// Dequeue gets a job from the queue (blocking with timeout); a nil
	// payload with nil error means the wait timed out
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, job *ReparseJob, delay time.Duration) error

	// MoveDelayedToReady moves delayed jobs that are ready to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Stats returns queue depth counters
	Stats(ctx context.Context) (*QueueStats, error)
}
