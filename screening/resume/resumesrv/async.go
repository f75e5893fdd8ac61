package resumesrv

import (
	"context"
	"time"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/pkg/logx"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

const reparseRetryDelay = 2 * time.Minute

// ============================================================================
// Re-parse pipeline
// ============================================================================

// EnqueueReparse schedules one record for asynchronous re-parsing.
func (s *Service) EnqueueReparse(ctx context.Context, id kernel.ResumeID, reason string) (*resume.ReparseAccepted, error) {
	// Fail fast on unknown IDs instead of letting the worker discover it.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	job := &resume.ReparseJob{
		ResumeID:   id,
		Reason:     reason,
		EnqueuedAt: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, resume.ErrQueueEnqueueFailed(err).
			WithDetail("resume_id", id.String())
	}

	return &resume.ReparseAccepted{ResumeID: id, Status: "queued"}, nil
}

// EnqueueStaleReparse finds records parsed under an older parser version and
// enqueues them, up to limit.
func (s *Service) EnqueueStaleReparse(ctx context.Context, limit int) (*resume.BulkReparseResponse, error) {
	ids, err := s.repo.ListStale(ctx, resumeparse.Version, limit)
	if err != nil {
		return nil, err
	}

	enqueued := 0
	for _, id := range ids {
		job := &resume.ReparseJob{
			ResumeID:   id,
			Reason:     "parser version upgrade",
			EnqueuedAt: time.Now(),
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			return nil, resume.ErrQueueEnqueueFailed(err).
				WithDetail("resume_id", id.String()).
				WithDetail("enqueued_so_far", enqueued)
		}
		enqueued++
	}

	logx.Infof("Enqueued %d stale resumes for re-parse", enqueued)
	return &resume.BulkReparseResponse{Enqueued: enqueued}, nil
}

// ProcessReparseJob re-parses one record under a fresh taxonomy snapshot.
// The stored raw text is reused; if it is missing the original upload is
// re-downloaded and re-extracted first. Failures with retry budget left go
// back to the delayed queue.
func (s *Service) ProcessReparseJob(ctx context.Context, job *resume.ReparseJob) error {
	if err := s.reparse(ctx, job); err != nil {
		logx.Errorf("Re-parse of resume %s failed (attempt %d): %v", job.ResumeID, job.Attempts+1, err)

		job.Attempts++
		if job.CanRetry() {
			if qErr := s.queue.EnqueueDelayed(ctx, job, reparseRetryDelay); qErr != nil {
				logx.Errorf("Failed to schedule retry for resume %s: %v", job.ResumeID, qErr)
			}
		}
		return err
	}
	return nil
}

func (s *Service) reparse(ctx context.Context, job *resume.ReparseJob) error {
	record, err := s.repo.GetByID(ctx, job.ResumeID)
	if err != nil {
		return err
	}

	text := record.RawText
	if text == "" {
		data, err := s.DownloadOriginal(ctx, record)
		if err != nil {
			return err
		}
		extracted, err := s.extractor.Extract(ctx, record.StoragePath, data)
		if err != nil {
			return mapExtractionError(err, record.StoragePath)
		}
		text = extracted.Text
	}

	entries, err := s.taxonomyRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	parsed := resumeparse.Parse(text, taxonomy.ToParserSkills(entries))
	formatScore := resumeparse.FormatScore(parsed, s.weights)

	if err := s.repo.UpdateParse(ctx, record.ID, parsed, formatScore, parsed.Version); err != nil {
		return err
	}

	logx.Infof("Resume %s re-parsed to version %s, format score %.2f", record.ID, parsed.Version, formatScore)
	return nil
}

// QueueStats reports re-parse queue depth.
func (s *Service) QueueStats(ctx context.Context) (*resume.QueueStats, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		return nil, resume.ErrQueueStatsFailed(err)
	}
	return stats, nil
}
