package resumesrv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/screenline/internal/extract"
	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/fsx"
	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/pkg/logx"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

type Service struct {
	repo         resume.Repository
	taxonomyRepo taxonomy.Repository
	extractor    *extract.Extractor
	fileSystem   fsx.BucketFileSystem
	queue        resume.ReparseQueue
	weights      resumeparse.FormatWeights
}

// NewService creates a new resume service
func NewService(
	repo resume.Repository,
	taxonomyRepo taxonomy.Repository,
	extractor *extract.Extractor,
	fileSystem fsx.BucketFileSystem,
	queue resume.ReparseQueue,
) *Service {
	return &Service{
		repo:         repo,
		taxonomyRepo: taxonomyRepo,
		extractor:    extractor,
		fileSystem:   fileSystem,
		queue:        queue,
		weights:      resumeparse.DefaultFormatWeights(),
	}
}

// ============================================================================
// Ingest
// ============================================================================

// Ingest stores an uploaded document, extracts its text, parses it under a
// fresh taxonomy snapshot and persists the resulting record. Extraction
// failures abort the ingest; nothing partial is ever persisted.
func (s *Service) Ingest(ctx context.Context, req resume.IngestRequest) (*resume.IngestResponse, error) {
	logx.Infof("Starting resume ingest for application %s (%s, %d bytes)", req.ApplicationID, req.Filename, len(req.Data))

	// Persist the key the write reports, not the logical path: the store may
	// root objects under a base prefix, and the record's (bucket, path) must
	// resolve the object back via an explicit-bucket read.
	uploadPath := s.buildStoragePath(req)
	storagePath, err := s.fileSystem.WriteFile(ctx, uploadPath, req.Data)
	if err != nil {
		return nil, resume.ErrStorageUpload(err).
			WithDetail("path", uploadPath)
	}

	extracted, err := s.extractor.Extract(ctx, req.Filename, req.Data)
	if err != nil {
		return nil, mapExtractionError(err, req.Filename)
	}

	entries, err := s.taxonomyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	parsed := resumeparse.Parse(extracted.Text, taxonomy.ToParserSkills(entries))
	formatScore := resumeparse.FormatScore(parsed, s.weights)

	// A cancelled caller must not leave a partial record behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &resume.ResumeRecord{
		ID:               kernel.NewResumeID(uuid.New().String()),
		ApplicationID:    req.ApplicationID,
		CandidateID:      req.CandidateID,
		StorageBucket:    s.fileSystem.DefaultBucket(),
		StoragePath:      storagePath,
		RawText:          extracted.Text,
		Parsed:           parsed,
		FormatScore:      formatScore,
		ExtractionMethod: string(extracted.Method),
		ParserVersion:    parsed.Version,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	logx.Infof("Resume %s ingested via %s, format score %.2f", record.ID, record.ExtractionMethod, record.FormatScore)
	return resume.ToIngestResponse(record), nil
}

func (s *Service) buildStoragePath(req resume.IngestRequest) string {
	now := time.Now()
	return s.fileSystem.Join(
		"resumes",
		req.ApplicationID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.New().String()+"-"+req.Filename,
	)
}

// mapExtractionError translates extractor sentinels into actionable API
// errors; the user-facing message distinguishes re-uploadable problems from
// transient tooling ones.
func mapExtractionError(err error, filename string) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return resume.ErrUnsupportedFormat().
			WithDetail("filename", filename)
	case errors.Is(err, extract.ErrInsufficientText):
		return resume.ErrInsufficientText().
			WithDetail("filename", filename)
	case errors.Is(err, extract.ErrToolUnavailable):
		return resume.ErrToolUnavailable()
	case errors.Is(err, extract.ErrToolTimeout):
		return resume.ErrToolTimeout().
			WithDetail("filename", filename)
	default:
		return resume.ErrRegistry.NewWithCause(resume.CodeInsufficientText, err).
			WithDetail("filename", filename)
	}
}

// ============================================================================
// Read
// ============================================================================

// GetResume retrieves a resume record by ID
func (s *Service) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ResumeResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return resume.ToResumeResponse(record), nil
}

// ListResumes retrieves resume records with pagination
func (s *Service) ListResumes(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ResumeRecord], error) {
	return s.repo.List(ctx, pagination)
}

// ============================================================================
// Storage download with legacy-key fallback
// ============================================================================

// DownloadOriginal fetches the stored upload, tolerating records written
// under historical bucket layouts by trying a small ordered set of
// bucket/path variants before failing.
func (s *Service) DownloadOriginal(ctx context.Context, record *resume.ResumeRecord) ([]byte, error) {
	variants := storageVariants(record, s.fileSystem.DefaultBucket())

	var lastErr error
	for _, v := range variants {
		data, err := s.fileSystem.ReadFileFromBucket(ctx, v.Bucket, v.Path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fsx.ErrNotFound) {
			return nil, resume.ErrStorageDownload(err).
				WithDetail("bucket", v.Bucket).
				WithDetail("path", v.Path)
		}
		lastErr = err
	}

	return nil, resume.ErrStorageDownload(lastErr).
		WithDetail("bucket", record.StorageBucket).
		WithDetail("path", record.StoragePath).
		WithDetail("variants_tried", len(variants))
}

// storageVariants lists the (bucket, path) pairs to try, most likely first.
// Legacy rows stored the bucket as a path prefix rather than a column.
func storageVariants(record *resume.ResumeRecord, defaultBucket string) []resume.StorageRef {
	var variants []resume.StorageRef
	if record.StorageBucket != "" {
		variants = append(variants, resume.StorageRef{Bucket: record.StorageBucket, Path: record.StoragePath})
	}

	if record.StorageBucket != defaultBucket {
		variants = append(variants, resume.StorageRef{Bucket: defaultBucket, Path: record.StoragePath})
		if record.StorageBucket != "" {
			variants = append(variants, resume.StorageRef{Bucket: defaultBucket, Path: record.StorageBucket + "/" + record.StoragePath})
		}
	}

	return variants
}
