package resume

import (
	"time"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
)

// IngestRequest carries one uploaded document through the ingest pipeline.
type IngestRequest struct {
	ApplicationID kernel.ApplicationID
	CandidateID   kernel.CandidateID
	Filename      string
	Data          []byte
}

// StorageRef locates the original upload in object storage.
type StorageRef struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// IngestResponse is the public result of a successful ingest.
type IngestResponse struct {
	ResumeID         kernel.ResumeID `json:"resumeId"`
	ATSFormatScore   float64         `json:"ats_format_score"`
	Storage          StorageRef      `json:"storage"`
	ExtractionMethod string          `json:"extractionMethod"`
}

// ResumeResponse is the full read view of a stored record.
type ResumeResponse struct {
	ID               kernel.ResumeID      `json:"id"`
	ApplicationID    kernel.ApplicationID `json:"application_id"`
	CandidateID      kernel.CandidateID   `json:"candidate_id,omitempty"`
	Storage          StorageRef           `json:"storage"`
	Parsed           *resumeparse.Parsed  `json:"parsed,omitempty"`
	FormatScore      float64              `json:"format_score"`
	ExtractionMethod string               `json:"extraction_method"`
	ParserVersion    string               `json:"parser_version"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// QueueStats reports re-parse queue depth.
type QueueStats struct {
	QueueName   string `json:"queue_name"`
	ReadyJobs   int64  `json:"ready_jobs"`
	DelayedJobs int64  `json:"delayed_jobs"`
	TotalJobs   int64  `json:"total_jobs"`
}

// ReparseAccepted acknowledges an enqueued re-parse.
type ReparseAccepted struct {
	ResumeID kernel.ResumeID `json:"resume_id"`
	Status   string          `json:"status"`
}

// BulkReparseResponse reports how many stale records were enqueued.
type BulkReparseResponse struct {
	Enqueued int `json:"enqueued"`
}

// ToIngestResponse builds the public ingest view of a record.
func ToIngestResponse(r *ResumeRecord) *IngestResponse {
	return &IngestResponse{
		ResumeID:       r.ID,
		ATSFormatScore: r.FormatScore,
		Storage: StorageRef{
			Bucket: r.StorageBucket,
			Path:   r.StoragePath,
		},
		ExtractionMethod: r.ExtractionMethod,
	}
}

// ToResumeResponse builds the full read view of a record.
func ToResumeResponse(r *ResumeRecord) *ResumeResponse {
	return &ResumeResponse{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		CandidateID:   r.CandidateID,
		Storage: StorageRef{
			Bucket: r.StorageBucket,
			Path:   r.StoragePath,
		},
		Parsed:           r.Parsed,
		FormatScore:      r.FormatScore,
		ExtractionMethod: r.ExtractionMethod,
		ParserVersion:    r.ParserVersion,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
