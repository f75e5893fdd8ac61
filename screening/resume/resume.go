package resume

import (
	"time"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
)

// ResumeRecord is one successfully ingested resume. A candidate accumulates
// one record per upload; "latest" means max CreatedAt per candidate.
type ResumeRecord struct {
	ID            kernel.ResumeID      `db:"id" json:"id"`
	ApplicationID kernel.ApplicationID `db:"application_id" json:"application_id"`

	// CandidateID may be empty for legacy rows; dedup then falls back to a
	// per-application synthetic key.
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id,omitempty"`

	// Storage location of the original upload.
	StorageBucket string `db:"storage_bucket" json:"storage_bucket"`
	StoragePath   string `db:"storage_path" json:"storage_path"`

	// RawText is the extracted plain text; Parsed the feature snapshot
	// derived from it under the taxonomy current at parse time.
	RawText string              `db:"raw_text" json:"-"`
	Parsed  *resumeparse.Parsed `db:"parsed" json:"parsed,omitempty"`

	FormatScore      float64 `db:"format_score" json:"format_score"`
	ExtractionMethod string  `db:"extraction_method" json:"extraction_method"`
	ParserVersion    string  `db:"parser_version" json:"parser_version"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DedupKey returns the candidate identity used to collapse re-uploads.
// Records without a candidate fall back to a per-application key so
// unrelated anonymous uploads are never merged.
func (r *ResumeRecord) DedupKey() string {
	if !r.CandidateID.IsEmpty() {
		return "cand:" + r.CandidateID.String()
	}
	return "app:" + r.ApplicationID.String()
}

// NeedsReparse reports whether the stored snapshot predates the current
// parser version.
func (r *ResumeRecord) NeedsReparse() bool {
	return r.ParserVersion != resumeparse.Version
}

// ReparseJob is the queue payload for asynchronous re-parsing. The stored
// raw text is re-parsed under a fresh taxonomy snapshot; the original file
// is not re-downloaded.
type ReparseJob struct {
	ResumeID   kernel.ResumeID `json:"resume_id"`
	Reason     string          `json:"reason,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Attempts   int             `json:"attempts"`
}

const MaxReparseAttempts = 3

// CanRetry reports whether the job has retry budget left.
func (j *ReparseJob) CanRetry() bool {
	return j.Attempts < MaxReparseAttempts
}
