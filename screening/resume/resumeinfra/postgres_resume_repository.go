package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/resume"
)

// PostgresResumeRepository implements resume.Repository using PostgreSQL
type PostgresResumeRepository struct {
	db *sqlx.DB
}

// NewPostgresResumeRepository creates a new PostgreSQL resume repository
func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type resumeModel struct {
	ID               string          `db:"id"`
	ApplicationID    string          `db:"application_id"`
	CandidateID      sql.NullString  `db:"candidate_id"`
	StorageBucket    string          `db:"storage_bucket"`
	StoragePath      string          `db:"storage_path"`
	RawText          string          `db:"raw_text"`
	Parsed           json.RawMessage `db:"parsed"`
	FormatScore      float64         `db:"format_score"`
	ExtractionMethod string          `db:"extraction_method"`
	ParserVersion    string          `db:"parser_version"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *resumeModel) toEntity() (*resume.ResumeRecord, error) {
	record := &resume.ResumeRecord{
		ID:               kernel.ResumeID(m.ID),
		ApplicationID:    kernel.ApplicationID(m.ApplicationID),
		StorageBucket:    m.StorageBucket,
		StoragePath:      m.StoragePath,
		RawText:          m.RawText,
		FormatScore:      m.FormatScore,
		ExtractionMethod: m.ExtractionMethod,
		ParserVersion:    m.ParserVersion,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.CandidateID.Valid {
		record.CandidateID = kernel.CandidateID(m.CandidateID.String)
	}

	if len(m.Parsed) > 0 {
		var parsed resumeparse.Parsed
		if err := json.Unmarshal(m.Parsed, &parsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parsed snapshot for %s: %w", m.ID, err)
		}
		record.Parsed = &parsed
	}

	return record, nil
}

// fromEntity converts domain entity to database model
func fromEntity(r *resume.ResumeRecord) (*resumeModel, error) {
	parsed, err := json.Marshal(r.Parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed snapshot: %w", err)
	}

	model := &resumeModel{
		ID:               r.ID.String(),
		ApplicationID:    r.ApplicationID.String(),
		StorageBucket:    r.StorageBucket,
		StoragePath:      r.StoragePath,
		RawText:          r.RawText,
		Parsed:           parsed,
		FormatScore:      r.FormatScore,
		ExtractionMethod: r.ExtractionMethod,
		ParserVersion:    r.ParserVersion,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if !r.CandidateID.IsEmpty() {
		model.CandidateID = sql.NullString{String: r.CandidateID.String(), Valid: true}
	}

	return model, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new resume record
func (r *PostgresResumeRepository) Create(ctx context.Context, record *resume.ResumeRecord) error {
	model, err := fromEntity(record)
	if err != nil {
		return resume.ErrPersistFailed(err)
	}

	query := `
		INSERT INTO resume_records (
			id, application_id, candidate_id, storage_bucket, storage_path,
			raw_text, parsed, format_score, extraction_method, parser_version,
			created_at, updated_at
		) VALUES (
			:id, :application_id, :candidate_id, :storage_bucket, :storage_path,
			:raw_text, :parsed, :format_score, :extraction_method, :parser_version,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return resume.ErrPersistFailed(err).
				WithDetail("resume_id", record.ID.String()).
				WithDetail("reason", "duplicate id")
		}
		return resume.ErrPersistFailed(err)
	}

	return nil
}

// GetByID retrieves a resume record by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.ResumeRecord, error) {
	query := `
		SELECT id, application_id, candidate_id, storage_bucket, storage_path,
		       raw_text, parsed, format_score, extraction_method, parser_version,
		       created_at, updated_at
		FROM resume_records
		WHERE id = $1
	`

	var model resumeModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, resume.ErrPersistFailed(err)
	}

	return model.toEntity()
}

// UpdateParse replaces the parsed snapshot of an existing record
func (r *PostgresResumeRepository) UpdateParse(ctx context.Context, id kernel.ResumeID, parsed *resumeparse.Parsed, formatScore float64, parserVersion string) error {
	data, err := json.Marshal(parsed)
	if err != nil {
		return resume.ErrPersistFailed(fmt.Errorf("failed to marshal parsed snapshot: %w", err))
	}

	query := `
		UPDATE resume_records
		SET parsed = $2, format_score = $3, parser_version = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id.String(), data, formatScore, parserVersion, time.Now())
	if err != nil {
		return resume.ErrPersistFailed(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return resume.ErrPersistFailed(err)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}

	return nil
}

// ListByJob retrieves the resume pool for a job's applications, newest-first
func (r *PostgresResumeRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*resume.ResumeRecord, error) {
	query := `
		SELECT rr.id, rr.application_id, rr.candidate_id, rr.storage_bucket, rr.storage_path,
		       rr.raw_text, rr.parsed, rr.format_score, rr.extraction_method, rr.parser_version,
		       rr.created_at, rr.updated_at
		FROM resume_records rr
		JOIN applications a ON a.id = rr.application_id
		WHERE a.job_id = $1
		ORDER BY rr.created_at DESC
	`

	var models []resumeModel
	if err := r.db.SelectContext(ctx, &models, query, jobID.String()); err != nil {
		return nil, resume.ErrPersistFailed(err)
	}

	records := make([]*resume.ResumeRecord, 0, len(models))
	for i := range models {
		record, err := models[i].toEntity()
		if err != nil {
			return nil, resume.ErrPersistFailed(err)
		}
		records = append(records, record)
	}

	return records, nil
}

// ListStale returns IDs of records parsed under a version other than the given one
func (r *PostgresResumeRepository) ListStale(ctx context.Context, currentVersion string, limit int) ([]kernel.ResumeID, error) {
	query := `
		SELECT id
		FROM resume_records
		WHERE parser_version <> $1
		ORDER BY created_at
		LIMIT $2
	`

	var raw []string
	if err := r.db.SelectContext(ctx, &raw, query, currentVersion, limit); err != nil {
		return nil, resume.ErrPersistFailed(err)
	}

	ids := make([]kernel.ResumeID, 0, len(raw))
	for _, s := range raw {
		ids = append(ids, kernel.ResumeID(s))
	}
	return ids, nil
}

// List retrieves resume records with pagination
func (r *PostgresResumeRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ResumeRecord], error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM resume_records`); err != nil {
		return nil, resume.ErrPersistFailed(err)
	}

	query := `
		SELECT id, application_id, candidate_id, storage_bucket, storage_path,
		       raw_text, parsed, format_score, extraction_method, parser_version,
		       created_at, updated_at
		FROM resume_records
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []resumeModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.Limit(), pagination.Offset()); err != nil {
		return nil, resume.ErrPersistFailed(err)
	}

	records := make([]resume.ResumeRecord, 0, len(models))
	for i := range models {
		record, err := models[i].toEntity()
		if err != nil {
			return nil, resume.ErrPersistFailed(err)
		}
		records = append(records, *record)
	}

	return kernel.NewPaginated(records, pagination, total), nil
}
