package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

type jobModel struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	DescriptionText    string         `db:"description_text"`
	RequiredSkillSlugs pq.StringArray `db:"required_skill_slugs"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	slugs := make([]kernel.SkillSlug, 0, len(m.RequiredSkillSlugs))
	for _, s := range m.RequiredSkillSlugs {
		slugs = append(slugs, kernel.SkillSlug(s))
	}

	return &job.Job{
		ID:                 kernel.JobID(m.ID),
		Title:              m.Title,
		DescriptionText:    m.DescriptionText,
		RequiredSkillSlugs: slugs,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `
		SELECT id, title, description_text, required_skill_slugs, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, job.ErrFetchFailed(err)
	}

	return model.toEntity(), nil
}
