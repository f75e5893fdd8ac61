package taxonomyinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/taxonomy"
)

// PostgresTaxonomyRepository implements taxonomy.Repository using PostgreSQL
type PostgresTaxonomyRepository struct {
	db *sqlx.DB
}

// NewPostgresTaxonomyRepository creates a new PostgreSQL taxonomy repository
func NewPostgresTaxonomyRepository(db *sqlx.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{
		db: db,
	}
}

type taxonomyModel struct {
	Slug          string          `db:"slug"`
	Aliases       json.RawMessage `db:"aliases"`
	LocaleAliases json.RawMessage `db:"locale_aliases"`
	Kind          *string         `db:"kind"`
	Weight        *float64        `db:"weight"`
}

// toEntity converts database model to domain entity
func (m *taxonomyModel) toEntity() (taxonomy.Entry, error) {
	entry := taxonomy.Entry{
		Slug: kernel.SkillSlug(m.Slug),
	}

	if len(m.Aliases) > 0 {
		if err := json.Unmarshal(m.Aliases, &entry.Aliases); err != nil {
			return taxonomy.Entry{}, fmt.Errorf("failed to unmarshal aliases for %s: %w", m.Slug, err)
		}
	}
	if len(m.LocaleAliases) > 0 {
		if err := json.Unmarshal(m.LocaleAliases, &entry.LocaleAliases); err != nil {
			return taxonomy.Entry{}, fmt.Errorf("failed to unmarshal locale aliases for %s: %w", m.Slug, err)
		}
	}

	if m.Kind != nil {
		entry.Kind = taxonomy.Kind(*m.Kind)
	}
	if m.Weight != nil {
		entry.Weight = *m.Weight
	}

	return entry, nil
}

// ListAll returns every taxonomy entry, ordered by slug for determinism
func (r *PostgresTaxonomyRepository) ListAll(ctx context.Context) ([]taxonomy.Entry, error) {
	query := `
		SELECT slug, aliases, locale_aliases, kind, weight
		FROM skill_taxonomy
		ORDER BY slug
	`

	var models []taxonomyModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, taxonomy.ErrFetchFailed(err)
	}

	entries := make([]taxonomy.Entry, 0, len(models))
	for i := range models {
		entry, err := models[i].toEntity()
		if err != nil {
			return nil, taxonomy.ErrFetchFailed(err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
