package job

import (
	"time"

	"github.com/hireloop/screenline/pkg/kernel"
)

// Job is the hiring-side view the ranking engine needs: the description
// text and the required skill slugs. Full job CRUD lives elsewhere.
type Job struct {
	ID                 kernel.JobID       `db:"id" json:"id"`
	Title              string             `db:"title" json:"title"`
	DescriptionText    string             `db:"description_text" json:"description_text"`
	RequiredSkillSlugs []kernel.SkillSlug `db:"required_skill_slugs" json:"required_skill_slugs"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// HasRequiredSkills reports whether the job declares any required skills.
func (j *Job) HasRequiredSkills() bool {
	return len(j.RequiredSkillSlugs) > 0
}
