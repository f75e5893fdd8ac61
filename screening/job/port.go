package job

import (
	"context"

	"github.com/hireloop/screenline/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)
}
