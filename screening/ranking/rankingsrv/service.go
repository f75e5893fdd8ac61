package rankingsrv

import (
	"context"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/pkg/logx"
	"github.com/hireloop/screenline/screening/job"
	"github.com/hireloop/screenline/screening/ranking"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

type Service struct {
	engine       *ranking.Engine
	jobRepo      job.Repository
	taxonomyRepo taxonomy.Repository
	resumeRepo   resume.Repository
}

// NewService creates a new ranking service
func NewService(
	engine *ranking.Engine,
	jobRepo job.Repository,
	taxonomyRepo taxonomy.Repository,
	resumeRepo resume.Repository,
) *Service {
	return &Service{
		engine:       engine,
		jobRepo:      jobRepo,
		taxonomyRepo: taxonomyRepo,
		resumeRepo:   resumeRepo,
	}
}

// RankJob ranks a job's resume pool. Job and taxonomy are fetched fresh on
// every request; fetch failures abort the whole ranking.
func (s *Service) RankJob(ctx context.Context, jobID kernel.JobID, opts ranking.Options) (*ranking.Response, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	entries, err := s.taxonomyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.resumeRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	ranked, err := s.engine.Rank(ctx, j, entries, pool, opts)
	if err != nil {
		return nil, err
	}

	logx.Infof("Ranked %d of %d resumes for job %s", len(ranked), len(pool), jobID)
	return &ranking.Response{
		OK:     true,
		JobID:  jobID.String(),
		Ranked: ranked,
	}, nil
}
