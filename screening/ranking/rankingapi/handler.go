package rankingapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/ranking"
	"github.com/hireloop/screenline/screening/ranking/rankingsrv"
)

type RankingHandlers struct {
	service *rankingsrv.Service
}

func NewRankingHandlers(service *rankingsrv.Service) *RankingHandlers {
	return &RankingHandlers{
		service: service,
	}
}

func (h *RankingHandlers) RegisterRoutes(app *fiber.App) {
	jobs := app.Group("/api/v1/jobs")

	jobs.Get("/:job_id/ranking", h.RankJob)
}

// RankJob ranks a job's resume pool
// GET /api/v1/jobs/:job_id/ranking?resume_id=&candidate_id=&include_all=
func (h *RankingHandlers) RankJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	opts := ranking.Options{
		ResumeID:    kernel.NewResumeID(c.Query("resume_id")),
		CandidateID: kernel.NewCandidateID(c.Query("candidate_id")),
		IncludeAll:  c.QueryBool("include_all"),
	}

	response, err := h.service.RankJob(c.Context(), kernel.NewJobID(jobID), opts)
	if err != nil {
		return err
	}

	return c.JSON(response)
}
