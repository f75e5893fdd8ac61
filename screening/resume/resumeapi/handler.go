package resumeapi

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/resume/resumesrv"
)

// MaxUploadSize bounds uploads before any extraction work happens.
const MaxUploadSize = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type ResumeHandlers struct {
	service *resumesrv.Service
}

func NewResumeHandlers(service *resumesrv.Service) *ResumeHandlers {
	return &ResumeHandlers{
		service: service,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App) {
	resumes := app.Group("/api/v1/resumes")

	resumes.Post("/ingest", h.IngestResume)       // Upload, extract, parse, score
	resumes.Get("/queue/stats", h.GetQueueStats)  // Re-parse queue depth
	resumes.Post("/reparse", h.BulkReparse)       // Enqueue stale records
	resumes.Get("/", h.ListResumes)               // List with pagination
	resumes.Get("/:id", h.GetResume)              // Get by ID
	resumes.Post("/:id/reparse", h.ReparseResume) // Enqueue one record
}

// ============================================================================
// Ingest
// ============================================================================

// IngestResume ingests a resume from an uploaded file
// POST /api/v1/resumes/ingest
func (h *ResumeHandlers) IngestResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if file.Size > MaxUploadSize {
		return resume.ErrFileTooLarge().
			WithDetail("size", file.Size).
			WithDetail("max_size", MaxUploadSize)
	}

	// Reject unknown types before reading a byte of content.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return resume.ErrUnsupportedFormat().
			WithDetail("extension", ext).
			WithDetail("supported", []string{"pdf", "docx", "txt"})
	}

	applicationID := c.FormValue("application_id")
	if applicationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "application_id is required",
		})
	}
	candidateID := c.FormValue("candidate_id")

	uploaded, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer uploaded.Close()

	data, err := io.ReadAll(uploaded)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	response, err := h.service.Ingest(c.Context(), resume.IngestRequest{
		ApplicationID: kernel.NewApplicationID(applicationID),
		CandidateID:   kernel.NewCandidateID(candidateID),
		Filename:      file.Filename,
		Data:          data,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ============================================================================
// Read
// ============================================================================

// GetResume returns one resume record
// GET /api/v1/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	id := c.Params("id")

	response, err := h.service.GetResume(c.Context(), kernel.NewResumeID(id))
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListResumes returns resume records with pagination
// GET /api/v1/resumes?page=1&page_size=20
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := h.service.ListResumes(c.Context(), kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ============================================================================
// Re-parse
// ============================================================================

// ReparseResume enqueues one record for asynchronous re-parsing
// POST /api/v1/resumes/:id/reparse
func (h *ResumeHandlers) ReparseResume(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body)

	response, err := h.service.EnqueueReparse(c.Context(), kernel.NewResumeID(id), body.Reason)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}

// BulkReparse enqueues records parsed under an older parser version
// POST /api/v1/resumes/reparse?limit=100
func (h *ResumeHandlers) BulkReparse(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	response, err := h.service.EnqueueStaleReparse(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}

// GetQueueStats returns re-parse queue depth
// GET /api/v1/resumes/queue/stats
func (h *ResumeHandlers) GetQueueStats(c *fiber.Ctx) error {
	stats, err := h.service.QueueStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
