package handler

import (
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/logger"
	"vidquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProcessingHandler exposes the asynchronous pipeline: start a job and poll
// its status.
type ProcessingHandler struct {
	processingService *service.VideoProcessingService
}

// NewProcessingHandler creates a new ProcessingHandler.
func NewProcessingHandler(processingService *service.VideoProcessingService) *ProcessingHandler {
	return &ProcessingHandler{processingService: processingService}
}

// StartProcessing handles POST /api/video-process. It accepts the job and
// returns immediately; the work runs detached.
func (h *ProcessingHandler) StartProcessing(c *fiber.Ctx) error {
	var req dto.StartProcessingRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	job, err := h.processingService.StartProcessing(
		c.Context(), req.QuizID, req.VideoURL, req.DifficultyLevel, req.NumberOfQuestions,
	)
	if err != nil {
		return err
	}

	logger.Get().Info("Accepted video processing request",
		zap.String("processing_id", job.ID),
		zap.String("quiz_id", req.QuizID),
	)

	// The wire status is "started" even though the row is pending; it
	// acknowledges acceptance, not job state.
	return c.JSON(dto.StartProcessingResponse{
		ProcessingID: job.ID,
		Status:       "started",
	})
}

// GetStatus handles GET /api/video-process. Lookup by id returns 404 when the
// job is unknown; lookup by quizId returns a JSON null body when the quiz has
// no job yet.
func (h *ProcessingHandler) GetStatus(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		job, err := h.processingService.GetStatusByJobID(c.Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(toStatusResponse(job))
	}

	if quizID := c.Query("quizId"); quizID != "" {
		job, err := h.processingService.GetStatusByQuizID(c.Context(), quizID)
		if err != nil {
			return err
		}
		if job == nil {
			return c.JSON(nil)
		}
		return c.JSON(toStatusResponse(job))
	}

	return domain.NewValidationError("either id or quizId query parameter is required")
}

func toStatusResponse(job *domain.ProcessingJob) dto.ProcessingStatusResponse {
	return dto.ProcessingStatusResponse{
		ID:                 job.ID,
		QuizID:             job.QuizID,
		VideoURL:           job.VideoURL,
		Status:             string(job.Status),
		Progress:           job.Progress,
		ErrorMessage:       job.ErrorMessage,
		QuestionsGenerated: job.QuestionsGenerated,
		AIModel:            job.AIModel,
		CreatedAt:          job.CreatedAt,
		UpdatedAt:          job.UpdatedAt,
	}
}
