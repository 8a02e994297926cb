package handler

import (
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler exposes question generation as its own HTTP capability.
// The processing pipeline consumes it through this boundary, and operators
// can hit it directly to preview a generation.
type GenerationHandler struct {
	generator domain.QuestionGenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generator domain.QuestionGenerationService) *GenerationHandler {
	return &GenerationHandler{generator: generator}
}

// GenerateQuestions handles POST /api/generate.
func (h *GenerationHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if req.VideoURL == "" {
		return domain.NewValidationError("video URL is required")
	}
	if req.NumberOfQuestions <= 0 {
		req.NumberOfQuestions = 5
	}
	if req.DifficultyLevel == "" {
		req.DifficultyLevel = "intermediate"
	}

	result, err := h.generator.Generate(c.Context(), req.VideoURL, req.DifficultyLevel, req.NumberOfQuestions)
	if err != nil {
		// The generator degrades rather than fails; an error here means the
		// service itself is broken.
		return domain.NewLLMServiceError(err)
	}

	logger.Get().Info("Generated questions",
		zap.String("video_url", req.VideoURL),
		zap.String("ai_model", result.AIModel),
		zap.Int("question_count", len(result.Questions)),
	)

	return c.JSON(result)
}
