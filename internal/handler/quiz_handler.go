package handler

import (
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/middleware"
	"vidquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler exposes quiz CRUD and session submission.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz handles POST /api/quizzes.
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	quiz, err := h.quizService.CreateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toQuizResponse(quiz, nil))
}

// GetQuiz handles GET /api/quizzes/:id, returning the quiz with its questions.
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, questions, err := h.quizService.GetQuizWithQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toQuizResponse(quiz, questions))
}

// ListQuizzes handles GET /api/quizzes.
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListRecentQuizzes(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		responses = append(responses, toQuizResponse(q, nil))
	}
	return c.JSON(responses)
}

// SubmitSession handles POST /api/sessions. The student identity comes from
// the auth middleware.
func (h *QuizHandler) SubmitSession(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.UserIDKey).(string)
	if studentID == "" {
		return domain.NewValidationError("authenticated student is required")
	}

	var req dto.SubmitSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	session, err := h.quizService.SubmitSession(c.Context(), studentID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}

// GetSession handles GET /api/sessions/:id.
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.quizService.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func toQuizResponse(quiz *domain.Quiz, questions []*domain.Question) dto.QuizResponse {
	resp := dto.QuizResponse{
		ID:                 quiz.ID,
		Title:              quiz.Title,
		Subject:            quiz.Subject,
		Description:        quiz.Description,
		DifficultyLevel:    quiz.DifficultyLevel,
		TimeLimit:          quiz.TimeLimit,
		VideoURL:           quiz.VideoURL,
		VideoTitle:         quiz.VideoTitle,
		DetectedSubject:    quiz.DetectedSubject,
		VideoContext:       quiz.VideoContext,
		QuestionsGenerated: quiz.QuestionsGenerated,
		AIModel:            quiz.AIModel,
		CreatedAt:          quiz.CreatedAt,
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:            q.ID,
			Question:      q.Question,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
			MediaURL:      q.MediaURL,
			MediaType:     q.MediaType,
		})
	}
	return resp
}

func toSessionResponse(session *domain.QuizSession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:             session.ID,
		QuizID:         session.QuizID,
		StudentID:      session.StudentID,
		Score:          session.Score,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		TimeSpent:      session.TimeSpent,
		CompletedAt:    session.CompletedAt,
	}
}
