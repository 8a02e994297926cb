package service

import (
	"context"
	"math"
	"time"

	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/logger"
	"vidquiz/internal/util"

	"go.uber.org/zap"
)

const defaultQuizListLimit = 20

// QuizService handles quiz CRUD and session scoring.
type QuizService struct {
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	sessionRepo  domain.SessionRepository
	txManager    domain.TransactionManager
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	sessionRepo domain.SessionRepository,
	txManager domain.TransactionManager,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
	}
}

// CreateQuiz persists a new quiz shell. Questions arrive later through the
// processing pipeline.
func (s *QuizService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*domain.Quiz, error) {
	quiz := domain.NewQuiz(req.Title, req.Subject, req.DifficultyLevel)
	quiz.Description = req.Description
	quiz.TimeLimit = req.TimeLimit
	quiz.VideoURL = req.VideoURL
	quiz.VideoTitle = req.VideoTitle
	quiz.VideoThumbnail = req.VideoThumbnail
	quiz.VideoDuration = req.VideoDuration

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	quiz.ID = util.NewULID()

	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("subject", quiz.Subject),
	)
	return quiz, nil
}

// GetQuizWithQuestions loads a quiz together with its question set.
func (s *QuizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*domain.Quiz, []*domain.Question, error) {
	if quizID == "" {
		return nil, nil, domain.NewValidationError("quiz ID is required")
	}
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, nil, domain.NewQuizNotFoundError(quizID)
	}
	questions, err := s.questionRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, nil, domain.NewInternalError("failed to load questions", err)
	}
	return quiz, questions, nil
}

// ListRecentQuizzes returns the newest quizzes. A non-positive limit falls
// back to the default page size.
func (s *QuizService) ListRecentQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	if limit <= 0 {
		limit = defaultQuizListLimit
	}
	quizzes, err := s.quizRepo.ListRecentQuizzes(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return quizzes, nil
}

// SubmitSession scores a student's answers against the quiz's stored
// questions and persists the session with its answer rows in one transaction.
func (s *QuizService) SubmitSession(ctx context.Context, studentID string, req *dto.SubmitSessionRequest) (*domain.QuizSession, error) {
	if studentID == "" {
		return nil, domain.NewValidationError("student ID is required")
	}
	if req.QuizID == "" {
		return nil, domain.NewValidationError("quiz ID is required")
	}
	if len(req.Answers) == 0 {
		return nil, domain.NewValidationError("at least one answer is required")
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	questions, err := s.questionRepo.GetQuestionsByQuizID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}
	correctByID := make(map[string]int, len(questions))
	for _, q := range questions {
		correctByID[q.ID] = q.CorrectAnswer
	}

	now := time.Now()
	session := &domain.QuizSession{
		ID:             util.NewULID(),
		StudentID:      studentID,
		QuizID:         req.QuizID,
		TotalQuestions: len(questions),
		TimeSpent:      req.TimeSpent,
		StartedAt:      now.Add(-time.Duration(req.TimeSpent) * time.Second),
		CompletedAt:    now,
	}

	answers := make([]*domain.StudentAnswer, 0, len(req.Answers))
	correct := 0
	for _, a := range req.Answers {
		expected, known := correctByID[a.QuestionID]
		if !known {
			return nil, domain.NewValidationError("answer references a question outside this quiz")
		}
		isCorrect := a.Answer == expected
		if isCorrect {
			correct++
		}
		answers = append(answers, &domain.StudentAnswer{
			ID:         util.NewULID(),
			SessionID:  session.ID,
			StudentID:  studentID,
			QuizID:     req.QuizID,
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
			IsCorrect:  isCorrect,
			TimeSpent:  a.TimeSpent,
			CreatedAt:  now,
		})
	}

	session.CorrectAnswers = correct
	if session.TotalQuestions > 0 {
		score := float64(correct) / float64(session.TotalQuestions) * 100
		session.Score = math.Round(score*100) / 100
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.sessionRepo.SaveSession(txCtx, session, answers)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to save quiz session", err)
	}

	logger.Get().Info("Quiz session recorded",
		zap.String("session_id", session.ID),
		zap.String("quiz_id", req.QuizID),
		zap.Float64("score", session.Score),
	)
	return session, nil
}

// GetSession loads a session by ID.
func (s *QuizService) GetSession(ctx context.Context, id string) (*domain.QuizSession, error) {
	if id == "" {
		return nil, domain.NewValidationError("session ID is required")
	}
	session, err := s.sessionRepo.GetSessionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewNotFoundError("session not found")
	}
	return session, nil
}
