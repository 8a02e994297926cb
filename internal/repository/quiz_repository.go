package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidquiz/internal/domain"
	"vidquiz/internal/repository/models"
	"vidquiz/internal/util"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx over Oracle
type QuizDatabaseAdapter struct {
	db DBTX
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db DBTX) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `
		id "id",
		title "title",
		subject "subject",
		description "description",
		difficulty_level "difficulty_level",
		time_limit "time_limit",
		video_url "video_url",
		video_title "video_title",
		video_thumbnail "video_thumbnail",
		video_duration "video_duration",
		detected_subject "detected_subject",
		video_context "video_context",
		questions_generated "questions_generated",
		ai_model "ai_model",
		created_at "created_at",
		updated_at "updated_at"`

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt

	query := `INSERT INTO quizzes (
		id, title, subject, description, difficulty_level, time_limit,
		video_url, video_title, video_thumbnail, video_duration,
		questions_generated, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13
	)`

	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, query,
		quiz.ID,
		quiz.Title,
		quiz.Subject,
		nullable(quiz.Description),
		quiz.DifficultyLevel,
		quiz.TimeLimit,
		nullable(quiz.VideoURL),
		nullable(quiz.VideoTitle),
		nullable(quiz.VideoThumbnail),
		nullable(quiz.VideoDuration),
		boolToInt(quiz.QuestionsGenerated),
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1`

	exec := GetExecutor(ctx, a.db)
	err := exec.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

// ListRecentQuizzes implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListRecentQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	var modelQuizzes []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	ORDER BY created_at DESC
	FETCH FIRST :1 ROWS ONLY`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelQuizzes, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// UpdateGenerationOutcome implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateGenerationOutcome(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("cannot update quiz with empty ID")
	}
	quiz.UpdatedAt = time.Now()

	query := `UPDATE quizzes SET
		detected_subject = :1,
		video_context = :2,
		questions_generated = :3,
		ai_model = :4,
		updated_at = :5
	WHERE id = :6`

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, query,
		nullable(quiz.DetectedSubject),
		nullable(quiz.VideoContext),
		boolToInt(quiz.QuestionsGenerated),
		nullable(quiz.AIModel),
		quiz.UpdatedAt,
		quiz.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz generation outcome: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(quiz.ID)
	}
	return nil
}

// Helper functions for model conversion
func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:                 m.ID,
		Title:              m.Title,
		Subject:            m.Subject,
		Description:        m.Description.String,
		DifficultyLevel:    m.DifficultyLevel,
		TimeLimit:          m.TimeLimit,
		VideoURL:           m.VideoURL.String,
		VideoTitle:         m.VideoTitle.String,
		VideoThumbnail:     m.VideoThumbnail.String,
		VideoDuration:      m.VideoDuration.String,
		DetectedSubject:    m.DetectedSubject.String,
		VideoContext:       m.VideoContext.String,
		QuestionsGenerated: m.QuestionsGenerated != 0,
		AIModel:            m.AIModel.String,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
