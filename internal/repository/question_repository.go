package repository

import (
	"context"
	"fmt"
	"time"

	"vidquiz/internal/domain"
	"vidquiz/internal/repository/models"
	"vidquiz/internal/util"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// SaveQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	query := `INSERT INTO questions (
		id, quiz_id, question, type, options, correct_answer,
		explanation, difficulty, media_url, media_type, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11
	)`

	exec := GetExecutor(ctx, a.db)
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.CreatedAt = time.Now()

		_, err := exec.ExecContext(ctx, query,
			q.ID,
			q.QuizID,
			q.Question,
			q.Type,
			models.StringSlice(q.Options),
			q.CorrectAnswer,
			nullable(q.Explanation),
			q.Difficulty,
			nullable(q.MediaURL),
			nullable(q.MediaType),
			q.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question for quiz %s: %w", q.QuizID, err)
		}
	}
	return nil
}

// GetQuestionsByQuizID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		question "question",
		type "type",
		options "options",
		correct_answer "correct_answer",
		explanation "explanation",
		difficulty "difficulty",
		media_url "media_url",
		media_type "media_type",
		created_at "created_at"
	FROM questions
	WHERE quiz_id = :1
	ORDER BY created_at ASC, id ASC`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelQuestions, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

// CountByQuizID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountByQuizID(ctx context.Context, quizID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE quiz_id = :1`

	exec := GetExecutor(ctx, a.db)
	if err := exec.GetContext(ctx, &count, query, quizID); err != nil {
		return 0, fmt.Errorf("failed to count questions for quiz %s: %w", quizID, err)
	}
	return count, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Question:      m.Question,
		Type:          m.Type,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Difficulty:    m.Difficulty,
		MediaURL:      m.MediaURL.String,
		MediaType:     m.MediaType.String,
		CreatedAt:     m.CreatedAt,
	}
}
