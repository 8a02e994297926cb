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

// SessionDatabaseAdapter implements domain.SessionRepository
type SessionDatabaseAdapter struct {
	db DBTX
}

// NewSessionDatabaseAdapter creates a new instance of SessionDatabaseAdapter
func NewSessionDatabaseAdapter(db DBTX) domain.SessionRepository {
	return &SessionDatabaseAdapter{db: db}
}

// SaveSession implements domain.SessionRepository. The session row and its
// answer rows are written with the same executor, so callers wrap this in
// TransactionManager.WithTransaction to make the write atomic.
func (a *SessionDatabaseAdapter) SaveSession(ctx context.Context, session *domain.QuizSession, answers []*domain.StudentAnswer) error {
	if session == nil {
		return fmt.Errorf("cannot save nil session")
	}
	if err := session.Validate(); err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = util.NewULID()
	}

	exec := GetExecutor(ctx, a.db)

	sessionQuery := `INSERT INTO quiz_sessions (
		id, student_id, quiz_id, score, total_questions, correct_answers,
		time_spent, started_at, completed_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := exec.ExecContext(ctx, sessionQuery,
		session.ID,
		session.StudentID,
		session.QuizID,
		session.Score,
		session.TotalQuestions,
		session.CorrectAnswers,
		session.TimeSpent,
		session.StartedAt,
		session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz session: %w", err)
	}

	answerQuery := `INSERT INTO student_answers (
		id, session_id, student_id, quiz_id, question_id, answer,
		is_correct, time_spent, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	for _, ans := range answers {
		if ans.ID == "" {
			ans.ID = util.NewULID()
		}
		ans.SessionID = session.ID
		ans.CreatedAt = time.Now()

		_, err := exec.ExecContext(ctx, answerQuery,
			ans.ID,
			ans.SessionID,
			ans.StudentID,
			ans.QuizID,
			ans.QuestionID,
			ans.Answer,
			boolToInt(ans.IsCorrect),
			ans.TimeSpent,
			ans.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save student answer: %w", err)
		}
	}

	return nil
}

// GetSessionByID implements domain.SessionRepository
func (a *SessionDatabaseAdapter) GetSessionByID(ctx context.Context, id string) (*domain.QuizSession, error) {
	var modelSession models.QuizSession
	query := `SELECT
		id "id",
		student_id "student_id",
		quiz_id "quiz_id",
		score "score",
		total_questions "total_questions",
		correct_answers "correct_answers",
		time_spent "time_spent",
		started_at "started_at",
		completed_at "completed_at"
	FROM quiz_sessions
	WHERE id = :1`

	exec := GetExecutor(ctx, a.db)
	err := exec.GetContext(ctx, &modelSession, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by ID %s: %w", id, err)
	}

	return &domain.QuizSession{
		ID:             modelSession.ID,
		StudentID:      modelSession.StudentID,
		QuizID:         modelSession.QuizID,
		Score:          modelSession.Score,
		TotalQuestions: modelSession.TotalQuestions,
		CorrectAnswers: modelSession.CorrectAnswers,
		TimeSpent:      modelSession.TimeSpent,
		StartedAt:      modelSession.StartedAt,
		CompletedAt:    modelSession.CompletedAt.Time,
	}, nil
}
