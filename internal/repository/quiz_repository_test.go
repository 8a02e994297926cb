package repository

import (
	"context"
	"testing"
	"time"

	"vidquiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizRows(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "subject", "description", "difficulty_level", "time_limit",
		"video_url", "video_title", "video_thumbnail", "video_duration",
		"detected_subject", "video_context", "questions_generated", "ai_model",
		"created_at", "updated_at",
	}).AddRow(id, "Algebra Basics", "math", nil, "beginner", 0,
		"https://example.com/v", nil, nil, nil, "math", "ctx", 1, "model-a", now, now)
}

func TestSaveQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec("INSERT INTO quizzes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	quiz := domain.NewQuiz("Algebra Basics", "math", "beginner")
	err := repo.SaveQuiz(context.Background(), quiz)

	require.NoError(t, err)
	assert.NotEmpty(t, quiz.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery("SELECT .* FROM quizzes").
		WithArgs("QUIZ1").
		WillReturnRows(quizRows("QUIZ1"))

	quiz, err := repo.GetQuizByID(context.Background(), "QUIZ1")

	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "Algebra Basics", quiz.Title)
	assert.True(t, quiz.QuestionsGenerated)
	assert.Equal(t, "model-a", quiz.AIModel)
}

func TestGetQuizByID_AbsentReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery("SELECT .* FROM quizzes").
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	quiz, err := repo.GetQuizByID(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, quiz)
}

func TestUpdateGenerationOutcome_MissingQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec("UPDATE quizzes SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateGenerationOutcome(context.Background(), &domain.Quiz{ID: "NOPE"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}
