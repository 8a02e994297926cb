package service

import (
	"context"
	"time"

	"vidquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockQuizRepository struct {
	mock.Mock
}

func (m *mockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *mockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizRepository) ListRecentQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	args := m.Called(ctx, limit)
	if quizzes := args.Get(0); quizzes != nil {
		return quizzes.([]*domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizRepository) UpdateGenerationOutcome(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

type mockQuestionRepository struct {
	mock.Mock
}

func (m *mockQuestionRepository) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *mockQuestionRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	args := m.Called(ctx, quizID)
	if questions := args.Get(0); questions != nil {
		return questions.([]*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuestionRepository) CountByQuizID(ctx context.Context, quizID string) (int, error) {
	args := m.Called(ctx, quizID)
	return args.Int(0), args.Error(1)
}

type mockProcessingJobRepository struct {
	mock.Mock
}

func (m *mockProcessingJobRepository) SaveJob(ctx context.Context, job *domain.ProcessingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockProcessingJobRepository) GetJobByID(ctx context.Context, id string) (*domain.ProcessingJob, error) {
	args := m.Called(ctx, id)
	if job := args.Get(0); job != nil {
		return job.(*domain.ProcessingJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProcessingJobRepository) GetLatestJobByQuizID(ctx context.Context, quizID string) (*domain.ProcessingJob, error) {
	args := m.Called(ctx, quizID)
	if job := args.Get(0); job != nil {
		return job.(*domain.ProcessingJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProcessingJobRepository) UpdateProgress(ctx context.Context, id string, status domain.JobStatus, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *mockProcessingJobRepository) MarkCompleted(ctx context.Context, id string, questionCount int, aiModel string) error {
	args := m.Called(ctx, id, questionCount, aiModel)
	return args.Error(0)
}

func (m *mockProcessingJobRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) SaveSession(ctx context.Context, session *domain.QuizSession, answers []*domain.StudentAnswer) error {
	args := m.Called(ctx, session, answers)
	return args.Error(0)
}

func (m *mockSessionRepository) GetSessionByID(ctx context.Context, id string) (*domain.QuizSession, error) {
	args := m.Called(ctx, id)
	if session := args.Get(0); session != nil {
		return session.(*domain.QuizSession), args.Error(1)
	}
	return nil, args.Error(1)
}

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingCache is an in-memory domain.Cache that keeps a log of writes.
type recordingCache struct {
	values map[string]string
	sets   []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: make(map[string]string)}
}

func (c *recordingCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := c.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.values[key] = value
	c.sets = append(c.sets, key)
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *recordingCache) Ping(ctx context.Context) error { return nil }

type mockGenerationService struct {
	mock.Mock
}

func (m *mockGenerationService) Generate(ctx context.Context, videoURL, difficultyLevel string, questionCount int) (*domain.GenerationResult, error) {
	args := m.Called(ctx, videoURL, difficultyLevel, questionCount)
	if result := args.Get(0); result != nil {
		return result.(*domain.GenerationResult), args.Error(1)
	}
	return nil, args.Error(1)
}
