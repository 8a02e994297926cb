package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/middleware"
	"vidquiz/internal/service"
	"vidquiz/internal/taskrunner"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memJobRepo is an in-memory ProcessingJobRepository for handler tests.
type memJobRepo struct {
	jobs map[string]*domain.ProcessingJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*domain.ProcessingJob)}
}

func (r *memJobRepo) SaveJob(ctx context.Context, job *domain.ProcessingJob) error {
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *memJobRepo) GetJobByID(ctx context.Context, id string) (*domain.ProcessingJob, error) {
	return r.jobs[id], nil
}

func (r *memJobRepo) GetLatestJobByQuizID(ctx context.Context, quizID string) (*domain.ProcessingJob, error) {
	var latest *domain.ProcessingJob
	for _, job := range r.jobs {
		if job.QuizID != quizID {
			continue
		}
		if latest == nil || job.CreatedAt.After(latest.CreatedAt) {
			latest = job
		}
	}
	return latest, nil
}

func (r *memJobRepo) UpdateProgress(ctx context.Context, id string, status domain.JobStatus, progress int) error {
	job, ok := r.jobs[id]
	if !ok {
		return domain.NewJobNotFoundError(id)
	}
	if job.Status.IsTerminal() {
		return domain.NewJobTerminalError(id, string(job.Status))
	}
	job.Status = status
	job.Progress = progress
	return nil
}

func (r *memJobRepo) MarkCompleted(ctx context.Context, id string, questionCount int, aiModel string) error {
	job, ok := r.jobs[id]
	if !ok {
		return domain.NewJobNotFoundError(id)
	}
	job.Status = domain.JobStatusCompleted
	job.Progress = domain.ProgressDone
	job.QuestionsGenerated = questionCount
	job.AIModel = aiModel
	return nil
}

func (r *memJobRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	job, ok := r.jobs[id]
	if !ok {
		return domain.NewJobNotFoundError(id)
	}
	job.Status = domain.JobStatusFailed
	job.ErrorMessage = errorMessage
	return nil
}

type memQuizRepo struct{}

func (memQuizRepo) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error             { return nil }
func (memQuizRepo) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) { return nil, nil }
func (memQuizRepo) ListRecentQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return nil, nil
}
func (memQuizRepo) UpdateGenerationOutcome(ctx context.Context, quiz *domain.Quiz) error { return nil }

type memQuestionRepo struct{}

func (memQuestionRepo) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	return nil
}
func (memQuestionRepo) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	return nil, nil
}
func (memQuestionRepo) CountByQuizID(ctx context.Context, quizID string) (int, error) {
	return 0, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedGenerator returns the same result for every request.
type fixedGenerator struct {
	result *domain.GenerationResult
}

func (g fixedGenerator) Generate(ctx context.Context, videoURL, difficultyLevel string, questionCount int) (*domain.GenerationResult, error) {
	return g.result, nil
}

func newTestApp(jobRepo *memJobRepo) *fiber.App {
	generator := fixedGenerator{result: &domain.GenerationResult{
		VideoContext:    "ctx",
		DetectedSubject: "programming",
		AIModel:         "model-a",
		Questions: []domain.GeneratedQuestion{
			{Question: "Q?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0, Difficulty: "beginner"},
		},
	}}

	svc := service.NewVideoProcessingService(
		jobRepo, memQuizRepo{}, memQuestionRepo{}, generator,
		passthroughTxManager{}, nil, taskrunner.SyncRunner{},
	)
	h := NewProcessingHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/api/video-process", h.StartProcessing)
	app.Get("/api/video-process", h.GetStatus)
	return app
}

func TestStartProcessing_Endpoint(t *testing.T) {
	jobRepo := newMemJobRepo()
	app := newTestApp(jobRepo)

	body, _ := json.Marshal(dto.StartProcessingRequest{
		QuizID:            "QUIZ1",
		VideoURL:          "https://example.com/v",
		DifficultyLevel:   "beginner",
		NumberOfQuestions: 2,
	})
	req := httptest.NewRequest("POST", "/api/video-process", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var accepted dto.StartProcessingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	assert.NotEmpty(t, accepted.ProcessingID)
	assert.Equal(t, "started", accepted.Status)

	// SyncRunner ran the body inline, so the stored job is already terminal.
	job := jobRepo.jobs[accepted.ProcessingID]
	require.NotNil(t, job)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, domain.ProgressDone, job.Progress)
}

func TestStartProcessing_MissingQuizID(t *testing.T) {
	app := newTestApp(newMemJobRepo())

	body := []byte(`{"videoUrl": "https://example.com/v"}`)
	req := httptest.NewRequest("POST", "/api/video-process", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetStatus_ByID_NotFound(t *testing.T) {
	app := newTestApp(newMemJobRepo())

	req := httptest.NewRequest("GET", "/api/video-process?id=NOPE", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetStatus_ByQuizID_AbsentReturnsNull(t *testing.T) {
	app := newTestApp(newMemJobRepo())

	req := httptest.NewRequest("GET", "/api/video-process?quizId=QUIZ1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "null", string(bytes.TrimSpace(raw)))
}

func TestGetStatus_NoQueryParams(t *testing.T) {
	app := newTestApp(newMemJobRepo())

	req := httptest.NewRequest("GET", "/api/video-process", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
