package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidquiz/internal/cache"
	"vidquiz/internal/domain"
	"vidquiz/internal/logger"
	"vidquiz/internal/taskrunner"
	"vidquiz/internal/util"

	"go.uber.org/zap"
)

const (
	defaultDifficultyLevel = "intermediate"
	defaultQuestionCount   = 5
	maxQuestionCount       = 20

	statusCacheTTL = 5 * time.Minute
)

// VideoProcessingService owns the asynchronous video-to-quiz pipeline. A job
// is accepted in pending state and handed to the runner; its outcome is
// observable only through status polling.
type VideoProcessingService struct {
	jobRepo      domain.ProcessingJobRepository
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	generator    domain.QuestionGenerationService
	txManager    domain.TransactionManager
	statusCache  domain.Cache
	runner       taskrunner.Runner
}

// NewVideoProcessingService creates the pipeline service. statusCache may be
// nil, in which case every status read hits the database.
func NewVideoProcessingService(
	jobRepo domain.ProcessingJobRepository,
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	generator domain.QuestionGenerationService,
	txManager domain.TransactionManager,
	statusCache domain.Cache,
	runner taskrunner.Runner,
) *VideoProcessingService {
	return &VideoProcessingService{
		jobRepo:      jobRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		generator:    generator,
		txManager:    txManager,
		statusCache:  statusCache,
		runner:       runner,
	}
}

// StartProcessing validates the request, persists a pending job and schedules
// the detached job body. The returned job reflects the pending state; callers
// poll for progress.
func (s *VideoProcessingService) StartProcessing(ctx context.Context, quizID, videoURL, difficultyLevel string, questionCount int) (*domain.ProcessingJob, error) {
	if difficultyLevel == "" {
		difficultyLevel = defaultDifficultyLevel
	}
	if questionCount <= 0 {
		questionCount = defaultQuestionCount
	}
	if questionCount > maxQuestionCount {
		questionCount = maxQuestionCount
	}

	job := domain.NewProcessingJob(quizID, videoURL)
	if err := job.Validate(); err != nil {
		return nil, err
	}
	job.ID = util.NewULID()

	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		return nil, domain.NewInternalError("failed to save processing job", err)
	}
	s.cacheJobStatus(ctx, job)

	logger.Get().Info("Processing job accepted",
		zap.String("processing_id", job.ID),
		zap.String("quiz_id", quizID),
		zap.String("video_url", videoURL),
	)

	s.runner.Submit(func(ctx context.Context) {
		s.runJob(ctx, job.ID, quizID, videoURL, difficultyLevel, questionCount)
	})

	return job, nil
}

// GetStatusByJobID returns the job's current state. It returns a
// JobNotFoundError when no such job exists.
func (s *VideoProcessingService) GetStatusByJobID(ctx context.Context, id string) (*domain.ProcessingJob, error) {
	if id == "" {
		return nil, domain.NewValidationError("processing ID is required")
	}

	if cached := s.cachedJobStatus(ctx, id); cached != nil {
		return cached, nil
	}

	job, err := s.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load processing job", err)
	}
	if job == nil {
		return nil, domain.NewJobNotFoundError(id)
	}
	// Re-populating the cache from a read races the job body's invalidation
	// and can pin a stale snapshot for the full TTL; only immutable terminal
	// states are safe to store here.
	if job.Status.IsTerminal() {
		s.cacheJobStatus(ctx, job)
	}
	return job, nil
}

// GetStatusByQuizID returns the most recent job for the quiz, or nil when the
// quiz has never been processed. Absence is not an error here.
func (s *VideoProcessingService) GetStatusByQuizID(ctx context.Context, quizID string) (*domain.ProcessingJob, error) {
	if quizID == "" {
		return nil, domain.NewValidationError("quiz ID is required")
	}
	job, err := s.jobRepo.GetLatestJobByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load processing job", err)
	}
	return job, nil
}

// runJob is the detached job body. Every outcome, success or failure, ends in
// a terminal row so pollers never observe a stuck job. The one exception is a
// job some other path already finalized: the terminal guard rejects the write
// and the body stops without touching the row.
func (s *VideoProcessingService) runJob(ctx context.Context, jobID, quizID, videoURL, difficultyLevel string, questionCount int) {
	l := logger.Get().With(zap.String("processing_id", jobID), zap.String("quiz_id", quizID))

	if err := s.advance(ctx, jobID, domain.JobStatusProcessing, domain.ProgressStarted); err != nil {
		s.abort(ctx, jobID, "failed to move job into processing", err, l)
		return
	}

	result, err := s.generator.Generate(ctx, videoURL, difficultyLevel, questionCount)
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("question generation failed: %v", err))
		l.Error("Question generation failed", zap.Error(err))
		return
	}

	if err := s.advance(ctx, jobID, domain.JobStatusProcessing, domain.ProgressGenerated); err != nil {
		s.abort(ctx, jobID, "failed to record generation progress", err, l)
		return
	}

	questions := make([]*domain.Question, 0, len(result.Questions))
	for _, gq := range result.Questions {
		questions = append(questions, &domain.Question{
			ID:            util.NewULID(),
			QuizID:        quizID,
			Question:      gq.Question,
			Type:          domain.QuestionTypeMultipleChoice,
			Options:       gq.Options,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
			Difficulty:    gq.Difficulty,
			MediaURL:      videoURL,
			MediaType:     "video",
			CreatedAt:     time.Now(),
		})
	}

	// Questions, the quiz outcome and the terminal status land atomically;
	// a completed job always has its questions visible.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.questionRepo.SaveQuestions(txCtx, questions); err != nil {
			return err
		}
		outcome := &domain.Quiz{
			ID:                 quizID,
			DetectedSubject:    result.DetectedSubject,
			VideoContext:       result.VideoContext,
			QuestionsGenerated: true,
			AIModel:            result.AIModel,
		}
		if err := s.quizRepo.UpdateGenerationOutcome(txCtx, outcome); err != nil {
			return err
		}
		return s.jobRepo.MarkCompleted(txCtx, jobID, len(questions), result.AIModel)
	})
	if err != nil {
		s.fail(ctx, jobID, fmt.Sprintf("failed to store generated questions: %v", err))
		l.Error("Failed to store generated questions", zap.Error(err))
		return
	}

	s.invalidateJobStatus(ctx, jobID)
	l.Info("Processing job completed",
		zap.Int("questions_generated", len(questions)),
		zap.String("ai_model", result.AIModel),
	)
}

// abort handles a failed progress write. A terminal-guard rejection means the
// row is already finalized and must not be touched; any other error still has
// to land the job in failed so it cannot stay stuck mid-flight.
func (s *VideoProcessingService) abort(ctx context.Context, jobID, message string, err error, l *zap.Logger) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodeJobTerminal {
		l.Warn("Job already terminal, stopping", zap.Error(err))
		return
	}
	l.Error("Job step failed", zap.String("step", message), zap.Error(err))
	s.fail(ctx, jobID, fmt.Sprintf("%s: %v", message, err))
}

func (s *VideoProcessingService) advance(ctx context.Context, jobID string, status domain.JobStatus, progress int) error {
	if err := s.jobRepo.UpdateProgress(ctx, jobID, status, progress); err != nil {
		return err
	}
	s.invalidateJobStatus(ctx, jobID)
	return nil
}

func (s *VideoProcessingService) fail(ctx context.Context, jobID, message string) {
	if err := s.jobRepo.MarkFailed(ctx, jobID, message); err != nil {
		logger.Get().Error("Failed to mark job as failed",
			zap.String("processing_id", jobID),
			zap.Error(err),
		)
	}
	s.invalidateJobStatus(ctx, jobID)
}

func statusCacheKey(jobID string) string {
	return cache.GenerateCacheKey("processing", "job", jobID)
}

func (s *VideoProcessingService) cacheJobStatus(ctx context.Context, job *domain.ProcessingJob) {
	if s.statusCache == nil {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.statusCache.Set(ctx, statusCacheKey(job.ID), string(payload), statusCacheTTL); err != nil {
		logger.Get().Warn("Failed to cache job status", zap.String("processing_id", job.ID), zap.Error(err))
	}
}

func (s *VideoProcessingService) cachedJobStatus(ctx context.Context, jobID string) *domain.ProcessingJob {
	if s.statusCache == nil {
		return nil
	}
	payload, err := s.statusCache.Get(ctx, statusCacheKey(jobID))
	if err != nil {
		return nil
	}
	var job domain.ProcessingJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil
	}
	return &job
}

func (s *VideoProcessingService) invalidateJobStatus(ctx context.Context, jobID string) {
	if s.statusCache == nil {
		return
	}
	if err := s.statusCache.Delete(ctx, statusCacheKey(jobID)); err != nil {
		logger.Get().Warn("Failed to invalidate job status cache", zap.String("processing_id", jobID), zap.Error(err))
	}
}
