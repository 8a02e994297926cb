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

// ProcessingJobDatabaseAdapter implements domain.ProcessingJobRepository.
// Every mutating query carries a status guard so a terminal row ('completed'
// or 'failed') can never be written again.
type ProcessingJobDatabaseAdapter struct {
	db DBTX
}

// NewProcessingJobDatabaseAdapter creates a new instance of ProcessingJobDatabaseAdapter
func NewProcessingJobDatabaseAdapter(db DBTX) domain.ProcessingJobRepository {
	return &ProcessingJobDatabaseAdapter{db: db}
}

const processingColumns = `
		id "id",
		quiz_id "quiz_id",
		video_url "video_url",
		status "status",
		progress "progress",
		error_message "error_message",
		questions_generated "questions_generated",
		ai_model "ai_model",
		created_at "created_at",
		updated_at "updated_at"`

const statusNotTerminal = `status NOT IN ('completed', 'failed')`

// SaveJob implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) SaveJob(ctx context.Context, job *domain.ProcessingJob) error {
	if job == nil {
		return fmt.Errorf("cannot save nil processing job")
	}
	if err := job.Validate(); err != nil {
		return err
	}
	if job.ID == "" {
		job.ID = util.NewULID()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	query := `INSERT INTO video_processing (
		id, quiz_id, video_url, status, progress, questions_generated,
		created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, query,
		job.ID,
		job.QuizID,
		job.VideoURL,
		string(job.Status),
		job.Progress,
		job.QuestionsGenerated,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save processing job: %w", err)
	}
	return nil
}

// GetJobByID implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) GetJobByID(ctx context.Context, id string) (*domain.ProcessingJob, error) {
	var modelJob models.VideoProcessing
	query := `SELECT ` + processingColumns + `
	FROM video_processing
	WHERE id = :1`

	exec := GetExecutor(ctx, a.db)
	err := exec.GetContext(ctx, &modelJob, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get processing job by ID %s: %w", id, err)
	}
	return toDomainProcessingJob(&modelJob), nil
}

// GetLatestJobByQuizID implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) GetLatestJobByQuizID(ctx context.Context, quizID string) (*domain.ProcessingJob, error) {
	var modelJob models.VideoProcessing
	query := `SELECT ` + processingColumns + `
	FROM video_processing
	WHERE quiz_id = :1
	ORDER BY created_at DESC
	FETCH FIRST 1 ROWS ONLY`

	exec := GetExecutor(ctx, a.db)
	err := exec.GetContext(ctx, &modelJob, query, quizID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get processing job for quiz %s: %w", quizID, err)
	}
	return toDomainProcessingJob(&modelJob), nil
}

// UpdateProgress implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) UpdateProgress(ctx context.Context, id string, status domain.JobStatus, progress int) error {
	query := `UPDATE video_processing SET
		status = :1,
		progress = :2,
		updated_at = :3
	WHERE id = :4
	AND ` + statusNotTerminal

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, query, string(status), progress, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update progress for job %s: %w", id, err)
	}
	return a.checkGuardedUpdate(ctx, result, id)
}

// MarkCompleted implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) MarkCompleted(ctx context.Context, id string, questionCount int, aiModel string) error {
	query := `UPDATE video_processing SET
		status = :1,
		progress = :2,
		questions_generated = :3,
		ai_model = :4,
		updated_at = :5
	WHERE id = :6
	AND ` + statusNotTerminal

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, query,
		string(domain.JobStatusCompleted),
		domain.ProgressDone,
		questionCount,
		nullable(aiModel),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job %s completed: %w", id, err)
	}
	return a.checkGuardedUpdate(ctx, result, id)
}

// MarkFailed implements domain.ProcessingJobRepository
func (a *ProcessingJobDatabaseAdapter) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := `UPDATE video_processing SET
		status = :1,
		error_message = :2,
		updated_at = :3
	WHERE id = :4
	AND ` + statusNotTerminal

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, query,
		string(domain.JobStatusFailed),
		nullable(errorMessage),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job %s failed: %w", id, err)
	}
	return a.checkGuardedUpdate(ctx, result, id)
}

// checkGuardedUpdate distinguishes a missing row from a terminal one when a
// guarded UPDATE touched nothing.
func (a *ProcessingJobDatabaseAdapter) checkGuardedUpdate(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	job, err := a.GetJobByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.NewJobNotFoundError(id)
	}
	return domain.NewJobTerminalError(id, string(job.Status))
}

func toDomainProcessingJob(m *models.VideoProcessing) *domain.ProcessingJob {
	return &domain.ProcessingJob{
		ID:                 m.ID,
		QuizID:             m.QuizID,
		VideoURL:           m.VideoURL,
		Status:             domain.JobStatus(m.Status),
		Progress:           m.Progress,
		ErrorMessage:       m.ErrorMessage.String,
		QuestionsGenerated: m.QuestionsGenerated,
		AIModel:            m.AIModel.String,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
