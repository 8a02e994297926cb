package domain

import "time"

// JobStatus enumerates the lifecycle states of a processing job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Progress checkpoints written by the job body, in increasing order.
const (
	ProgressStarted   = 10
	ProgressGenerated = 50
	ProgressDone      = 100
)

// IsTerminal reports whether the status is final. A terminal job is never
// transitioned again.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ProcessingJob tracks one asynchronous video-to-quiz generation job.
// Rows are created in pending and mutated only by the pipeline that owns them.
type ProcessingJob struct {
	ID                 string
	QuizID             string
	VideoURL           string
	Status             JobStatus
	Progress           int // 0-100
	ErrorMessage       string
	QuestionsGenerated int
	AIModel            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewProcessingJob creates a job record in its initial state.
func NewProcessingJob(quizID, videoURL string) *ProcessingJob {
	now := time.Now()
	return &ProcessingJob{
		QuizID:    quizID,
		VideoURL:  videoURL,
		Status:    JobStatusPending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the processing job
func (j *ProcessingJob) Validate() error {
	if j.QuizID == "" {
		return NewValidationError("quiz ID is required")
	}
	if j.VideoURL == "" {
		return NewValidationError("video URL is required")
	}
	return nil
}
