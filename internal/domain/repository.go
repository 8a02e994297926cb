package domain

import "context"

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID, nil when absent
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// ListRecentQuizzes returns up to limit quizzes, newest first
	ListRecentQuizzes(ctx context.Context, limit int) ([]*Quiz, error)

	// UpdateGenerationOutcome stores the pipeline's detected subject, video
	// context, generated flag and model identifier on the quiz
	UpdateGenerationOutcome(ctx context.Context, quiz *Quiz) error
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// SaveQuestions persists all questions for a quiz in one batch
	SaveQuestions(ctx context.Context, questions []*Question) error

	// GetQuestionsByQuizID returns the quiz's questions in insertion order
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*Question, error)

	// CountByQuizID returns the number of questions owned by the quiz
	CountByQuizID(ctx context.Context, quizID string) (int, error)
}

// ProcessingJobRepository defines the interface for job-state persistence.
// UpdateStatus and its variants must refuse to modify a row whose status is
// already terminal.
type ProcessingJobRepository interface {
	// SaveJob persists a new job row in its initial state
	SaveJob(ctx context.Context, job *ProcessingJob) error

	// GetJobByID retrieves a job by its ID, nil when absent
	GetJobByID(ctx context.Context, id string) (*ProcessingJob, error)

	// GetLatestJobByQuizID retrieves the most recent job for a quiz, nil
	// when the quiz has none
	GetLatestJobByQuizID(ctx context.Context, quizID string) (*ProcessingJob, error)

	// UpdateProgress advances status and progress for a non-terminal job
	UpdateProgress(ctx context.Context, id string, status JobStatus, progress int) error

	// MarkCompleted finalizes a job with the generated question count and
	// model identifier
	MarkCompleted(ctx context.Context, id string, questionCount int, aiModel string) error

	// MarkFailed finalizes a job with an error message
	MarkFailed(ctx context.Context, id string, errorMessage string) error
}

// SessionRepository defines the interface for quiz session persistence
type SessionRepository interface {
	// SaveSession persists a scored session together with its answers
	SaveSession(ctx context.Context, session *QuizSession, answers []*StudentAnswer) error

	// GetSessionByID retrieves a session by its ID, nil when absent
	GetSessionByID(ctx context.Context, id string) (*QuizSession, error)
}

// TransactionManager runs a function inside a database transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
