package domain

import "time"

// QuizSession records one student's run through a quiz.
type QuizSession struct {
	ID             string
	StudentID      string
	QuizID         string
	Score          float64 // percentage 0-100
	TotalQuestions int
	CorrectAnswers int
	TimeSpent      int // seconds
	StartedAt      time.Time
	CompletedAt    time.Time
}

// StudentAnswer is one answered question within a session. Answer holds the
// chosen option index; IsCorrect is derived against Question.CorrectAnswer at
// submission time.
type StudentAnswer struct {
	ID         string
	SessionID  string
	StudentID  string
	QuizID     string
	QuestionID string
	Answer     int
	IsCorrect  bool
	TimeSpent  int
	CreatedAt  time.Time
}

// Validate validates the session
func (s *QuizSession) Validate() error {
	if s.StudentID == "" {
		return NewValidationError("student ID is required")
	}
	if s.QuizID == "" {
		return NewValidationError("quiz ID is required")
	}
	return nil
}
