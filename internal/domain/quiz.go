package domain

import (
	"time"
)

// QuestionTypeMultipleChoice is the only question type the platform models.
const QuestionTypeMultipleChoice = "multiple-choice"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Quiz represents a video-based assessment created by a mentor.
// DetectedSubject, VideoContext, QuestionsGenerated and AIModel are filled in
// by the processing pipeline once question generation completes.
type Quiz struct {
	ID                 string
	Title              string
	Subject            string
	Description        string
	DifficultyLevel    string
	TimeLimit          int // seconds, 0 means unlimited
	VideoURL           string
	VideoTitle         string
	VideoThumbnail     string
	VideoDuration      string
	DetectedSubject    string
	VideoContext       string
	QuestionsGenerated bool
	AIModel            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(title, subject, difficultyLevel string) *Quiz {
	now := time.Now()
	return &Quiz{
		Title:           title,
		Subject:         subject,
		DifficultyLevel: difficultyLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewValidationError("title is required")
	}
	if q.Subject == "" {
		return NewValidationError("subject is required")
	}
	if q.DifficultyLevel == "" {
		return NewValidationError("difficulty_level is required")
	}
	return nil
}

// Question represents one multiple-choice item owned by a quiz.
// CorrectAnswer is the zero-based index into Options; the index is the
// canonical representation everywhere in the system.
type Question struct {
	ID            string
	QuizID        string
	Question      string
	Type          string
	Options       []string
	CorrectAnswer int
	Explanation   string
	Difficulty    string
	MediaURL      string
	MediaType     string
	CreatedAt     time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewValidationError("quiz ID is required")
	}
	if q.Question == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) != OptionCount {
		return NewValidationError("question must have exactly 4 options")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return NewValidationError("correct answer must index one of the options")
	}
	return nil
}
