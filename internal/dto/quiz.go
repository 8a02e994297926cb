package dto

import "time"

// CreateQuizRequest is the request body for creating a quiz
type CreateQuizRequest struct {
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Description     string `json:"description,omitempty"`
	DifficultyLevel string `json:"difficultyLevel"`
	TimeLimit       int    `json:"timeLimit,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
	VideoTitle      string `json:"videoTitle,omitempty"`
	VideoThumbnail  string `json:"videoThumbnail,omitempty"`
	VideoDuration   string `json:"videoDuration,omitempty"`
}

// QuizResponse represents a quiz in the API response
type QuizResponse struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Subject            string             `json:"subject"`
	Description        string             `json:"description,omitempty"`
	DifficultyLevel    string             `json:"difficultyLevel"`
	TimeLimit          int                `json:"timeLimit"`
	VideoURL           string             `json:"videoUrl,omitempty"`
	VideoTitle         string             `json:"videoTitle,omitempty"`
	DetectedSubject    string             `json:"detectedSubject,omitempty"`
	VideoContext       string             `json:"videoContext,omitempty"`
	QuestionsGenerated bool               `json:"questionsGenerated"`
	AIModel            string             `json:"aiModel,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	Questions          []QuestionResponse `json:"questions,omitempty"`
}

// QuestionResponse represents a question in the API response.
// CorrectAnswer is the zero-based option index.
type QuestionResponse struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	MediaURL      string   `json:"mediaUrl,omitempty"`
	MediaType     string   `json:"mediaType,omitempty"`
}

// SubmitAnswer is one answered question within a session submission
type SubmitAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     int    `json:"answer"`
	TimeSpent  int    `json:"timeSpent,omitempty"`
}

// SubmitSessionRequest is the request body for submitting a quiz run
type SubmitSessionRequest struct {
	QuizID    string         `json:"quizId"`
	TimeSpent int            `json:"timeSpent,omitempty"`
	Answers   []SubmitAnswer `json:"answers"`
}

// SessionResponse is the scored result of a quiz run
type SessionResponse struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	StudentID      string    `json:"studentId"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	TimeSpent      int       `json:"timeSpent"`
	CompletedAt    time.Time `json:"completedAt"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
