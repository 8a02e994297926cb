package dto

import "time"

// StartProcessingRequest is the request body for starting a processing job
type StartProcessingRequest struct {
	QuizID            string `json:"quizId"`
	VideoURL          string `json:"videoUrl"`
	DifficultyLevel   string `json:"difficultyLevel"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// StartProcessingResponse acknowledges an accepted processing job
type StartProcessingResponse struct {
	ProcessingID string `json:"processingId"`
	Status       string `json:"status"`
}

// ProcessingStatusResponse is the pollable view of a processing job
type ProcessingStatusResponse struct {
	ID                 string    `json:"id"`
	QuizID             string    `json:"quizId"`
	VideoURL           string    `json:"videoUrl"`
	Status             string    `json:"status"`
	Progress           int       `json:"progress"`
	ErrorMessage       string    `json:"errorMessage,omitempty"`
	QuestionsGenerated int       `json:"questionsGenerated"`
	AIModel            string    `json:"aiModel,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// GenerateQuestionsRequest is the request body of the generation endpoint
type GenerateQuestionsRequest struct {
	VideoURL          string `json:"videoUrl"`
	DifficultyLevel   string `json:"difficultyLevel"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}
