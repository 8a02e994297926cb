package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusIsTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.IsTerminal())
	assert.False(t, JobStatusProcessing.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
}

func TestNewProcessingJob(t *testing.T) {
	job := NewProcessingJob("QUIZ1", "https://example.com/v")
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.NoError(t, job.Validate())
}

func TestProcessingJobValidate(t *testing.T) {
	job := NewProcessingJob("", "https://example.com/v")
	err := job.Validate()
	assert.Error(t, err)

	job = NewProcessingJob("QUIZ1", "")
	err = job.Validate()
	assert.Error(t, err)
}

func TestQuestionValidate(t *testing.T) {
	valid := &Question{
		QuizID:        "QUIZ1",
		Question:      "Q?",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: 3,
	}
	assert.NoError(t, valid.Validate())

	badOptions := &Question{QuizID: "QUIZ1", Question: "Q?", Options: []string{"A", "B"}}
	assert.Error(t, badOptions.Validate())

	badIndex := &Question{QuizID: "QUIZ1", Question: "Q?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 4}
	assert.Error(t, badIndex.Validate())

	negativeIndex := &Question{QuizID: "QUIZ1", Question: "Q?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: -1}
	assert.Error(t, negativeIndex.Validate())
}
