package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Quiz model for the quizzes table.
type Quiz struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	Subject            string         `db:"subject"`
	Description        sql.NullString `db:"description"`
	DifficultyLevel    string         `db:"difficulty_level"`
	TimeLimit          int            `db:"time_limit"`
	VideoURL           sql.NullString `db:"video_url"`
	VideoTitle         sql.NullString `db:"video_title"`
	VideoThumbnail     sql.NullString `db:"video_thumbnail"`
	VideoDuration      sql.NullString `db:"video_duration"`
	DetectedSubject    sql.NullString `db:"detected_subject"`
	VideoContext       sql.NullString `db:"video_context"`
	QuestionsGenerated int            `db:"questions_generated"` // NUMBER(1) boolean
	AIModel            sql.NullString `db:"ai_model"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Question model for the questions table. Options is stored as a JSON array;
// correct_answer is the zero-based option index.
type Question struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Question      string         `db:"question"`
	Type          string         `db:"type"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer int            `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Difficulty    string         `db:"difficulty"`
	MediaURL      sql.NullString `db:"media_url"`
	MediaType     sql.NullString `db:"media_type"`
	CreatedAt     time.Time      `db:"created_at"`
}

// VideoProcessing model for the video_processing table.
type VideoProcessing struct {
	ID                 string         `db:"id"`
	QuizID             string         `db:"quiz_id"`
	VideoURL           string         `db:"video_url"`
	Status             string         `db:"status"`
	Progress           int            `db:"progress"`
	ErrorMessage       sql.NullString `db:"error_message"`
	QuestionsGenerated int            `db:"questions_generated"`
	AIModel            sql.NullString `db:"ai_model"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// QuizSession model for the quiz_sessions table.
type QuizSession struct {
	ID             string       `db:"id"`
	StudentID      string       `db:"student_id"`
	QuizID         string       `db:"quiz_id"`
	Score          float64      `db:"score"`
	TotalQuestions int          `db:"total_questions"`
	CorrectAnswers int          `db:"correct_answers"`
	TimeSpent      int          `db:"time_spent"`
	StartedAt      time.Time    `db:"started_at"`
	CompletedAt    sql.NullTime `db:"completed_at"`
}

// StudentAnswer model for the student_answers table.
type StudentAnswer struct {
	ID         string    `db:"id"`
	SessionID  string    `db:"session_id"`
	StudentID  string    `db:"student_id"`
	QuizID     string    `db:"quiz_id"`
	QuestionID string    `db:"question_id"`
	Answer     int       `db:"answer"`
	IsCorrect  int       `db:"is_correct"` // NUMBER(1) boolean
	TimeSpent  int       `db:"time_spent"`
	CreatedAt  time.Time `db:"created_at"`
}
