package domain

import "context"

// GeneratedQuestion is one question candidate produced by the generator.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// GenerationResult is the full generator output for one video reference.
type GenerationResult struct {
	VideoContext    string              `json:"videoContext"`
	DetectedSubject string              `json:"detectedSubject"`
	AIModel         string              `json:"aiModel"`
	Questions       []GeneratedQuestion `json:"questions"`
}

// QuestionGenerationService turns a video reference plus generation
// parameters into a validated question set. Implementations must not fail:
// when every model backend is exhausted they degrade to a deterministic
// fallback bank and still return a schema-valid result.
type QuestionGenerationService interface {
	Generate(ctx context.Context, videoURL, difficultyLevel string, questionCount int) (*GenerationResult, error)
}

// TextProvider is a single text-generation backend with a uniform prompt
// contract. Providers are tried in a fixed preference order by the generator;
// adding or removing one never touches the orchestration logic.
type TextProvider interface {
	// Name identifies the backend, e.g. the OpenRouter model slug.
	Name() string
	// Complete sends the system and user prompts and returns the raw
	// completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
