package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vidquiz/internal/domain"
)

// Client calls the question-generation endpoint over HTTP and implements
// domain.QuestionGenerationService for the processing pipeline. The pipeline
// never talks to model backends directly; this request/response boundary is
// all it sees.
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient creates a generation client for the given endpoint URL.
func NewClient(endpointURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	VideoURL          string `json:"videoUrl"`
	DifficultyLevel   string `json:"difficultyLevel"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// Generate implements domain.QuestionGenerationService
func (c *Client) Generate(ctx context.Context, videoURL, difficultyLevel string, questionCount int) (*domain.GenerationResult, error) {
	payload, err := json.Marshal(generateRequest{
		VideoURL:          videoURL,
		DifficultyLevel:   difficultyLevel,
		NumberOfQuestions: questionCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var result domain.GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("generation endpoint returned no questions")
	}

	return &result, nil
}

var _ domain.QuestionGenerationService = (*Client)(nil)
