package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com/v", req.VideoURL)
		assert.Equal(t, 3, req.NumberOfQuestions)

		json.NewEncoder(w).Encode(domain.GenerationResult{
			VideoContext:    "ctx",
			DetectedSubject: "math",
			AIModel:         "model-a",
			Questions: []domain.GeneratedQuestion{
				{Question: "Q?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Generate(context.Background(), "https://example.com/v", "beginner", 3)

	require.NoError(t, err)
	assert.Equal(t, "model-a", result.AIModel)
	assert.Len(t, result.Questions, 1)
}

func TestClientGenerate_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "https://example.com/v", "beginner", 3)

	assert.Error(t, err)
}

func TestClientGenerate_EmptyQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.GenerationResult{AIModel: "model-a"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "https://example.com/v", "beginner", 3)

	assert.Error(t, err)
}
