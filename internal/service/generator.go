package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"vidquiz/internal/domain"
	"vidquiz/internal/logger"

	"go.uber.org/zap"
)

// questionGenerator implements domain.QuestionGenerationService over an
// ordered list of text providers. Providers are tried in turn; when all of
// them fail, the deterministic question bank takes over. Generate never
// returns an error.
type questionGenerator struct {
	providers []domain.TextProvider
}

// NewQuestionGenerator creates a generator over the given provider chain.
// The slice order is the preference order.
func NewQuestionGenerator(providers []domain.TextProvider) domain.QuestionGenerationService {
	return &questionGenerator{providers: providers}
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

const generatorSystemPrompt = `You are an expert in education and quiz creation. Your task is to analyze the context of a video and generate relevant, educational quiz questions.

IMPORTANT RULES:
1. FIRST: analyze the video title and URL to identify the subject automatically
2. Detect whether it covers: Mathematics, Science, History, Literature, Geography, Programming, Business, Languages, Arts, or another topic
3. Generate questions that test comprehension, application and critical analysis of the video content
4. Questions must match the requested difficulty level
5. Every question must have exactly 4 answer options
6. Exactly one option must be correct
7. Include an explanation for each correct answer

MANDATORY RESPONSE FORMAT:
You MUST respond with a single valid JSON object and nothing else.
Exact structure:

{
  "videoContext": "Brief summary of the detected video context and subject",
  "detectedSubject": "Automatically detected subject",
  "questions": [
    {
      "question": "Question text based on the video content",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Explanation of the correct answer",
      "difficulty": "beginner"
    }
  ]
}

IMPORTANT: respond with ONLY the JSON, no backticks and no extra text.`

// Generate implements domain.QuestionGenerationService. It always returns a
// schema-valid result; model and parse failures are absorbed into the
// fallback path.
func (g *questionGenerator) Generate(ctx context.Context, videoURL, difficultyLevel string, questionCount int) (*domain.GenerationResult, error) {
	l := logger.Get()
	if questionCount < 1 {
		questionCount = 1
	}

	subject := DetectSubject(videoURL)
	userPrompt := g.buildUserPrompt(videoURL, difficultyLevel, questionCount)

	for _, provider := range g.providers {
		result, err := g.tryProvider(ctx, provider, userPrompt)
		if err != nil {
			l.Warn("Text provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			continue
		}

		l.Info("Generated questions from provider",
			zap.String("provider", provider.Name()),
			zap.Int("raw_question_count", len(result.Questions)),
		)

		result.AIModel = provider.Name()
		if result.DetectedSubject == "" {
			result.DetectedSubject = subject
		}
		normalizeQuestions(result, difficultyLevel, questionCount)
		return result, nil
	}

	l.Info("All text providers exhausted, using fallback question bank",
		zap.String("video_url", videoURL),
		zap.String("detected_subject", subject),
	)
	return BuildFallbackResult(videoURL, subject, difficultyLevel, questionCount), nil
}

func (g *questionGenerator) buildUserPrompt(videoURL, difficultyLevel string, questionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `VIDEO TO ANALYZE: %s

TASK:
1. Analyze the video URL and title
2. Automatically identify the subject (e.g. Mathematics, Programming, History, Science, ...)
3. Generate %d question(s) at the %s level
4. Base the questions on the content you can infer from the title/URL

SETTINGS:
- Level: %s
- Count: %d question(s)

IMPORTANT: return ONLY the JSON, no additional explanation.`,
		videoURL, questionCount, difficultyLevel, difficultyLevel, questionCount)

	// A recognized hosting URL yields a stable video identifier; anything
	// else is passed through as opaque context.
	if m := youtubeIDPattern.FindStringSubmatch(videoURL); m != nil {
		fmt.Fprintf(&b, "\n\nVIDEO INFO:\nVideo ID: %s\nPlatform: YouTube\nURL: %s", m[1], videoURL)
	}

	return b.String()
}

func (g *questionGenerator) tryProvider(ctx context.Context, provider domain.TextProvider, userPrompt string) (*domain.GenerationResult, error) {
	raw, err := provider.Complete(ctx, generatorSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	jsonText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var result domain.GenerationResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("model response contains no questions")
	}

	valid := result.Questions[:0]
	for _, q := range result.Questions {
		if q.Question == "" || len(q.Options) != domain.OptionCount {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("model response contains no valid questions")
	}
	result.Questions = valid

	return &result, nil
}

// normalizeQuestions trims or cyclically repeats the question list to exactly
// questionCount and fills in a missing difficulty tag.
func normalizeQuestions(result *domain.GenerationResult, difficultyLevel string, questionCount int) {
	questions := make([]domain.GeneratedQuestion, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := result.Questions[i%len(result.Questions)]
		if q.Difficulty == "" {
			q.Difficulty = strings.ToLower(difficultyLevel)
		}
		questions = append(questions, q)
	}
	result.Questions = questions
}

// ExtractJSONObject strips markdown code fences and returns the first
// balanced top-level JSON object in the text. Brace characters inside JSON
// string literals are ignored.
func ExtractJSONObject(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in model response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return cleaned[start : i+1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("unbalanced JSON object in model response")
}
