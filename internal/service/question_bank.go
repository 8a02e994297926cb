package service

import (
	"fmt"
	"strings"

	"vidquiz/internal/domain"
)

// subjectKeywords maps a canonical subject to the URL tokens that signal it.
// Order matters: the first subject with a matching keyword wins.
var subjectKeywords = []struct {
	subject  string
	keywords []string
}{
	{"math", []string{"math", "mathematics", "algebra", "calculus", "geometry", "equation", "derivative", "integral"}},
	{"programming", []string{"programming", "code", "coding", "javascript", "python", "java", "golang", "typescript", "react", "tutorial", "developer", "software"}},
	{"science", []string{"science", "physics", "chemistry", "biology", "quantum", "molecule", "experiment"}},
	{"history", []string{"history", "war", "ancient", "civilization", "empire", "revolution"}},
	{"languages", []string{"english", "spanish", "portuguese", "french", "german", "grammar", "vocabulary", "language"}},
	{"business", []string{"business", "marketing", "finance", "economics", "entrepreneur", "startup", "investment"}},
	{"arts", []string{"art", "music", "painting", "drawing", "design", "photography"}},
	{"cooking", []string{"cooking", "recipe", "kitchen", "baking", "chef", "food"}},
}

const defaultSubject = "general"

var urlTokenReplacer = strings.NewReplacer(
	"/", " ", "-", " ", "_", " ", "=", " ",
	"&", " ", "?", " ", ".", " ", "+", " ", ":", " ",
)

// DetectSubject infers a subject from the tokens of a video URL. Matching is
// case-insensitive and falls back to "general" when nothing matches.
func DetectSubject(videoURL string) string {
	text := " " + urlTokenReplacer.Replace(strings.ToLower(videoURL)) + " "
	for _, group := range subjectKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return group.subject
			}
		}
	}
	return defaultSubject
}

// fallbackBank holds the canned questions served when every provider fails.
// Subjects without a dedicated entry get generic questions built around the
// detected subject name.
var fallbackBank = map[string][]domain.GeneratedQuestion{
	"math": {
		{
			Question:      "What is the result of 2x + 3 = 7?",
			Options:       []string{"x = 1", "x = 2", "x = 3", "x = 4"},
			CorrectAnswer: 1,
			Explanation:   "Subtracting 3 from both sides gives 2x = 4, so x = 2.",
		},
		{
			Question:      "What is the derivative of f(x) = x²?",
			Options:       []string{"x", "2x", "x²", "2x²"},
			CorrectAnswer: 1,
			Explanation:   "By the power rule, the derivative of x² is 2x.",
		},
		{
			Question:      "What is the area of a circle with radius 3?",
			Options:       []string{"6π", "9π", "12π", "18π"},
			CorrectAnswer: 1,
			Explanation:   "The area of a circle is πr², so π × 3² = 9π.",
		},
	},
	"programming": {
		{
			Question:      "Which keyword declares a constant in JavaScript?",
			Options:       []string{"var", "let", "const", "static"},
			CorrectAnswer: 2,
			Explanation:   "const declares a binding that cannot be reassigned.",
		},
		{
			Question:      "What does API stand for?",
			Options:       []string{"Application Programming Interface", "Advanced Program Integration", "Automated Process Interface", "Application Process Integration"},
			CorrectAnswer: 0,
			Explanation:   "API stands for Application Programming Interface.",
		},
		{
			Question:      "Which HTTP method is typically used to create a resource?",
			Options:       []string{"GET", "POST", "DELETE", "HEAD"},
			CorrectAnswer: 1,
			Explanation:   "POST is the conventional method for creating resources.",
		},
	},
	"science": {
		{
			Question:      "What is the chemical symbol for water?",
			Options:       []string{"CO2", "H2O", "O2", "NaCl"},
			CorrectAnswer: 1,
			Explanation:   "Water is composed of two hydrogen atoms and one oxygen atom.",
		},
		{
			Question:      "Which planet is closest to the Sun?",
			Options:       []string{"Venus", "Earth", "Mercury", "Mars"},
			CorrectAnswer: 2,
			Explanation:   "Mercury is the innermost planet of the solar system.",
		},
	},
}

// BuildFallbackResult assembles a deterministic result for the given subject.
// The bank is repeated cyclically so the output always has exactly
// questionCount questions.
func BuildFallbackResult(videoURL, subject, difficultyLevel string, questionCount int) *domain.GenerationResult {
	if questionCount < 1 {
		questionCount = 1
	}

	bank, ok := fallbackBank[subject]
	if !ok {
		bank = genericQuestions(subject)
	}

	difficulty := strings.ToLower(difficultyLevel)
	questions := make([]domain.GeneratedQuestion, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := bank[i%len(bank)]
		q.Difficulty = difficulty
		questions = append(questions, q)
	}

	return &domain.GenerationResult{
		VideoContext:    fmt.Sprintf("Analysis of video: %s. Subject identified as %s from URL keywords.", videoURL, subject),
		DetectedSubject: subject,
		AIModel:         "fallback",
		Questions:       questions,
	}
}

func genericQuestions(subject string) []domain.GeneratedQuestion {
	return []domain.GeneratedQuestion{
		{
			Question:      fmt.Sprintf("What is the main topic covered in this %s video?", subject),
			Options:       []string{"Fundamental concepts", "Advanced applications", "Historical background", "Practical exercises"},
			CorrectAnswer: 0,
			Explanation:   "Educational videos usually start from the fundamental concepts of the topic.",
		},
		{
			Question:      fmt.Sprintf("Which study strategy works best for %s content?", subject),
			Options:       []string{"Memorizing without understanding", "Active practice and review", "Watching only once", "Skipping the difficult parts"},
			CorrectAnswer: 1,
			Explanation:   "Active practice combined with spaced review consolidates learning.",
		},
	}
}
