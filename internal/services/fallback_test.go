package services

import (
	"strings"
	"testing"

	"studymate-backend/internal/models"
)

const sampleProgrammingText = `Lập trình là quá trình viết mã nguồn cho máy tính.
Một thuật toán tốt giúp phần mềm chạy nhanh hơn.
Cấu trúc dữ liệu và thuật toán là nền tảng của khoa học máy tính.`

func TestClassifyTopic(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		locale   models.Locale
		expected string
	}{
		{"programming vi", sampleProgrammingText, models.LocaleVI, "Công nghệ thông tin"},
		{"programming en", "This course covers programming, algorithms and software design.", models.LocaleEN, "Information Technology"},
		{"history en", "The war changed the course of history and ended the dynasty.", models.LocaleEN, "History"},
		{"unmatched vi", "Hôm nay trời đẹp.", models.LocaleVI, "Giáo dục tổng quát"},
		{"unmatched en", "A pleasant afternoon.", models.LocaleEN, "General Education"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyTopic(tc.text, tc.locale); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "Protein protein protein enzyme enzyme cell. The the the and and."
	got := extractKeywords(text, 3)
	if len(got) == 0 {
		t.Fatal("Expected keywords")
	}
	if got[0] != "protein" {
		t.Errorf("Expected most frequent token first, got %v", got)
	}
	for _, w := range got {
		if w == "the" || w == "and" {
			t.Errorf("Expected stopwords excluded, got %v", got)
		}
	}
}

func TestFallbackSummary(t *testing.T) {
	result := FallbackSummary(sampleProgrammingText, models.LevelBrief, models.LocaleVI)

	if !result.Degraded {
		t.Error("Expected fallback summary marked degraded")
	}
	if result.Summary == "" {
		t.Error("Expected non-empty summary")
	}
	if !strings.Contains(result.Summary, "Công nghệ thông tin") {
		t.Errorf("Expected classified topic in summary, got %q", result.Summary)
	}
	if len(result.Objectives) == 0 || len(result.KeyPoints) == 0 {
		t.Error("Expected objectives and key points")
	}
	if result.Insights.EstimatedReadTime < 5 {
		t.Errorf("Expected read time of at least 5, got %d", result.Insights.EstimatedReadTime)
	}
	for _, kp := range result.KeyPoints {
		if kp.Content == "" {
			t.Error("Expected key point content taken from the text")
		}
	}
}

func TestFallbackSummary_EnglishLocale(t *testing.T) {
	result := FallbackSummary("This lecture covers programming and algorithms in depth.", models.LevelBrief, models.LocaleEN)

	if strings.Contains(result.Summary, "Tài liệu") {
		t.Errorf("Expected English summary, got %q", result.Summary)
	}
	if !strings.Contains(result.Summary, "Information Technology") {
		t.Errorf("Expected English topic label, got %q", result.Summary)
	}
	for _, o := range result.Objectives {
		if strings.Contains(o.Title, "Nắm vững") {
			t.Errorf("Expected English objective titles, got %q", o.Title)
		}
	}
	if result.Insights.LearningPath.Beginner[0] != "Start with the basic concepts" {
		t.Errorf("Expected English learning path, got %v", result.Insights.LearningPath.Beginner)
	}
}

func TestFallbackQuiz(t *testing.T) {
	result := FallbackQuiz(sampleProgrammingText, models.LocaleVI)

	if !result.Degraded {
		t.Error("Expected fallback quiz marked degraded")
	}
	if len(result.Questions) != 6 {
		t.Fatalf("Expected 6 fallback questions, got %d", len(result.Questions))
	}
	for i, q := range result.Questions {
		if len(q.Options) != 4 {
			t.Errorf("Question %d: expected 4 options, got %d", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			t.Errorf("Question %d: correctAnswer out of range: %d", i, q.CorrectAnswer)
		}
		if q.ID == "" || q.Question == "" {
			t.Errorf("Question %d: missing id or question", i)
		}
	}
}

func TestFallbackFlashcards(t *testing.T) {
	result := FallbackFlashcards(sampleProgrammingText, models.LocaleVI)

	if !result.Degraded {
		t.Error("Expected fallback flashcards marked degraded")
	}
	if len(result.Flashcards) != 2 {
		t.Fatalf("Expected 2 fallback cards, got %d", len(result.Flashcards))
	}
	if result.Flashcards[0].Answer != "Công nghệ thông tin" {
		t.Errorf("Expected topic as first answer, got %q", result.Flashcards[0].Answer)
	}
}

func TestDifficultyByLength(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected string
	}{
		{"short is easy", 500, "easy"},
		{"medium length", 1200, "medium"},
		{"long is hard", 3000, "hard"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := difficultyByLength(strings.Repeat("a", tc.length)); got != tc.expected {
				t.Errorf("Expected %q for %d chars, got %q", tc.expected, tc.length, got)
			}
		})
	}
}

func TestFallbackChatReply(t *testing.T) {
	vi := FallbackChatReply(models.LocaleVI)
	en := FallbackChatReply(models.LocaleEN)
	if !strings.Contains(vi, "Xin lỗi") {
		t.Errorf("Expected Vietnamese apology, got %q", vi)
	}
	if !strings.Contains(en, "Sorry") {
		t.Errorf("Expected English apology, got %q", en)
	}
}

func TestFallbackAnalysis(t *testing.T) {
	analysis := FallbackAnalysis(sampleProgrammingText, models.LocaleVI)

	if analysis.Difficulty != "easy" {
		t.Errorf("Expected easy difficulty for a short document, got %q", analysis.Difficulty)
	}
	if analysis.EstimatedReadTime < 5 {
		t.Errorf("Expected read time of at least 5, got %d", analysis.EstimatedReadTime)
	}
	if len(analysis.Topics) != 1 || analysis.Topics[0] != "Công nghệ thông tin" {
		t.Errorf("Expected classified topic, got %v", analysis.Topics)
	}
	if analysis.Language != "vi" {
		t.Errorf("Expected vi language, got %q", analysis.Language)
	}
}
