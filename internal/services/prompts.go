package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"studymate-backend/internal/models"
)

// Character budgets for prompt inclusion. Overlong documents keep their
// head and tail; the middle is elided so both the introduction and the
// conclusion stay visible to the model.
const (
	summaryTextLimit   = 6000
	summaryHeadChars   = 3000
	summaryTailChars   = 1000
	quizTextLimit      = 6000
	flashcardTextLimit = 3000
	analysisTextLimit  = 8000
	chatContextLimit   = 500
)

// truncateHead cuts text to at most limit bytes on a rune boundary.
func truncateHead(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// truncateMiddle keeps head and tail of an overlong document with an
// elision marker between them.
func truncateMiddle(text string, limit, head, tail int, locale models.Locale) string {
	if len(text) <= limit {
		return text
	}
	headCut := head
	for headCut > 0 && !utf8.RuneStart(text[headCut]) {
		headCut--
	}
	tailStart := len(text) - tail
	for tailStart < len(text) && !utf8.RuneStart(text[tailStart]) {
		tailStart++
	}
	marker := pick(locale,
		"\n\n... (phần giữa được lược bỏ do độ dài) ...\n\n",
		"\n\n... (middle content omitted for length) ...\n\n")
	return text[:headCut] + marker + text[tailStart:]
}

func languageName(locale models.Locale) string {
	if locale == models.LocaleEN {
		return "English"
	}
	return "Vietnamese"
}

// summarySystemMessage locks the response language. The lock is repeated in
// the user prompt because small models drift without reinforcement.
func summarySystemMessage(locale models.Locale) string {
	lang := languageName(locale)
	return fmt.Sprintf("You are an expert lecturer and study coach. You MUST write every value in the JSON response in %s. Do not mix languages. Respond with JSON only, no prose before or after.", lang)
}

func promptWordTarget(level string, strengthened bool) (min, max int) {
	switch level {
	case models.LevelBrief:
		min, max = 200, 300
	case models.LevelDetailed:
		min, max = 600, 800
	default:
		min, max = 400, 500
	}
	if strengthened {
		min *= 2
		max *= 2
	}
	return min, max
}

// buildSummaryPrompt renders the full summary request. strengthened doubles
// the word targets; it is used on the retry after a too-short summary.
func buildSummaryPrompt(text, level string, locale models.Locale, strengthened bool) string {
	lang := languageName(locale)
	minWords, maxWords := promptWordTarget(level, strengthened)
	content := truncateMiddle(text, summaryTextLimit, summaryHeadChars, summaryTailChars, locale)

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the lecture content below and produce a structured study summary in %s.\n\n", lang)
	fmt.Fprintf(&b, "Requirements:\n")
	fmt.Fprintf(&b, "- The \"summary\" field MUST contain between %d and %d words. This is a hard requirement.\n", minWords, maxWords)
	if strengthened {
		fmt.Fprintf(&b, "- Your previous summary was far too short. Write substantially more detail this time.\n")
	}
	fmt.Fprintf(&b, "- Provide 2-4 learning objectives and 3-6 key points drawn from the content.\n")
	fmt.Fprintf(&b, "- Every string value must be written in %s.\n", lang)
	fmt.Fprintf(&b, "- Respond with a single JSON object and nothing else. No markdown fences, no commentary.\n\n")

	b.WriteString(`JSON shape (follow it exactly):
{
  "summary": "...",
  "objectives": [
    {"id": "obj_1", "title": "...", "description": "...", "category": "...", "importance": "high|medium|low", "estimatedTime": 30, "subObjectives": ["..."], "prerequisites": ["..."]}
  ],
  "keyPoints": [
    {"id": "key_1", "content": "...", "category": "...", "difficulty": "basic|intermediate|advanced", "relatedConcepts": ["..."], "explanation": "...", "examples": ["..."], "practiceQuestions": ["..."]}
  ],
  "insights": {
    "difficulty": "easy|medium|hard",
    "estimatedReadTime": 10,
    "keyConcepts": ["..."],
    "recommendations": ["..."],
    "strengths": ["..."],
    "improvements": ["..."],
    "learningPath": {"beginner": ["..."], "intermediate": ["..."], "advanced": ["..."]},
    "assessment": {"knowledgeCheck": ["..."], "practicalTasks": ["..."], "criticalThinking": ["..."]},
    "resources": {"additionalReading": ["..."], "tools": ["..."], "communities": ["..."]}
  }
}

`)
	fmt.Fprintf(&b, "LECTURE CONTENT:\n---\n%s\n---\n\n", content)
	fmt.Fprintf(&b, "Remember: JSON only, all values in %s, summary of at least %d words.", lang, minWords)
	return b.String()
}

func buildQuizPrompt(text string, numQuestions int, difficulty string, locale models.Locale) string {
	lang := languageName(locale)
	content := truncateHead(text, quizTextLimit)

	difficultyRule := fmt.Sprintf("All questions should be %s difficulty.", difficulty)
	if difficulty == "mixed" {
		difficultyRule = "Mix easy, medium and hard questions."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d multiple-choice questions in %s from the lecture content below.\n\n", numQuestions, lang)
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Each question has exactly 4 options and one correct answer.\n")
	fmt.Fprintf(&b, "- \"correctAnswer\" is the 0-based index of the correct option.\n")
	fmt.Fprintf(&b, "- %s\n", difficultyRule)
	fmt.Fprintf(&b, "- Base every question on the content; do not invent facts.\n")
	fmt.Fprintf(&b, "- Write all text in %s.\n", lang)
	fmt.Fprintf(&b, "- Respond with JSON only, no markdown fences, no commentary.\n\n")
	b.WriteString(`JSON shape:
{
  "questions": [
    {"id": "q_1", "question": "...", "options": ["...", "...", "...", "..."], "correctAnswer": 0, "explanation": "...", "difficulty": "easy|medium|hard", "category": "..."}
  ]
}

`)
	fmt.Fprintf(&b, "LECTURE CONTENT:\n---\n%s\n---", content)
	return b.String()
}

func buildFlashcardPrompt(text string, numCards int, locale models.Locale) string {
	lang := languageName(locale)
	content := truncateHead(text, flashcardTextLimit)

	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d study flashcards in %s from the lecture content below.\n\n", numCards, lang)
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Each card has a concise question on the front and a complete answer on the back.\n")
	fmt.Fprintf(&b, "- Cover the most important concepts first.\n")
	fmt.Fprintf(&b, "- At most 6 tags per card.\n")
	fmt.Fprintf(&b, "- Write all text in %s.\n", lang)
	fmt.Fprintf(&b, "- Respond with a JSON array only, no markdown fences, no commentary.\n\n")
	b.WriteString(`JSON shape:
[
  {"id": "card_1", "question": "...", "answer": "...", "category": "...", "difficulty": "easy|medium|hard", "tags": ["..."]}
]

`)
	fmt.Fprintf(&b, "LECTURE CONTENT:\n---\n%s\n---", content)
	return b.String()
}

func chatSystemMessage(locale models.Locale) string {
	return fmt.Sprintf("You are a friendly study assistant helping a student understand their lecture material. Answer in %s. Be concise, accurate and encouraging. When the material does not cover the question, say so instead of guessing.", languageName(locale))
}

// buildChatPrompt assembles the lecture context and recent history around
// the student's question. Only a preview of the raw content is included;
// the summary and key points carry most of the signal.
func buildChatPrompt(req *models.GenerateChatRequest, locale models.Locale) string {
	var b strings.Builder

	if req.Lecture.Filename != "" {
		fmt.Fprintf(&b, "Document: %s\n", req.Lecture.Filename)
	}
	if req.Lecture.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", req.Lecture.Summary)
	}
	if len(req.Lecture.KeyPoints) > 0 {
		b.WriteString("Key points:\n")
		for _, kp := range req.Lecture.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", kp.Content)
		}
	}
	if len(req.Lecture.Objectives) > 0 {
		b.WriteString("Learning objectives:\n")
		for _, o := range req.Lecture.Objectives {
			fmt.Fprintf(&b, "- %s: %s\n", o.Title, o.Description)
		}
	}
	if req.Lecture.Content != "" {
		fmt.Fprintf(&b, "Content preview:\n%s\n", truncateHead(req.Lecture.Content, chatContextLimit))
	}

	if len(req.History) > 0 {
		b.WriteString("\nConversation so far:\n")
		history := req.History
		if len(history) > 6 {
			history = history[len(history)-6:]
		}
		for _, m := range history {
			role := "Student"
			if m.Type == "ai" {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
		}
	}

	fmt.Fprintf(&b, "\nStudent question: %s\n", req.Question)
	fmt.Fprintf(&b, "Answer in %s.", languageName(locale))
	return b.String()
}

func buildAnalysisPrompt(text string, locale models.Locale) string {
	lang := languageName(locale)
	content := truncateHead(text, analysisTextLimit)

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the document below and describe it for a study app. Respond in %s.\n\n", lang)
	b.WriteString(`Respond with JSON only, in this shape:
{
  "topics": ["..."],
  "language": "vi|en",
  "difficulty": "easy|medium|hard",
  "estimatedReadTime": 10,
  "keyConcepts": ["..."],
  "recommendations": ["..."]
}

`)
	fmt.Fprintf(&b, "DOCUMENT:\n---\n%s\n---", content)
	return b.String()
}
