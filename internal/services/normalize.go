package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"studymate-backend/internal/models"
)

// pick returns the variant matching the requested locale.
func pick(locale models.Locale, vi, en string) string {
	if locale == models.LocaleEN {
		return en
	}
	return vi
}

func pickList(locale models.Locale, vi, en []string) []string {
	if locale == models.LocaleEN {
		return en
	}
	return vi
}

// stringList tolerates a bare string (or null) where the schema expects an
// array of strings. It never reports an error; malformed values decode to
// an empty list.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one = strings.TrimSpace(one); one != "" {
			*s = []string{one}
		} else {
			*s = nil
		}
		return nil
	}
	*s = nil
	return nil
}

// looseInt tolerates floats and numeric strings where an integer is
// expected. Unparseable values decode to zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseInt(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*n = looseInt(v)
			return nil
		}
	}
	*n = 0
	return nil
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// minSummaryWords is the acceptance floor per detail level. A summary below
// the floor is treated as a failed generation and retried.
func minSummaryWords(level string) int {
	switch level {
	case models.LevelBrief:
		return 100
	case models.LevelDetailed:
		return 400
	default:
		return 150
	}
}

type rawSummary struct {
	Summary    string         `json:"summary"`
	Objectives []rawObjective `json:"objectives"`
	KeyPoints  []rawKeyPoint  `json:"keyPoints"`
	Insights   rawInsights    `json:"insights"`
}

type rawObjective struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Importance    string     `json:"importance"`
	EstimatedTime looseInt   `json:"estimatedTime"`
	SubObjectives stringList `json:"subObjectives"`
	Prerequisites stringList `json:"prerequisites"`
}

type rawKeyPoint struct {
	ID                string     `json:"id"`
	Content           string     `json:"content"`
	Category          string     `json:"category"`
	Difficulty        string     `json:"difficulty"`
	RelatedConcepts   stringList `json:"relatedConcepts"`
	Explanation       string     `json:"explanation"`
	Examples          stringList `json:"examples"`
	PracticeQuestions stringList `json:"practiceQuestions"`
}

type rawInsights struct {
	Difficulty        string     `json:"difficulty"`
	EstimatedReadTime looseInt   `json:"estimatedReadTime"`
	KeyConcepts       stringList `json:"keyConcepts"`
	Recommendations   stringList `json:"recommendations"`
	Strengths         stringList `json:"strengths"`
	Improvements      stringList `json:"improvements"`
	LearningPath      struct {
		Beginner     stringList `json:"beginner"`
		Intermediate stringList `json:"intermediate"`
		Advanced     stringList `json:"advanced"`
	} `json:"learningPath"`
	Assessment struct {
		KnowledgeCheck   stringList `json:"knowledgeCheck"`
		PracticalTasks   stringList `json:"practicalTasks"`
		CriticalThinking stringList `json:"criticalThinking"`
	} `json:"assessment"`
	Resources struct {
		AdditionalReading stringList `json:"additionalReading"`
		Tools             stringList `json:"tools"`
		Communities       stringList `json:"communities"`
	} `json:"resources"`
}

// NormalizeSummary parses extracted JSON into a fully populated summary
// result. ok is false when the payload does not parse or the summary text
// falls below the word floor for the requested level; the caller then
// retries with a strengthened prompt or falls back.
func NormalizeSummary(jsonText, level string, locale models.Locale) (*models.SummaryResult, bool) {
	var raw rawSummary
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, false
	}

	summary := strings.TrimSpace(raw.Summary)
	if wordCount(summary) < minSummaryWords(level) {
		return nil, false
	}

	result := &models.SummaryResult{
		Summary:    summary,
		Objectives: make([]models.Objective, 0, len(raw.Objectives)),
		KeyPoints:  make([]models.KeyPoint, 0, len(raw.KeyPoints)),
	}

	for i, o := range raw.Objectives {
		obj := models.Objective{
			ID:            defaultStr(o.ID, fmt.Sprintf("obj_%d", i+1)),
			Title:         defaultStr(o.Title, pick(locale, "Mục tiêu học tập", "Learning objective")),
			Description:   defaultStr(o.Description, pick(locale, "Nội dung cần nắm vững", "Material to master")),
			Category:      defaultStr(o.Category, pick(locale, "Tổng quan", "Overview")),
			Importance:    oneOf(o.Importance, "medium", "high", "medium", "low"),
			EstimatedTime: int(o.EstimatedTime),
			SubObjectives: o.SubObjectives,
			Prerequisites: o.Prerequisites,
		}
		if obj.EstimatedTime <= 0 {
			obj.EstimatedTime = 30
		}
		if len(obj.SubObjectives) == 0 {
			obj.SubObjectives = pickList(locale,
				[]string{"Hiểu khái niệm cơ bản", "Áp dụng kiến thức", "Đánh giá kết quả"},
				[]string{"Understand the core concepts", "Apply the knowledge", "Review your understanding"})
		}
		if len(obj.Prerequisites) == 0 {
			obj.Prerequisites = pickList(locale,
				[]string{"Kiến thức nền tảng"},
				[]string{"Foundational knowledge"})
		}
		result.Objectives = append(result.Objectives, obj)
	}

	for i, k := range raw.KeyPoints {
		kp := models.KeyPoint{
			ID:                defaultStr(k.ID, fmt.Sprintf("key_%d", i+1)),
			Content:           defaultStr(k.Content, pick(locale, "Nội dung quan trọng", "Important content")),
			Category:          defaultStr(k.Category, pick(locale, "Khái niệm", "Concept")),
			Difficulty:        oneOf(k.Difficulty, "intermediate", "basic", "intermediate", "advanced"),
			RelatedConcepts:   nonNil(k.RelatedConcepts),
			Explanation:       defaultStr(k.Explanation, pick(locale, "Cần tìm hiểu thêm", "Further study needed")),
			Examples:          k.Examples,
			PracticeQuestions: k.PracticeQuestions,
		}
		if len(kp.Examples) == 0 {
			kp.Examples = pickList(locale, []string{"Ví dụ minh họa"}, []string{"Illustrative example"})
		}
		if len(kp.PracticeQuestions) == 0 {
			kp.PracticeQuestions = pickList(locale, []string{"Câu hỏi ôn tập"}, []string{"Review question"})
		}
		result.KeyPoints = append(result.KeyPoints, kp)
	}

	result.Insights = normalizeInsights(raw.Insights, summary, locale)
	return result, true
}

func normalizeInsights(in rawInsights, summary string, locale models.Locale) models.Insights {
	out := models.Insights{
		Difficulty:        oneOf(in.Difficulty, "medium", "easy", "medium", "hard"),
		EstimatedReadTime: int(in.EstimatedReadTime),
		KeyConcepts:       nonNil(in.KeyConcepts),
		Recommendations:   in.Recommendations,
		Strengths:         nonNil(in.Strengths),
		Improvements:      nonNil(in.Improvements),
	}
	if out.EstimatedReadTime <= 0 {
		out.EstimatedReadTime = estimateReadMinutes(wordCount(summary))
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = pickList(locale,
			[]string{"Ôn tập thường xuyên", "Ghi chú các khái niệm chính"},
			[]string{"Review regularly", "Take notes on the key concepts"})
	}

	out.LearningPath = models.LearningPath{
		Beginner:     defaultList(in.LearningPath.Beginner, pickList(locale, []string{"Bắt đầu với các khái niệm cơ bản"}, []string{"Start with the basic concepts"})),
		Intermediate: defaultList(in.LearningPath.Intermediate, pickList(locale, []string{"Luyện tập với bài tập áp dụng"}, []string{"Practice with applied exercises"})),
		Advanced:     defaultList(in.LearningPath.Advanced, pickList(locale, []string{"Nghiên cứu chuyên sâu các chủ đề nâng cao"}, []string{"Study the advanced topics in depth"})),
	}
	out.Assessment = models.Assessment{
		KnowledgeCheck:   defaultList(in.Assessment.KnowledgeCheck, pickList(locale, []string{"Tự kiểm tra bằng câu hỏi trắc nghiệm"}, []string{"Self-test with multiple choice questions"})),
		PracticalTasks:   defaultList(in.Assessment.PracticalTasks, pickList(locale, []string{"Áp dụng kiến thức vào bài tập thực tế"}, []string{"Apply the material to a practical task"})),
		CriticalThinking: defaultList(in.Assessment.CriticalThinking, pickList(locale, []string{"Phân tích và so sánh các khái niệm"}, []string{"Analyze and compare the concepts"})),
	}
	out.Resources = models.Resources{
		AdditionalReading: defaultList(in.Resources.AdditionalReading, pickList(locale, []string{"Tài liệu tham khảo về chủ đề này"}, []string{"Reference material on this topic"})),
		Tools:             defaultList(in.Resources.Tools, pickList(locale, []string{"Ứng dụng ghi chú và sơ đồ tư duy"}, []string{"Note-taking and mind-mapping apps"})),
		Communities:       defaultList(in.Resources.Communities, pickList(locale, []string{"Nhóm học tập trực tuyến"}, []string{"Online study groups"})),
	}
	return out
}

type rawQuiz struct {
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       stringList `json:"options"`
	CorrectAnswer looseInt   `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    string     `json:"difficulty"`
	Category      string     `json:"category"`
}

// NormalizeQuiz accepts either {"questions":[...]} or a bare array and
// coerces every question into the four-option shape the client renders.
func NormalizeQuiz(jsonText string, locale models.Locale) (*models.QuizResult, bool) {
	var raw rawQuiz
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil || len(raw.Questions) == 0 {
		if err := json.Unmarshal([]byte(jsonText), &raw.Questions); err != nil {
			return nil, false
		}
	}
	if len(raw.Questions) == 0 {
		return nil, false
	}

	result := &models.QuizResult{Questions: make([]models.QuizQuestion, 0, len(raw.Questions))}
	for i, q := range raw.Questions {
		question := models.QuizQuestion{
			ID:            defaultStr(q.ID, fmt.Sprintf("q_%d", i+1)),
			Question:      defaultStr(strings.TrimSpace(q.Question), pick(locale, "Câu hỏi về nội dung bài giảng", "Question about the lecture content")),
			Options:       q.Options,
			CorrectAnswer: int(q.CorrectAnswer),
			Explanation:   defaultStr(q.Explanation, pick(locale, "Đáp án dựa trên nội dung bài giảng", "Based on the lecture content")),
			Difficulty:    oneOf(q.Difficulty, "medium", "easy", "medium", "hard"),
			Category:      defaultStr(q.Category, pick(locale, "Tổng quát", "General")),
		}
		switch {
		case len(question.Options) > 4:
			question.Options = question.Options[:4]
		case len(question.Options) < 4:
			question.Options = pickList(locale,
				[]string{"Đáp án A", "Đáp án B", "Đáp án C", "Đáp án D"},
				[]string{"Option A", "Option B", "Option C", "Option D"})
			question.CorrectAnswer = 0
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer > 3 {
			question.CorrectAnswer = 0
		}
		result.Questions = append(result.Questions, question)
	}
	return result, true
}

type rawFlashcard struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   string     `json:"category"`
	Difficulty string     `json:"difficulty"`
	Tags       stringList `json:"tags"`
}

// NormalizeFlashcards accepts a bare array or {"flashcards":[...]},
// discards cards with no question or answer, and truncates the set to the
// requested size.
func NormalizeFlashcards(jsonText string, numCards int, locale models.Locale) (*models.FlashcardSet, bool) {
	var cards []rawFlashcard
	if err := json.Unmarshal([]byte(jsonText), &cards); err != nil {
		var wrapped struct {
			Flashcards []rawFlashcard `json:"flashcards"`
		}
		if err := json.Unmarshal([]byte(jsonText), &wrapped); err != nil {
			return nil, false
		}
		cards = wrapped.Flashcards
	}

	set := &models.FlashcardSet{Flashcards: make([]models.Flashcard, 0, len(cards))}
	for i, c := range cards {
		if len(set.Flashcards) >= numCards {
			break
		}
		question := strings.TrimSpace(c.Question)
		answer := strings.TrimSpace(c.Answer)
		if question == "" || answer == "" {
			continue
		}
		tags := nonNil(c.Tags)
		if len(tags) > 6 {
			tags = tags[:6]
		}
		set.Flashcards = append(set.Flashcards, models.Flashcard{
			ID:         defaultStr(c.ID, fmt.Sprintf("card_%d", i+1)),
			Question:   question,
			Answer:     answer,
			Category:   defaultStr(c.Category, pick(locale, "Tổng quát", "General")),
			Difficulty: oneOf(c.Difficulty, "medium", "easy", "medium", "hard"),
			Tags:       tags,
		})
	}
	if len(set.Flashcards) == 0 {
		return nil, false
	}
	return set, true
}

// DocumentAnalysis is the model-derived portion of a processed file.
type DocumentAnalysis struct {
	Topics            []string
	Language          string
	Difficulty        string
	EstimatedReadTime int
	KeyConcepts       []string
	Recommendations   []string
}

type rawAnalysis struct {
	Topics            stringList `json:"topics"`
	Language          string     `json:"language"`
	Difficulty        string     `json:"difficulty"`
	EstimatedReadTime looseInt   `json:"estimatedReadTime"`
	KeyConcepts       stringList `json:"keyConcepts"`
	Recommendations   stringList `json:"recommendations"`
}

// NormalizeAnalysis fills gaps in the model's document analysis with values
// derived from the text itself. words is the extracted text's word count.
func NormalizeAnalysis(jsonText string, words int, locale models.Locale) (*DocumentAnalysis, bool) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, false
	}

	out := &DocumentAnalysis{
		Topics:            raw.Topics,
		Language:          defaultStr(raw.Language, string(locale)),
		Difficulty:        oneOf(raw.Difficulty, "medium", "easy", "medium", "hard"),
		EstimatedReadTime: int(raw.EstimatedReadTime),
		KeyConcepts:       nonNil(raw.KeyConcepts),
		Recommendations:   raw.Recommendations,
	}
	if len(out.Topics) == 0 {
		out.Topics = pickList(locale, []string{"Giáo dục"}, []string{"Education"})
	}
	if out.EstimatedReadTime <= 0 {
		out.EstimatedReadTime = estimateReadMinutes(words)
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = pickList(locale,
			[]string{"Đọc kỹ nội dung và ghi chú các ý chính"},
			[]string{"Read the material closely and note the main ideas"})
	}
	return out, true
}

// NormalizeChatReply trims the free-form answer; chat responses carry no
// JSON envelope.
func NormalizeChatReply(raw string) (string, bool) {
	reply := strings.TrimSpace(raw)
	return reply, reply != ""
}

func defaultStr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func defaultList(s []string, def []string) []string {
	if len(s) == 0 {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func oneOf(val, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(val))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// estimateReadMinutes assumes 150 words per minute, floored at 5 minutes.
func estimateReadMinutes(words int) int {
	minutes := words / 150
	if minutes < 5 {
		return 5
	}
	return minutes
}
