package services

import (
	"fmt"
	"sort"
	"strings"

	"studymate-backend/internal/models"
)

// Fallback content is generated deterministically from the source text when
// the model is unavailable or keeps returning unusable output. Every
// fallback result carries Degraded so the client can show a notice.

var topicKeywords = []struct {
	vi       string
	en       string
	keywords []string
}{
	{"Công nghệ thông tin", "Information Technology", []string{"máy tính", "lập trình", "phần mềm", "computer", "programming", "software", "algorithm", "thuật toán", "dữ liệu", "database"}},
	{"Toán học", "Mathematics", []string{"toán", "phương trình", "hàm số", "math", "equation", "theorem", "định lý", "tích phân", "đạo hàm", "matrix"}},
	{"Vật lý", "Physics", []string{"vật lý", "lực", "năng lượng", "physics", "force", "energy", "quantum", "điện từ", "cơ học"}},
	{"Hóa học", "Chemistry", []string{"hóa học", "phản ứng", "phân tử", "chemistry", "reaction", "molecule", "nguyên tố", "acid"}},
	{"Sinh học", "Biology", []string{"sinh học", "tế bào", "di truyền", "biology", "cell", "gene", "protein", "enzyme"}},
	{"Lịch sử", "History", []string{"lịch sử", "chiến tranh", "triều đại", "history", "war", "dynasty", "revolution", "cách mạng"}},
	{"Kinh tế", "Economics", []string{"kinh tế", "thị trường", "tài chính", "economics", "market", "finance", "investment", "lạm phát"}},
	{"Ngôn ngữ", "Language", []string{"ngữ pháp", "từ vựng", "grammar", "vocabulary", "pronunciation", "phát âm"}},
}

// classifyTopic matches the text against per-subject keyword lists and
// returns the best-scoring subject, defaulting to a generic label.
func classifyTopic(text string, locale models.Locale) string {
	lower := strings.ToLower(text)
	best := -1
	bestScore := 0
	for i, t := range topicKeywords {
		score := 0
		for _, kw := range t.keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return pick(locale, "Giáo dục tổng quát", "General Education")
	}
	return pick(locale, topicKeywords[best].vi, topicKeywords[best].en)
}

var keywordStopwords = map[string]struct{}{
	"the": {}, "and": {}, "that": {}, "with": {}, "from": {}, "this": {},
	"have": {}, "will": {}, "which": {}, "their": {}, "about": {},
	"trong": {}, "những": {}, "được": {}, "không": {}, "người": {},
	"cũng": {}, "nhưng": {}, "này": {}, "các": {}, "một": {},
}

// extractKeywords returns the most frequent content-bearing tokens.
func extractKeywords(text string, max int) []string {
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()[]{}\"'“”‘’")
		if len([]rune(w)) < 4 {
			continue
		}
		if _, stop := keywordStopwords[w]; stop {
			continue
		}
		counts[w]++
	}

	type kv struct {
		word  string
		count int
	}
	ranked := make([]kv, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, kv{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	out := make([]string, 0, max)
	for _, r := range ranked {
		if len(out) >= max {
			break
		}
		out = append(out, r.word)
	}
	return out
}

// difficultyByLength grades the document by size; longer material is
// assumed denser.
func difficultyByLength(text string) string {
	switch n := len(text); {
	case n > 2000:
		return "hard"
	case n > 800:
		return "medium"
	default:
		return "easy"
	}
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FallbackSummary builds a summary directly from the source text: the
// leading sentences as the body, classified topic and frequent terms as the
// analysis.
func FallbackSummary(text, level string, locale models.Locale) *models.SummaryResult {
	topic := classifyTopic(text, locale)
	sentences := splitSentences(text)
	words := wordCount(text)

	var body strings.Builder
	body.WriteString(pick(locale,
		fmt.Sprintf("Tài liệu này thuộc lĩnh vực %s. ", topic),
		fmt.Sprintf("This document covers %s. ", topic)))
	target := minSummaryWords(level)
	for _, s := range sentences {
		if wordCount(body.String()) >= target {
			break
		}
		body.WriteString(s)
		body.WriteString(". ")
	}
	body.WriteString(pick(locale,
		"Hãy đọc toàn bộ tài liệu để nắm đầy đủ nội dung.",
		"Read the full document for complete coverage of the material."))

	objectives := []models.Objective{
		{
			ID:            "obj_1",
			Title:         pick(locale, "Nắm vững nội dung chính", "Master the main content"),
			Description:   pick(locale, fmt.Sprintf("Hiểu các khái niệm cốt lõi về %s trong tài liệu", topic), fmt.Sprintf("Understand the core %s concepts in the document", topic)),
			Category:      pick(locale, "Kiến thức", "Knowledge"),
			Importance:    "high",
			EstimatedTime: 30,
			SubObjectives: pickList(locale,
				[]string{"Đọc kỹ từng phần", "Ghi chú các ý chính", "Tóm tắt lại bằng lời của bạn"},
				[]string{"Read each section carefully", "Note the main ideas", "Restate the material in your own words"}),
			Prerequisites: pickList(locale, []string{"Kiến thức nền tảng"}, []string{"Foundational knowledge"}),
		},
		{
			ID:            "obj_2",
			Title:         pick(locale, "Áp dụng kiến thức", "Apply the knowledge"),
			Description:   pick(locale, "Vận dụng nội dung đã học vào bài tập và tình huống thực tế", "Use what you learned in exercises and practical situations"),
			Category:      pick(locale, "Vận dụng", "Application"),
			Importance:    "medium",
			EstimatedTime: 45,
			SubObjectives: pickList(locale,
				[]string{"Làm bài tập liên quan", "Thảo luận với bạn học", "Tự đặt câu hỏi kiểm tra"},
				[]string{"Work through related exercises", "Discuss with classmates", "Quiz yourself"}),
			Prerequisites: pickList(locale, []string{"Hoàn thành mục tiêu trước"}, []string{"Complete the previous objective"}),
		},
	}

	keyPoints := make([]models.KeyPoint, 0, 3)
	for i, s := range sentences {
		if i >= 3 {
			break
		}
		keyPoints = append(keyPoints, models.KeyPoint{
			ID:                fmt.Sprintf("key_%d", i+1),
			Content:           s,
			Category:          topic,
			Difficulty:        "intermediate",
			RelatedConcepts:   []string{},
			Explanation:       pick(locale, "Trích từ phần mở đầu của tài liệu", "Taken from the opening of the document"),
			Examples:          pickList(locale, []string{"Xem ví dụ trong tài liệu"}, []string{"See the examples in the document"}),
			PracticeQuestions: pickList(locale, []string{"Ý này liên quan thế nào đến chủ đề chính?"}, []string{"How does this relate to the main topic?"}),
		})
	}

	return &models.SummaryResult{
		Summary:    strings.TrimSpace(body.String()),
		Objectives: objectives,
		KeyPoints:  keyPoints,
		Insights: models.Insights{
			Difficulty:        difficultyByLength(text),
			EstimatedReadTime: estimateReadMinutes(words),
			KeyConcepts:       extractKeywords(text, 5),
			Recommendations: pickList(locale,
				[]string{"Ôn tập thường xuyên", "Ghi chú các khái niệm chính", "Thử tạo câu hỏi từ nội dung"},
				[]string{"Review regularly", "Take notes on the key concepts", "Try writing questions from the material"}),
			Strengths:    []string{},
			Improvements: []string{},
			LearningPath: models.LearningPath{
				Beginner:     pickList(locale, []string{"Bắt đầu với các khái niệm cơ bản"}, []string{"Start with the basic concepts"}),
				Intermediate: pickList(locale, []string{"Luyện tập với bài tập áp dụng"}, []string{"Practice with applied exercises"}),
				Advanced:     pickList(locale, []string{"Nghiên cứu chuyên sâu các chủ đề nâng cao"}, []string{"Study the advanced topics in depth"}),
			},
			Assessment: models.Assessment{
				KnowledgeCheck:   pickList(locale, []string{"Tự kiểm tra bằng câu hỏi trắc nghiệm"}, []string{"Self-test with multiple choice questions"}),
				PracticalTasks:   pickList(locale, []string{"Áp dụng kiến thức vào bài tập thực tế"}, []string{"Apply the material to a practical task"}),
				CriticalThinking: pickList(locale, []string{"Phân tích và so sánh các khái niệm"}, []string{"Analyze and compare the concepts"}),
			},
			Resources: models.Resources{
				AdditionalReading: pickList(locale, []string{fmt.Sprintf("Tài liệu tham khảo về %s", topic)}, []string{fmt.Sprintf("Reference material on %s", topic)}),
				Tools:             pickList(locale, []string{"Ứng dụng ghi chú và sơ đồ tư duy"}, []string{"Note-taking and mind-mapping apps"}),
				Communities:       pickList(locale, []string{"Nhóm học tập trực tuyến"}, []string{"Online study groups"}),
			},
		},
		Degraded: true,
	}
}

// FallbackQuiz returns six generic comprehension questions about the
// document so the client always has something to render.
func FallbackQuiz(text string, locale models.Locale) *models.QuizResult {
	topic := classifyTopic(text, locale)

	type q struct {
		question string
		options  []string
		correct  int
	}
	questions := []q{
		{
			pick(locale, "Chủ đề chính của tài liệu này là gì?", "What is the main topic of this document?"),
			[]string{
				pick(locale, "Thể thao", "Sports"),
				topic,
				pick(locale, "Nấu ăn", "Cooking"),
				pick(locale, "Du lịch", "Travel"),
			},
			1,
		},
		{
			pick(locale, "Cách hiệu quả nhất để ghi nhớ nội dung đã học là gì?", "What is the most effective way to retain what you studied?"),
			pickList(locale,
				[]string{"Đọc một lần duy nhất", "Ôn tập ngắt quãng nhiều lần", "Chỉ đọc phần kết luận", "Học thuộc lòng không hiểu"},
				[]string{"Read it once", "Spaced repetition over several sessions", "Read only the conclusion", "Memorize without understanding"}),
			1,
		},
		{
			pick(locale, "Khi gặp khái niệm khó, bạn nên làm gì trước tiên?", "When you hit a difficult concept, what should you do first?"),
			pickList(locale,
				[]string{"Bỏ qua hoàn toàn", "Tra cứu và đọc lại phần liên quan", "Chuyển sang tài liệu khác", "Dừng học"},
				[]string{"Skip it entirely", "Look it up and reread the related section", "Switch to another document", "Stop studying"}),
			1,
		},
		{
			pick(locale, "Tự đặt câu hỏi về nội dung giúp ích gì cho việc học?", "How does writing your own questions help you learn?"),
			pickList(locale,
				[]string{"Không giúp ích gì", "Kiểm tra mức độ hiểu và phát hiện lỗ hổng", "Chỉ tốn thời gian", "Chỉ dành cho giáo viên"},
				[]string{"It does not help", "It tests understanding and reveals gaps", "It only wastes time", "It is only for teachers"}),
			1,
		},
		{
			pick(locale, "Ghi chú bằng lời của chính bạn có tác dụng gì?", "What is the benefit of taking notes in your own words?"),
			pickList(locale,
				[]string{"Làm tài liệu dài hơn", "Buộc bạn xử lý và hiểu nội dung", "Chỉ để trang trí", "Không có tác dụng"},
				[]string{"It makes the document longer", "It forces you to process and understand the material", "It is decorative", "It has no effect"}),
			1,
		},
		{
			pick(locale, "Khi nào nên ôn tập lại tài liệu này?", "When should you review this document again?"),
			pickList(locale,
				[]string{"Không bao giờ", "Trong vòng vài ngày tới", "Sau một năm", "Chỉ trước kỳ thi"},
				[]string{"Never", "Within the next few days", "After a year", "Only right before the exam"}),
			1,
		},
	}

	result := &models.QuizResult{Questions: make([]models.QuizQuestion, 0, len(questions)), Degraded: true}
	for i, item := range questions {
		result.Questions = append(result.Questions, models.QuizQuestion{
			ID:            fmt.Sprintf("q_%d", i+1),
			Question:      item.question,
			Options:       item.options,
			CorrectAnswer: item.correct,
			Explanation:   pick(locale, "Câu hỏi ôn tập chung khi chưa thể phân tích chi tiết tài liệu", "General review question while detailed analysis is unavailable"),
			Difficulty:    "medium",
			Category:      topic,
		})
	}
	return result
}

// FallbackFlashcards returns two generic cards anchored on the document.
func FallbackFlashcards(text string, locale models.Locale) *models.FlashcardSet {
	topic := classifyTopic(text, locale)
	return &models.FlashcardSet{
		Flashcards: []models.Flashcard{
			{
				ID:         "card_1",
				Question:   pick(locale, "Tài liệu này thuộc lĩnh vực nào?", "What subject area does this document belong to?"),
				Answer:     topic,
				Category:   topic,
				Difficulty: "easy",
				Tags:       pickList(locale, []string{"tổng quan"}, []string{"overview"}),
			},
			{
				ID:         "card_2",
				Question:   pick(locale, "Ba bước nên làm sau khi đọc xong tài liệu là gì?", "What three steps should follow a first read of the document?"),
				Answer:     pick(locale, "Ghi chú ý chính, tự đặt câu hỏi kiểm tra, ôn tập lại sau vài ngày", "Note the main ideas, write self-test questions, review again after a few days"),
				Category:   pick(locale, "Phương pháp học", "Study method"),
				Difficulty: "easy",
				Tags:       pickList(locale, []string{"phương pháp"}, []string{"method"}),
			},
		},
		Degraded: true,
	}
}

// FallbackChatReply is the apology used when the assistant cannot answer.
func FallbackChatReply(locale models.Locale) string {
	return pick(locale,
		"Xin lỗi, hiện tại tôi chưa thể trả lời câu hỏi này. Vui lòng thử lại sau ít phút.",
		"Sorry, I can't answer that right now. Please try again in a few minutes.")
}

// FallbackAnalysis derives document insights without the model.
func FallbackAnalysis(text string, locale models.Locale) *DocumentAnalysis {
	return &DocumentAnalysis{
		Topics:            []string{classifyTopic(text, locale)},
		Language:          string(locale),
		Difficulty:        difficultyByLength(text),
		EstimatedReadTime: estimateReadMinutes(wordCount(text)),
		KeyConcepts:       extractKeywords(text, 5),
		Recommendations: pickList(locale,
			[]string{"Đọc kỹ nội dung và ghi chú các ý chính"},
			[]string{"Read the material closely and note the main ideas"}),
	}
}
