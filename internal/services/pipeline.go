package services

import (
	"context"
	"errors"
	"log"

	"studymate-backend/internal/models"
)

// Pipeline runs the generation flow shared by every endpoint: build the
// prompt, call the model, extract and repair the JSON, normalize it, and
// fall back to deterministic content when any stage keeps failing. Pipeline
// methods never return an error; the caller always gets a renderable result.
type Pipeline struct {
	completer Completer
}

func NewPipeline(c Completer) *Pipeline {
	return &Pipeline{completer: c}
}

// GenerateSummary makes up to two generation passes: the second uses a
// strengthened prompt with doubled word targets when the first summary
// comes back under the level's word floor.
func (p *Pipeline) GenerateSummary(ctx context.Context, text, level string, locale models.Locale) *models.SummaryResult {
	system := summarySystemMessage(locale)
	for _, strengthened := range []bool{false, true} {
		raw, err := p.completer.Complete(ctx, CompletionRequest{
			System:      system,
			Prompt:      buildSummaryPrompt(text, level, locale, strengthened),
			Temperature: 0.05,
			MaxTokens:   8000,
			TopP:        0.9,
		})
		if err != nil {
			logCompletionFailure("summary", err)
			break
		}
		jsonText, ok := ExtractJSON(raw)
		if !ok {
			log.Printf("summary: no JSON payload in model output (strengthened=%v)", strengthened)
			continue
		}
		if result, ok := NormalizeSummary(jsonText, level, locale); ok {
			return result
		}
		log.Printf("summary: below word floor for level %q (strengthened=%v)", level, strengthened)
	}
	log.Printf("summary: using fallback content")
	return FallbackSummary(text, level, locale)
}

func (p *Pipeline) GenerateQuiz(ctx context.Context, text string, numQuestions int, difficulty string, locale models.Locale) *models.QuizResult {
	raw, err := p.completer.Complete(ctx, CompletionRequest{
		Prompt:      buildQuizPrompt(text, numQuestions, difficulty, locale),
		Temperature: 0.3,
		MaxTokens:   6000,
	})
	if err == nil {
		if jsonText, ok := ExtractJSON(raw); ok {
			if result, ok := NormalizeQuiz(jsonText, locale); ok {
				return result
			}
		}
		log.Printf("quiz: model output not usable, falling back")
	} else {
		logCompletionFailure("quiz", err)
	}
	return FallbackQuiz(text, locale)
}

func (p *Pipeline) GenerateFlashcards(ctx context.Context, text string, numCards int, locale models.Locale) *models.FlashcardSet {
	raw, err := p.completer.Complete(ctx, CompletionRequest{
		Prompt:      buildFlashcardPrompt(text, numCards, locale),
		Temperature: 0.4,
		MaxTokens:   1500,
	})
	if err == nil {
		if jsonText, ok := ExtractJSON(raw); ok {
			if result, ok := NormalizeFlashcards(jsonText, numCards, locale); ok {
				return result
			}
		}
		log.Printf("flashcards: model output not usable, falling back")
	} else {
		logCompletionFailure("flashcards", err)
	}
	return FallbackFlashcards(text, locale)
}

// GenerateChat answers in free text; no JSON extraction is involved.
func (p *Pipeline) GenerateChat(ctx context.Context, req *models.GenerateChatRequest, locale models.Locale) *models.ChatReply {
	raw, err := p.completer.Complete(ctx, CompletionRequest{
		System:      chatSystemMessage(locale),
		Prompt:      buildChatPrompt(req, locale),
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err == nil {
		if reply, ok := NormalizeChatReply(raw); ok {
			return &models.ChatReply{Response: reply, Success: true}
		}
	} else {
		logCompletionFailure("chat", err)
	}
	return &models.ChatReply{
		Response: FallbackChatReply(locale),
		Success:  true,
		Degraded: true,
	}
}

// AnalyzeDocument produces upload-time insights. degraded reports whether
// the analysis came from the fallback path.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, text string, locale models.Locale) (analysis *DocumentAnalysis, degraded bool) {
	raw, err := p.completer.Complete(ctx, CompletionRequest{
		Prompt:      buildAnalysisPrompt(text, locale),
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err == nil {
		if jsonText, ok := ExtractJSON(raw); ok {
			if result, ok := NormalizeAnalysis(jsonText, wordCount(text), locale); ok {
				return result, false
			}
		}
		log.Printf("analysis: model output not usable, falling back")
	} else {
		logCompletionFailure("analysis", err)
	}
	return FallbackAnalysis(text, locale), true
}

func logCompletionFailure(task string, err error) {
	if errors.Is(err, ErrRateLimited) {
		log.Printf("%s: provider rate limit, serving fallback", task)
		return
	}
	log.Printf("%s: completion failed: %v", task, err)
}
