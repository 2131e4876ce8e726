package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"studymate-backend/internal/middleware"
	"studymate-backend/internal/models"
)

const minQuizTextChars = 50

type quizGenerator interface {
	GenerateQuiz(ctx context.Context, text string, numQuestions int, difficulty string, locale models.Locale) *models.QuizResult
}

type QuizHandler struct {
	pipeline quizGenerator
}

func NewQuizHandler(pipeline quizGenerator) *QuizHandler {
	return &QuizHandler{pipeline: pipeline}
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fields, ok := validateStruct(&req); !ok {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}
	if len(strings.TrimSpace(req.Text)) < minQuizTextChars {
		writeJSON(w, http.StatusBadRequest, errorResp("TEXT_TOO_SHORT", "Text must be at least 50 characters to build a quiz", r))
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 12
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	locale := middleware.GetLocale(r.Context())
	result := h.pipeline.GenerateQuiz(r.Context(), req.Text, req.NumQuestions, req.Difficulty, locale)
	writeJSON(w, http.StatusOK, result)
}
