package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"studymate-backend/internal/middleware"
	"studymate-backend/internal/models"
)

const minFlashcardTextChars = 20

type flashcardGenerator interface {
	GenerateFlashcards(ctx context.Context, text string, numCards int, locale models.Locale) *models.FlashcardSet
}

type FlashcardHandler struct {
	pipeline flashcardGenerator
}

func NewFlashcardHandler(pipeline flashcardGenerator) *FlashcardHandler {
	return &FlashcardHandler{pipeline: pipeline}
}

func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fields, ok := validateStruct(&req); !ok {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}
	if len(strings.TrimSpace(req.Text)) < minFlashcardTextChars {
		writeJSON(w, http.StatusBadRequest, errorResp("TEXT_TOO_SHORT", "Text must be at least 20 characters to build flashcards", r))
		return
	}
	if req.NumCards == 0 {
		req.NumCards = 9
	}

	locale := middleware.GetLocale(r.Context())
	result := h.pipeline.GenerateFlashcards(r.Context(), req.Text, req.NumCards, locale)
	writeJSON(w, http.StatusOK, result)
}
