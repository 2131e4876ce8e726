package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"studymate-backend/internal/middleware"
	"studymate-backend/internal/models"
)

const minSummaryTextChars = 100

type summaryGenerator interface {
	GenerateSummary(ctx context.Context, text, level string, locale models.Locale) *models.SummaryResult
}

type SummaryHandler struct {
	pipeline summaryGenerator
}

func NewSummaryHandler(pipeline summaryGenerator) *SummaryHandler {
	return &SummaryHandler{pipeline: pipeline}
}

func (h *SummaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fields, ok := validateStruct(&req); !ok {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}
	if len(strings.TrimSpace(req.Text)) < minSummaryTextChars {
		writeJSON(w, http.StatusBadRequest, errorResp("TEXT_TOO_SHORT", "Text must be at least 100 characters to summarize", r))
		return
	}
	if req.Level == "" {
		req.Level = models.LevelModerate
	}

	locale := middleware.GetLocale(r.Context())
	result := h.pipeline.GenerateSummary(r.Context(), req.Text, req.Level, locale)
	writeJSON(w, http.StatusOK, result)
}
