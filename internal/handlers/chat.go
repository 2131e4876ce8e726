package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"studymate-backend/internal/middleware"
	"studymate-backend/internal/models"
)

type chatGenerator interface {
	GenerateChat(ctx context.Context, req *models.GenerateChatRequest, locale models.Locale) *models.ChatReply
}

type ChatHandler struct {
	pipeline chatGenerator
}

func NewChatHandler(pipeline chatGenerator) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"question": "is required"}, r))
		return
	}

	locale := middleware.GetLocale(r.Context())
	reply := h.pipeline.GenerateChat(r.Context(), &req, locale)
	writeJSON(w, http.StatusOK, reply)
}
