package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"studymate-backend/internal/middleware"
	"studymate-backend/internal/models"
	"studymate-backend/internal/services"
)

const (
	maxUploadBytes     = 20 << 20 // 20 MB
	minExtractedChars  = 50
	analysisConfidence = 0.95
	degradedConfidence = 0.5
)

type documentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, text string, locale models.Locale) (*services.DocumentAnalysis, bool)
}

type textExtractor interface {
	SupportedExt(filename string) bool
	Extract(filename string, data []byte) (*services.Extraction, error)
}

type ProcessFileHandler struct {
	extractor textExtractor
	pipeline  documentAnalyzer
}

func NewProcessFileHandler(extractor textExtractor, pipeline documentAnalyzer) *ProcessFileHandler {
	return &ProcessFileHandler{extractor: extractor, pipeline: pipeline}
}

// Process accepts a multipart upload, extracts its text and returns the
// document with model-derived study metadata.
func (h *ProcessFileHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("UPLOAD_ERROR", "Could not parse upload; the limit is 20MB", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("UPLOAD_ERROR", "Missing file field", r))
		return
	}
	defer file.Close()

	if !h.extractor.SupportedExt(header.Filename) {
		writeJSON(w, http.StatusBadRequest, errorResp("UNSUPPORTED_TYPE", "Only .txt, .pdf and .docx files are supported", r))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("UPLOAD_ERROR", "Could not read uploaded file", r))
		return
	}

	extraction, err := h.extractor.Extract(header.Filename, data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", "Could not extract text from the file", r))
		return
	}
	if len(strings.TrimSpace(extraction.Text)) < minExtractedChars {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("TEXT_TOO_SHORT", "The file contains too little text to analyze", r))
		return
	}

	locale := middleware.GetLocale(r.Context())
	analysis, degraded := h.pipeline.AnalyzeDocument(r.Context(), extraction.Text, locale)

	confidence := analysisConfidence
	if degraded {
		confidence = degradedConfidence
	}
	words := len(strings.Fields(extraction.Text))

	writeJSON(w, http.StatusOK, models.ProcessedFile{
		ID:            uuid.NewString(),
		Filename:      header.Filename,
		Type:          strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."),
		Size:          header.Size,
		Content:       extraction.Text,
		ExtractedText: extraction.Text,
		Metadata: models.FileMetadata{
			Pages:      extraction.Pages,
			WordCount:  words,
			Language:   analysis.Language,
			Topics:     analysis.Topics,
			Confidence: confidence,
		},
		AIInsights: models.FileInsights{
			Difficulty:        analysis.Difficulty,
			EstimatedReadTime: analysis.EstimatedReadTime,
			KeyConcepts:       analysis.KeyConcepts,
			Recommendations:   analysis.Recommendations,
			Degraded:          degraded,
		},
	})
}
