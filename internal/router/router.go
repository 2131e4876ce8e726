package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studymate-backend/internal/handlers"
	"studymate-backend/internal/middleware"
)

func New(
	processFileHandler *handlers.ProcessFileHandler,
	summaryHandler *handlers.SummaryHandler,
	quizHandler *handlers.QuizHandler,
	flashcardHandler *handlers.FlashcardHandler,
	chatHandler *handlers.ChatHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))
	r.Use(middleware.Locale)

	// Generation rate limiter (30 req/min per IP)
	genLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(genLimiter.Middleware)
			r.Post("/process-file", processFileHandler.Process)
			r.Post("/generate-summary", summaryHandler.Generate)
			r.Post("/generate-quiz", quizHandler.Generate)
			r.Post("/generate-flashcards", flashcardHandler.Generate)
			r.Post("/generate-chat", chatHandler.Generate)
		})
	})

	return r
}
