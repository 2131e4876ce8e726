package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studymate-backend/internal/config"
	"studymate-backend/internal/handlers"
	"studymate-backend/internal/router"
	"studymate-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting StudyMate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Groq Client ────
	groqClient := services.NewGroqClient(
		cfg.GroqAPIKey,
		cfg.GroqBaseURL,
		cfg.GroqModel,
		cfg.GroqMaxRetries,
		cfg.GroqRetryDelayMs,
		cfg.GroqRequestsPerMin,
	)
	log.Printf("✓ Groq client initialized (model: %s)", cfg.GroqModel)

	// ──── Step 3: Initialize Services ────
	pipeline := services.NewPipeline(groqClient)
	fileExtractService := services.NewFileExtractService()

	// ──── Step 4: Initialize Handlers ────
	processFileHandler := handlers.NewProcessFileHandler(fileExtractService, pipeline)
	summaryHandler := handlers.NewSummaryHandler(pipeline)
	quizHandler := handlers.NewQuizHandler(pipeline)
	flashcardHandler := handlers.NewFlashcardHandler(pipeline)
	chatHandler := handlers.NewChatHandler(pipeline)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		processFileHandler,
		summaryHandler,
		quizHandler,
		flashcardHandler,
		chatHandler,
		cfg.FrontendURL,
	)

	// Generation requests block on the model with retries, so the write
	// timeout is generous.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudyMate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
