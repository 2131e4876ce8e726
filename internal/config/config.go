package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Groq AI
	GroqAPIKey         string
	GroqBaseURL        string
	GroqModel          string
	GroqMaxRetries     int
	GroqRetryDelayMs   int
	GroqRequestsPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		GroqAPIKey:         mustGetEnv("GROQ_API_KEY"),
		GroqBaseURL:        getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:          getEnvOrDefault("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqMaxRetries:     getEnvAsIntOrDefault("GROQ_MAX_RETRIES", 3),
		GroqRetryDelayMs:   getEnvAsIntOrDefault("GROQ_RETRY_DELAY_MS", 1000),
		GroqRequestsPerMin: getEnvAsIntOrDefault("GROQ_REQUESTS_PER_MINUTE", 60),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
