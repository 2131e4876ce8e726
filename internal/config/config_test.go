package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_PanicsWhenMissing(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VAR")
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required variable")
		}
	}()
	mustGetEnv("TEST_REQUIRED_VAR")
}

func TestLoad_GroqDefaults(t *testing.T) {
	os.Setenv("GROQ_API_KEY", "test-key")
	defer os.Unsetenv("GROQ_API_KEY")

	cfg := Load()

	if cfg.GroqAPIKey != "test-key" {
		t.Errorf("Expected api key from env, got %q", cfg.GroqAPIKey)
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("Expected default base URL, got %q", cfg.GroqBaseURL)
	}
	if cfg.GroqModel != "llama-3.1-8b-instant" {
		t.Errorf("Expected default model, got %q", cfg.GroqModel)
	}
	if cfg.GroqMaxRetries != 3 {
		t.Errorf("Expected 3 retries by default, got %d", cfg.GroqMaxRetries)
	}
	if cfg.GroqRetryDelayMs != 1000 {
		t.Errorf("Expected 1000ms base delay, got %d", cfg.GroqRetryDelayMs)
	}
}
