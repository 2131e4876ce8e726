package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// ErrRateLimited marks a completion that failed because the provider is
// throttling us. Callers use it to annotate responses as degraded; it is
// never surfaced to the end user as a hard failure.
var ErrRateLimited = errors.New("model provider rate limit exceeded")

// CompletionRequest carries the per-task model parameters.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Completer is the single upstream contract of the generation pipeline.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// GroqClient talks to Groq's OpenAI-compatible chat completion API with
// client-side rate limiting and bounded, linearly backed-off retries.
type GroqClient struct {
	client     *openai.Client
	model      string
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

func NewGroqClient(apiKey, baseURL, model string, maxRetries, retryDelayMs, requestsPerMin int) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if requestsPerMin < 1 {
		requestsPerMin = 60
	}

	return &GroqClient{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMin)/60.0), requestsPerMin),
		maxRetries: maxRetries,
		baseDelay:  time.Duration(retryDelayMs) * time.Millisecond,
	}
}

// Complete invokes the model once per attempt, retrying transport failures
// with linear backoff. On exhausting retries it returns an empty string:
// downstream stages treat the empty string as "model unavailable" and fall
// back to synthetic content instead of propagating the failure.
func (c *GroqClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	text, err := withRetries(ctx, c.maxRetries, LinearBackoff(c.baseDelay), func(ctx context.Context) (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
			TopP:        req.TopP,
		})
		if err != nil {
			return "", classifyAPIError(err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		log.Printf("completion failed after %d attempts: %v", c.maxRetries, err)
		return "", err
	}
	return text, nil
}

func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}
