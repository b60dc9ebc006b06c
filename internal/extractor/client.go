// Package extractor holds the external LLM collaborators: a chat-completion
// HTTP client and the resolution classifier built on top of it. The analysis
// core only sees these through small interfaces; nothing else in the module
// constructs a network client.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"call-insights-go/internal/config"
	"call-insights-go/internal/logger"
)

// Client calls a Cohere-style chat endpoint: POST {model, message,
// temperature, max_tokens} -> {text}. Configure with COMPLETION_URL and
// COMPLETION_API_KEY; set USE_MOCK_LLM=true for an offline deterministic
// reply.
type Client struct {
	url         string
	apiKey      string
	settings    config.ChatSettings
	httpClient  *http.Client
	httpTimeout time.Duration
	maxRetry    time.Duration
}

// NewClient reads endpoint configuration from the environment.
func NewClient(settings config.ChatSettings) *Client {
	timeout := 25 * time.Second
	return &Client{
		url:         os.Getenv("COMPLETION_URL"),
		apiKey:      os.Getenv("COMPLETION_API_KEY"),
		settings:    settings,
		httpClient:  &http.Client{Timeout: timeout},
		httpTimeout: timeout,
		maxRetry:    45 * time.Second,
	}
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// Complete sends the prompt and returns the raw reply text. Retries with
// exponential backoff on transport and 5xx failures; 4xx responses are
// permanent.
func (c *Client) Complete(prompt string) (string, error) {
	if os.Getenv("USE_MOCK_LLM") == "true" {
		return "Sentiment: Neutral\nIntensity: 3\nContext: mock reply", nil
	}
	if c.url == "" || c.apiKey == "" {
		return "", fmt.Errorf("completion service not configured")
	}

	log := logger.New().WithField("component", "completion-client")

	payload, _ := json.Marshal(chatRequest{
		Model:       c.settings.Model,
		Message:     prompt,
		Temperature: c.settings.Temperature,
		MaxTokens:   c.settings.MaxTokens,
	})

	var text string
	var lastErr error
	op := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpTimeout)
		defer cancel()

		req, _ := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("completion request failed")
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("completion server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("completion request rejected: %s", string(body))
			return backoff.Permanent(lastErr)
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		text = parsed.Text
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxRetry
	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("completion failed: %w", lastErr)
	}
	return text, nil
}
