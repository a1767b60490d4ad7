// internal/generate/client.go
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the Azure OpenAI connection settings. All values come from
// external configuration; nothing is hard-coded.
type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// Generation parameters. Tuning values, not a contract: the prompt text is
// the deterministic part.
const (
	temperature = 0.8
	topP        = 0.95
	maxTokens   = 800

	defaultDeployment = "gpt-5-mini"
	defaultAPIVersion = "2025-04-01-preview"
	defaultTimeout    = 30 * time.Second
)

// Client is a minimal Azure OpenAI chat-completions client. One blocking
// request per call with a bounded timeout; no retry, no backoff. A failed
// call is terminal for that segment/event combination only.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Deployment == "" {
		cfg.Deployment = defaultDeployment
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	TopP           float64         `json:"top_p"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completions request and returns the assistant
// message content verbatim.
func (c *Client) Complete(ctx context.Context, systemMsg, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("generation provider API key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemMsg},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		TopP:           topP,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.Endpoint, c.cfg.Deployment, c.cfg.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("malformed provider response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("provider error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
