package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 5 * time.Second

// HTTPConfig holds configuration for an OpenAI compatible chat completions backend
type HTTPConfig struct {
	// BaseURL is the API root, e.g. https://api.openai.com/v1
	BaseURL string

	// APIKey is sent as a bearer token when set
	APIKey string

	// Model is the model name sent with every request
	Model string

	// Timeout bounds a single round trip
	Timeout time.Duration

	// HTTPClient overrides the default client, mostly for tests
	HTTPClient *http.Client
}

type httpProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewHTTP creates a provider speaking the chat completions JSON protocol
func NewHTTP(cfg *HTTPConfig) (*httpProvider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &httpProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  client,
	}, nil
}

// Name identifies the backend
func (p *httpProvider) Name() string {
	return "http:" + p.model
}

// Complete posts the prompt to the chat completions endpoint
func (p *httpProvider) Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	body, err := json.Marshal(&chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: input.System},
			{Role: "user", Content: input.Prompt},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// network failures and timeouts are worth one more try
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, &TransientError{Err: fmt.Errorf("provider responded with status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider responded with status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	return &CompleteOutput{
		Text: strings.TrimSpace(decoded.Choices[0].Message.Content),
	}, nil
}
