package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voxlog/internal/config"
	"voxlog/internal/services"
)

const defaultHTTPTimeout = 120 * time.Second

// Summary is the model's structured answer, already assembled for publishing.
type Summary struct {
	Title string
	Body  string
}

// Client wraps the Ollama generate API.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an Ollama client from configuration.
func NewClient(cfg config.Ollama, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:      strings.TrimSpace(cfg.Model),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = "http://localhost:11434"
	}
	return client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Summarize asks the model for a title and formal body covering the
// transcript. Empty transcripts are rejected before any network call.
func (c *Client) Summarize(ctx context.Context, transcript string) (Summary, error) {
	var empty Summary
	if strings.TrimSpace(transcript) == "" {
		return empty, services.Wrap(services.ErrValidation, "ollama", "summarize", "empty transcript cannot be summarized", nil)
	}

	endpoint := c.baseURL + "/api/generate"
	payload := generateRequest{
		Model:  c.model,
		Prompt: buildSummarizePrompt(transcript),
		Stream: false,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "encode request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "build request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "summarize", fmt.Sprintf("failed to reach Ollama at %s", endpoint), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "read response", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "summarize",
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, snippet(string(body))), nil)
	}

	var generated generateResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		return empty, services.Wrap(services.ErrParse, "ollama", "decode response", "", err)
	}
	if strings.TrimSpace(generated.Response) == "" {
		return empty, services.Wrap(services.ErrUpstream, "ollama", "summarize", "Ollama returned an empty response", nil)
	}

	summary, err := decodeSummaryPayload(generated.Response, transcript)
	if err != nil {
		return empty, err
	}
	return summary, nil
}

// HealthCheck verifies the backend answers at all.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return services.Wrap(services.ErrUpstream, "ollama", "health", "", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrUpstream, "ollama", "health", "backend unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrUpstream, "ollama", "health", fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}
	return nil
}

func snippet(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 500 {
		return value[:500]
	}
	return value
}
