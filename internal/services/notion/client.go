package notion

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

const (
	defaultBaseURL     = "https://api.notion.com"
	notionVersion      = "2022-06-28"
	defaultHTTPTimeout = 30 * time.Second
)

// Client creates pages through the Notion REST API.
type Client struct {
	apiKey        string
	databaseID    string
	defaultStatus string
	baseURL       string
	httpClient    *http.Client
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

// WithBaseURL points the client at a different API host (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient constructs a Notion client from configuration.
func NewClient(cfg config.Notion, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		apiKey:        strings.TrimSpace(cfg.APIKey),
		databaseID:    strings.TrimSpace(cfg.DatabaseID),
		defaultStatus: strings.TrimSpace(cfg.DefaultStatus),
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.defaultStatus == "" {
		client.defaultStatus = "Draft"
	}
	return client
}

// Configured reports whether publishing credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.databaseID != ""
}

type pageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Publish creates a page in the configured database.
//
// The database is expected to have Name (title), Date (date), and Status
// (status or select) properties. Returns the created page URL.
func (c *Client) Publish(ctx context.Context, title, body string) (string, error) {
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "notion", "publish", "notion.api_key is not set", nil)
	}
	if c.databaseID == "" {
		return "", services.Wrap(services.ErrConfiguration, "notion", "publish", "notion.database_id is not set", nil)
	}

	payload := map[string]any{
		"parent": map[string]any{"database_id": c.databaseID},
		"properties": map[string]any{
			"Name": map[string]any{
				"title": []any{
					map[string]any{"text": map[string]any{"content": title}},
				},
			},
			"Date": map[string]any{
				"date": map[string]any{"start": time.Now().UTC().Format(time.RFC3339)},
			},
			"Status": map[string]any{
				"status": map[string]any{"name": c.defaultStatus},
			},
		},
		"children": []any{
			map[string]any{
				"object": "block",
				"type":   "paragraph",
				"paragraph": map[string]any{
					"rich_text": []any{
						map[string]any{"type": "text", "text": map[string]any{"content": body}},
					},
				},
			},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "notion", "encode page", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "notion", "build request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "notion", "publish", "failed to reach Notion API", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "notion", "read response", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrUpstream, "notion", "publish",
			fmt.Sprintf("Notion API error %d: %s", resp.StatusCode, snippet(string(respBody))), nil)
	}

	var page pageResponse
	if err := json.Unmarshal(respBody, &page); err != nil {
		return "", services.Wrap(services.ErrParse, "notion", "decode response", "", err)
	}
	if strings.TrimSpace(page.URL) == "" {
		return "", services.Wrap(services.ErrParse, "notion", "decode response", "page URL missing", nil)
	}
	return page.URL, nil
}

func snippet(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 500 {
		return value[:500]
	}
	return value
}
