package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxlog/internal/config"
	"voxlog/internal/services"
)

func testNotionConfig() config.Notion {
	return config.Notion{
		APIKey:         "secret-key",
		DatabaseID:     "db-123",
		DefaultStatus:  "Draft",
		TimeoutSeconds: 5,
	}
}

func TestPublishCreatesPage(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != notionVersion {
			t.Fatalf("unexpected Notion-Version %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":  "page-1",
			"url": "https://notion.so/page-1",
		})
	}))
	defer server.Close()

	client := NewClient(testNotionConfig(), WithBaseURL(server.URL))
	url, err := client.Publish(context.Background(), "Morning Notes", "body text")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if url != "https://notion.so/page-1" {
		t.Fatalf("unexpected URL %q", url)
	}

	parent, ok := captured["parent"].(map[string]any)
	if !ok || parent["database_id"] != "db-123" {
		t.Fatalf("unexpected parent %v", captured["parent"])
	}
	props, ok := captured["properties"].(map[string]any)
	if !ok {
		t.Fatalf("missing properties")
	}
	for _, name := range []string{"Name", "Date", "Status"} {
		if _, ok := props[name]; !ok {
			t.Fatalf("missing property %q", name)
		}
	}
	children, ok := captured["children"].([]any)
	if !ok || len(children) != 1 {
		t.Fatalf("expected one child block, got %v", captured["children"])
	}
}

func TestPublishRequiresCredentials(t *testing.T) {
	cfg := testNotionConfig()
	cfg.APIKey = ""
	client := NewClient(cfg)
	if _, err := client.Publish(context.Background(), "t", "b"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	cfg = testNotionConfig()
	cfg.DatabaseID = ""
	client = NewClient(cfg)
	if _, err := client.Publish(context.Background(), "t", "b"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestPublishUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"validation failed"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testNotionConfig(), WithBaseURL(server.URL))
	_, err := client.Publish(context.Background(), "t", "b")
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestConfigured(t *testing.T) {
	if !NewClient(testNotionConfig()).Configured() {
		t.Fatal("expected configured client")
	}
	cfg := testNotionConfig()
	cfg.APIKey = ""
	if NewClient(cfg).Configured() {
		t.Fatal("expected unconfigured client")
	}
}
