package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voxlog/internal/config"
	"voxlog/internal/services"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.Ollama{
		BaseURL:        baseURL,
		Model:          "llama3.2",
		TimeoutSeconds: 5,
	})
}

func TestSummarizeParsesModelAnswer(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		answer := `{"language":"English","title":"Standup Notes","formal_text":"We discussed the release.","summary":"- release discussed"}`
		_ = json.NewEncoder(w).Encode(generateResponse{Response: answer})
	}))
	defer server.Close()

	summary, err := newTestClient(server.URL).Summarize(context.Background(), "we talked about the release")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Title != "Standup Notes" {
		t.Fatalf("title %q", summary.Title)
	}
	want := "We discussed the release.\n\n## Summary\n\n- release discussed"
	if summary.Body != want {
		t.Fatalf("body %q", summary.Body)
	}

	if captured.Model != "llama3.2" || captured.Stream {
		t.Fatalf("unexpected request %+v", captured)
	}
	if !strings.Contains(captured.Prompt, "we talked about the release") {
		t.Fatal("prompt missing transcript")
	}
	if !strings.Contains(captured.Prompt, "EXACT SAME LANGUAGE") {
		t.Fatal("prompt missing language instruction")
	}
}

func TestSummarizeRejectsEmptyTranscript(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Summarize(context.Background(), "   ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSummarizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "transcript")
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSummarizeUnparseableAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "Sure! Here is your summary: it was a nice chat."})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "transcript")
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
