package worker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxlog/internal/api"
	"voxlog/internal/services"
)

func TestRemoteSourceNext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/queue/next" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(api.ClaimedJob{
			JobID: "j1",
			Clips: []api.ClaimedClip{
				{AudioB64: base64.StdEncoding.EncodeToString([]byte("audio")), Suffix: ".webm"},
			},
		})
	}))
	defer server.Close()

	source, err := NewRemoteSource(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewRemoteSource: %v", err)
	}
	job, err := source.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if job == nil || job.ID != "j1" || len(job.Clips) != 1 {
		t.Fatalf("unexpected job %+v", job)
	}
	if string(job.Clips[0].Payload) != "audio" {
		t.Fatalf("unexpected payload %q", job.Clips[0].Payload)
	}
}

func TestRemoteSourceNextEmptyQueue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	source, err := NewRemoteSource(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewRemoteSource: %v", err)
	}
	job, err := source.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job, got %+v", job)
	}
}

func TestRemoteSourceSubmit(t *testing.T) {
	var captured api.CompleteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/queue/j1/complete" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(api.Ack{JobID: "j1", Status: "done"})
	}))
	defer server.Close()

	source, err := NewRemoteSource(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewRemoteSource: %v", err)
	}
	if err := source.Submit(context.Background(), "j1", "Title", "Body"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if captured.Title != "Title" || captured.Body != "Body" {
		t.Fatalf("unexpected payload %+v", captured)
	}
}

func TestRemoteSourceFailToleratesConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	source, err := NewRemoteSource(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewRemoteSource: %v", err)
	}
	if err := source.Fail(context.Background(), "j1", "boom"); err != nil {
		t.Fatalf("Fail should tolerate conflict: %v", err)
	}
}

func TestRemoteSourceSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid worker token"})
	}))
	defer server.Close()

	source, err := NewRemoteSource(server.URL, "bad")
	if err != nil {
		t.Fatalf("NewRemoteSource: %v", err)
	}
	_, err = source.Next(context.Background())
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNewRemoteSourceValidation(t *testing.T) {
	if _, err := NewRemoteSource("", "tok"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty URL, got %v", err)
	}
	if _, err := NewRemoteSource("http://localhost:8000", ""); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty token, got %v", err)
	}
}
