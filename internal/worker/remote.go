package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voxlog/internal/api"
	"voxlog/internal/queue"
	"voxlog/internal/services"
)

// RemoteSource claims jobs from a voxlog server over HTTP. It backs the
// standalone worker process; the server keeps ownership of publishing.
type RemoteSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// RemoteOption customizes a RemoteSource.
type RemoteOption func(*RemoteSource)

// WithRemoteHTTPClient overrides the default HTTP client.
func WithRemoteHTTPClient(client *http.Client) RemoteOption {
	return func(s *RemoteSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewRemoteSource wires a claim source against serverURL, authenticating
// worker endpoints with the shared token.
func NewRemoteSource(serverURL, token string, opts ...RemoteOption) (*RemoteSource, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if trimmed == "" {
		return nil, services.Wrap(services.ErrConfiguration, "worker", "remote source", "server URL is required", nil)
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "worker", "remote source", fmt.Sprintf("invalid server URL %q", serverURL), err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "worker", "remote source", "worker token is required", nil)
	}
	return &RemoteSource{
		baseURL:    trimmed,
		token:      token,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// Next asks the server for the next pending job. A 204 means the queue is
// empty and returns (nil, nil).
func (s *RemoteSource) Next(ctx context.Context) (*queue.ClaimedJob, error) {
	resp, err := s.do(ctx, http.MethodGet, "/api/queue/next", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil, nil
	case http.StatusOK:
	default:
		return nil, s.statusError("claim next", resp)
	}

	var claimed api.ClaimedJob
	if err := json.NewDecoder(resp.Body).Decode(&claimed); err != nil {
		return nil, services.Wrap(services.ErrParse, "worker", "claim next", "", err)
	}
	job, err := api.ClaimedJobToQueue(claimed)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "worker", "claim next", "", err)
	}
	return &job, nil
}

// Submit reports a finished note. The server publishes it and marks the job
// done; a 502 means the server recorded the publish failure itself.
func (s *RemoteSource) Submit(ctx context.Context, jobID, title, body string) error {
	payload, err := json.Marshal(api.CompleteRequest{Title: title, Body: body})
	if err != nil {
		return services.Wrap(services.ErrUpstream, "worker", "submit result", "", err)
	}
	resp, err := s.do(ctx, http.MethodPost, "/api/queue/"+jobID+"/complete", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return s.statusError("submit result", resp)
	}
	return nil
}

func (s *RemoteSource) Fail(ctx context.Context, jobID, message string) error {
	payload, err := json.Marshal(api.FailRequest{ErrorMessage: message})
	if err != nil {
		return services.Wrap(services.ErrUpstream, "worker", "report failure", "", err)
	}
	resp, err := s.do(ctx, http.MethodPost, "/api/queue/"+jobID+"/fail", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		// The server already finished the job, usually because it recorded
		// a publish failure before this report arrived.
		return nil
	default:
		return s.statusError("report failure", resp)
	}
}

func (s *RemoteSource) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "worker", "build request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "worker", "reach server", s.baseURL, err)
	}
	return resp, nil
}

func (s *RemoteSource) statusError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(body))
	var wire api.ErrorResponse
	if json.Unmarshal(body, &wire) == nil && wire.Error != "" {
		detail = wire.Error
	}
	return services.Wrap(services.ErrUpstream, "worker", operation,
		fmt.Sprintf("server returned %d: %s", resp.StatusCode, detail), nil)
}
