// Package api defines the JSON wire types exchanged between clients, the
// server, and remote workers.
package api

// ClipUpload is one base64-encoded audio clip in a submission.
type ClipUpload struct {
	AudioB64 string `json:"audio_b64"`
	Suffix   string `json:"suffix,omitempty"`
}

// SubmitRequest is the payload for POST /api/submit.
type SubmitRequest struct {
	Clips []ClipUpload `json:"clips"`
}

// SubmitResponse acknowledges an accepted submission.
type SubmitResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// JobStatus is the client-facing projection of a job.
type JobStatus struct {
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	ResultURL    string `json:"result_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ClaimedClip carries one clip of a claimed job to a remote worker.
type ClaimedClip struct {
	AudioB64 string `json:"audio_b64"`
	Suffix   string `json:"suffix"`
}

// ClaimedJob is the response body for GET /api/queue/next.
type ClaimedJob struct {
	JobID string        `json:"job_id"`
	Clips []ClaimedClip `json:"clips"`
}

// CompleteRequest is the payload a worker sends when a job finished.
type CompleteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FailRequest is the payload a worker sends when a job failed.
type FailRequest struct {
	ErrorMessage string `json:"error_message"`
}

// Ack is the generic acknowledgement for worker reports.
type Ack struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// ErrorResponse is the uniform error body for non-success statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports service liveness and queue depth.
type HealthResponse struct {
	Status     string `json:"status"`
	Total      int    `json:"total"`
	Pending    int    `json:"pending"`
	Processing int    `json:"processing"`
	Done       int    `json:"done"`
	Error      int    `json:"error"`
}
