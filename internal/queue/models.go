package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusDone,
	StatusError,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusError
}

// Job is one submitted recording session tracked through the pipeline.
type Job struct {
	ID           string
	Status       Status
	CreatedAt    time.Time
	CompletedAt  *time.Time
	ResultURL    string
	ErrorMessage string
}

// IsTerminal reports whether the job has reached done or error.
func (j Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// Clip is a single audio recording belonging to a job. Payload carries the
// raw encoded audio bytes; FormatHint is the file suffix the transcriber
// uses to pick a decoder (".webm", ".wav", ...).
type Clip struct {
	Payload    []byte
	FormatHint string
}

// DefaultFormatHint is applied when a submission omits the clip suffix.
const DefaultFormatHint = ".webm"

// ClaimedJob is the unit handed to a worker by ClaimNext: the job identifier
// plus every clip in submission order. Clips are immutable after claim.
type ClaimedJob struct {
	ID    string
	Clips []Clip
}

// HealthSummary describes aggregated queue counts per lifecycle state.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Done       int
	Error      int
}
