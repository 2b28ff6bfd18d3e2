package api

import (
	"encoding/base64"
	"testing"
	"time"

	"voxlog/internal/queue"
)

func TestJobStatusFromJob(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		job  queue.Job
		want JobStatus
	}{
		{
			name: "pending hides result and error",
			job:  queue.Job{ID: "a", Status: queue.StatusPending, ResultURL: "stale", ErrorMessage: "stale"},
			want: JobStatus{JobID: "a", Status: "pending"},
		},
		{
			name: "done exposes result url",
			job:  queue.Job{ID: "b", Status: queue.StatusDone, CompletedAt: &now, ResultURL: "https://notion.so/p"},
			want: JobStatus{JobID: "b", Status: "done", ResultURL: "https://notion.so/p"},
		},
		{
			name: "error exposes message only",
			job:  queue.Job{ID: "c", Status: queue.StatusError, CompletedAt: &now, ErrorMessage: "summarize failed"},
			want: JobStatus{JobID: "c", Status: "error", ErrorMessage: "summarize failed"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := JobStatusFromJob(tc.job); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClipsFromUploads(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("audio-bytes"))
	clips, err := ClipsFromUploads([]ClipUpload{
		{AudioB64: audio, Suffix: "wav"},
		{AudioB64: audio},
	})
	if err != nil {
		t.Fatalf("ClipsFromUploads: %v", err)
	}
	if string(clips[0].Payload) != "audio-bytes" {
		t.Fatalf("unexpected payload %q", clips[0].Payload)
	}
	if clips[0].FormatHint != ".wav" {
		t.Fatalf("suffix not normalized: %q", clips[0].FormatHint)
	}
	if clips[1].FormatHint != queue.DefaultFormatHint {
		t.Fatalf("missing suffix should default, got %q", clips[1].FormatHint)
	}
}

func TestClipsFromUploadsRejectsBadInput(t *testing.T) {
	if _, err := ClipsFromUploads([]ClipUpload{{AudioB64: "not base64!!"}}); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := ClipsFromUploads([]ClipUpload{{AudioB64: ""}}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestClaimedJobRoundTrip(t *testing.T) {
	original := queue.ClaimedJob{
		ID: "job1",
		Clips: []queue.Clip{
			{Payload: []byte("one"), FormatHint: ".webm"},
			{Payload: []byte("two"), FormatHint: ".wav"},
		},
	}
	decoded, err := ClaimedJobToQueue(ClaimedJobFromQueue(original))
	if err != nil {
		t.Fatalf("ClaimedJobToQueue: %v", err)
	}
	if decoded.ID != original.ID || len(decoded.Clips) != 2 {
		t.Fatalf("round trip mangled job: %+v", decoded)
	}
	for i := range original.Clips {
		if string(decoded.Clips[i].Payload) != string(original.Clips[i].Payload) {
			t.Fatalf("clip %d payload mismatch", i)
		}
		if decoded.Clips[i].FormatHint != original.Clips[i].FormatHint {
			t.Fatalf("clip %d suffix mismatch", i)
		}
	}
}
