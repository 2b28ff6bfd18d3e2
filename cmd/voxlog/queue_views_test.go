package main

import (
	"testing"
	"time"

	"voxlog/internal/queue"
)

func TestFormatStatusLabel(t *testing.T) {
	cases := map[queue.Status]string{
		queue.StatusPending:    "Pending",
		queue.StatusProcessing: "Processing",
		queue.StatusDone:       "Done",
		queue.StatusError:      "Error",
	}
	for status, want := range cases {
		if got := formatStatusLabel(status); got != want {
			t.Errorf("formatStatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
	if got := formatStatusLabel(""); got != "" {
		t.Errorf("empty status rendered as %q", got)
	}
}

func TestBuildQueueListRows(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	completed := created.Add(5 * time.Minute)
	jobs := []*queue.Job{
		{ID: "aaa111", Status: queue.StatusPending, CreatedAt: created},
		{ID: "bbb222", Status: queue.StatusDone, CreatedAt: created, CompletedAt: &completed, ResultURL: "https://notion.so/p"},
		{ID: "ccc333", Status: queue.StatusError, CreatedAt: created, CompletedAt: &completed, ErrorMessage: "boom"},
	}

	rows := buildQueueListRows(jobs)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][4] != "" {
		t.Errorf("pending row detail = %q, want empty", rows[0][4])
	}
	if rows[1][4] != "https://notion.so/p" {
		t.Errorf("done row detail = %q", rows[1][4])
	}
	if rows[2][4] != "boom" {
		t.Errorf("error row detail = %q", rows[2][4])
	}
	if rows[0][3] != "-" {
		t.Errorf("pending row completed = %q, want -", rows[0][3])
	}
}

func TestBuildQueueStatusRowsOrdering(t *testing.T) {
	rows := buildQueueStatusRows(map[queue.Status]int{
		queue.StatusError:   2,
		queue.StatusPending: 5,
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Pending" || rows[0][1] != "5" {
		t.Errorf("unexpected first row %v", rows[0])
	}
	if rows[1][0] != "Error" || rows[1][1] != "2" {
		t.Errorf("unexpected second row %v", rows[1])
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "job"); got != "1 job" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "job"); got != "3 jobs" {
		t.Errorf("pluralize(3) = %q", got)
	}
}
