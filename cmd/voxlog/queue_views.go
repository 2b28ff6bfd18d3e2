package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"voxlog/internal/queue"
)

var statusTitler = cases.Title(language.English)

func formatStatusLabel(status queue.Status) string {
	value := strings.TrimSpace(string(status))
	if value == "" {
		return ""
	}
	return statusTitler.String(value)
}

func formatDisplayTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func buildQueueListRows(jobs []*queue.Job) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		detail := ""
		switch job.Status {
		case queue.StatusDone:
			detail = job.ResultURL
		case queue.StatusError:
			detail = job.ErrorMessage
		}
		completed := "-"
		if job.CompletedAt != nil {
			completed = formatDisplayTime(*job.CompletedAt)
		}
		rows = append(rows, []string{
			job.ID,
			formatStatusLabel(job.Status),
			formatDisplayTime(job.CreatedAt),
			completed,
			detail,
		})
	}
	return rows
}

func buildQueueStatusRows(stats map[queue.Status]int) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, status := range queue.AllStatuses() {
		count, ok := stats[status]
		if !ok {
			continue
		}
		rows = append(rows, []string{formatStatusLabel(status), strconv.Itoa(count)})
	}
	return rows
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printRows renders a rounded table on a terminal and tab-separated lines
// when output is piped.
func printRows(headers []string, rows [][]string, rightAligned ...int) string {
	if stdoutIsTerminal() {
		return renderTable(headers, rows, rightAligned...)
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

func pluralize(count int64, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
