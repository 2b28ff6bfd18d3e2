package api

import (
	"encoding/base64"
	"fmt"
	"strings"

	"voxlog/internal/queue"
)

// JobStatusFromJob projects a stored job into its wire form. Result and
// error fields surface only in their matching terminal state.
func JobStatusFromJob(job queue.Job) JobStatus {
	status := JobStatus{
		JobID:  job.ID,
		Status: string(job.Status),
	}
	switch job.Status {
	case queue.StatusDone:
		status.ResultURL = job.ResultURL
	case queue.StatusError:
		status.ErrorMessage = job.ErrorMessage
	}
	return status
}

// ClipsFromUploads decodes submitted clips into storage form. Clips with an
// empty decoded payload are rejected so the queue never holds silent jobs.
func ClipsFromUploads(uploads []ClipUpload) ([]queue.Clip, error) {
	clips := make([]queue.Clip, 0, len(uploads))
	for i, upload := range uploads {
		payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(upload.AudioB64))
		if err != nil {
			return nil, fmt.Errorf("clip %d: invalid base64 audio: %w", i, err)
		}
		if len(payload) == 0 {
			return nil, fmt.Errorf("clip %d: empty audio payload", i)
		}
		clips = append(clips, queue.Clip{
			Payload:    payload,
			FormatHint: normalizeSuffix(upload.Suffix),
		})
	}
	return clips, nil
}

// ClaimedJobFromQueue encodes a claimed job for transport to a remote worker.
func ClaimedJobFromQueue(job queue.ClaimedJob) ClaimedJob {
	out := ClaimedJob{
		JobID: job.ID,
		Clips: make([]ClaimedClip, 0, len(job.Clips)),
	}
	for _, clip := range job.Clips {
		out.Clips = append(out.Clips, ClaimedClip{
			AudioB64: base64.StdEncoding.EncodeToString(clip.Payload),
			Suffix:   clip.FormatHint,
		})
	}
	return out
}

// ClaimedJobToQueue decodes a transported claim back into queue form.
func ClaimedJobToQueue(job ClaimedJob) (queue.ClaimedJob, error) {
	out := queue.ClaimedJob{
		ID:    job.JobID,
		Clips: make([]queue.Clip, 0, len(job.Clips)),
	}
	for i, clip := range job.Clips {
		payload, err := base64.StdEncoding.DecodeString(clip.AudioB64)
		if err != nil {
			return queue.ClaimedJob{}, fmt.Errorf("clip %d: invalid base64 audio: %w", i, err)
		}
		out.Clips = append(out.Clips, queue.Clip{
			Payload:    payload,
			FormatHint: normalizeSuffix(clip.Suffix),
		})
	}
	return out, nil
}

// HealthFromSummary projects queue counts into the health body.
func HealthFromSummary(summary queue.HealthSummary) HealthResponse {
	return HealthResponse{
		Status:     "ok",
		Total:      summary.Total,
		Pending:    summary.Pending,
		Processing: summary.Processing,
		Done:       summary.Done,
		Error:      summary.Error,
	}
}

func normalizeSuffix(suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return queue.DefaultFormatHint
	}
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return suffix
}
