package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxlog/internal/logging"
	"voxlog/internal/queue"
	"voxlog/internal/services"
	"voxlog/internal/services/ollama"
)

const transcriptHeading = "\n\n## Original Transcript\n\n"

// Transcriber converts one audio file into text.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path, outputDir string) (string, error)
}

// Summarizer condenses a transcript into a titled note body.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (ollama.Summary, error)
}

// Result is the finished note for a job, ready to publish.
type Result struct {
	Title      string
	Body       string
	Transcript string
}

// Driver runs the transcribe and summarize stages for claimed jobs.
type Driver struct {
	transcriber Transcriber
	summarizer  Summarizer
	workDir     string
	logger      *slog.Logger
}

// NewDriver constructs a pipeline driver. workDir hosts the per-job scratch
// directories; empty means the system temp dir.
func NewDriver(transcriber Transcriber, summarizer Summarizer, workDir string, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{
		transcriber: transcriber,
		summarizer:  summarizer,
		workDir:     workDir,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs the full pipeline for one claimed job. Scratch files are
// removed on every return path.
func (d *Driver) Process(ctx context.Context, job queue.ClaimedJob) (Result, error) {
	var empty Result
	if len(job.Clips) == 0 {
		return empty, services.Wrap(services.ErrValidation, "pipeline", "process", "job has no clips", nil)
	}

	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, d.logger)

	scratch, err := os.MkdirTemp(d.workDir, "voxlog-job-"+job.ID+"-")
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "pipeline", "create scratch dir", "", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			logger.Warn("failed to remove scratch dir",
				logging.String("path", scratch),
				logging.Error(rmErr))
		}
	}()

	transcript, err := d.transcribe(services.WithStage(ctx, "transcribe"), logger, job, scratch)
	if err != nil {
		return empty, err
	}

	start := time.Now()
	summary, err := d.summarizer.Summarize(services.WithStage(ctx, "summarize"), transcript)
	if err != nil {
		return empty, err
	}
	logger.Info("transcript summarized",
		logging.String("title", summary.Title),
		logging.Duration("elapsed", time.Since(start)))

	return Result{
		Title:      summary.Title,
		Body:       summary.Body + transcriptHeading + transcript,
		Transcript: transcript,
	}, nil
}

func (d *Driver) transcribe(ctx context.Context, logger *slog.Logger, job queue.ClaimedJob, scratch string) (string, error) {
	texts := make([]string, 0, len(job.Clips))
	for i, clip := range job.Clips {
		suffix := clip.FormatHint
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + strings.TrimSpace(suffix)
		}
		if suffix == "." {
			suffix = queue.DefaultFormatHint
		}
		path := filepath.Join(scratch, fmt.Sprintf("clip-%03d%s", i, suffix))
		if err := os.WriteFile(path, clip.Payload, 0o600); err != nil {
			return "", services.Wrap(services.ErrExternalTool, "pipeline", "write clip", path, err)
		}

		start := time.Now()
		text, err := d.transcriber.TranscribeFile(ctx, path, scratch)
		if err != nil {
			return "", err
		}
		logger.Info("clip transcribed",
			logging.Int("clip", i),
			logging.Int("chars", len(text)),
			logging.Duration("elapsed", time.Since(start)))
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	transcript := strings.Join(texts, " ")
	if transcript == "" {
		return "", services.Wrap(services.ErrExternalTool, "pipeline", "transcribe", "no speech recognized in any clip", nil)
	}
	return transcript, nil
}
