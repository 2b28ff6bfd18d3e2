// Package worker drives the processing loop: claim the next pending job,
// run the pipeline on its clips, and report the outcome. The same loop runs
// embedded in the server process or as a standalone remote poller; only the
// Source differs.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"voxlog/internal/logging"
	"voxlog/internal/pipeline"
	"voxlog/internal/queue"
	"voxlog/internal/services"
)

// Source supplies claimed jobs and accepts outcome reports. Next returns
// (nil, nil) when no pending job exists.
type Source interface {
	Next(ctx context.Context) (*queue.ClaimedJob, error)
	Submit(ctx context.Context, jobID, title, body string) error
	Fail(ctx context.Context, jobID, message string) error
}

// Processor turns a claimed job into a finished note.
type Processor interface {
	Process(ctx context.Context, job queue.ClaimedJob) (pipeline.Result, error)
}

// Runner polls a Source and processes one job at a time.
type Runner struct {
	source        Source
	processor     Processor
	pollInterval  time.Duration
	retryInterval time.Duration
	wake          chan struct{}
	logger        *slog.Logger
}

// Options configures a Runner.
type Options struct {
	// PollInterval is the sleep between claim attempts when the queue is
	// empty.
	PollInterval time.Duration
	// RetryInterval is the sleep after a claim or transport error.
	RetryInterval time.Duration
}

// NewRunner constructs a worker runner.
func NewRunner(source Source, processor Processor, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = opts.PollInterval
	}
	return &Runner{
		source:        source,
		processor:     processor,
		pollInterval:  opts.PollInterval,
		retryInterval: opts.RetryInterval,
		wake:          make(chan struct{}, 1),
		logger:        logging.NewComponentLogger(logger, "worker"),
	}
}

// Wake nudges the runner to attempt a claim without waiting out the poll
// interval. Safe to call from any goroutine; nudges raised while a job is
// being processed coalesce into a single extra claim attempt.
func (r *Runner) Wake() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Run polls until the context is canceled. It always returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("worker started", logging.Duration("poll_interval", r.pollInterval))
	for {
		wait := r.pollInterval
		processed, err := r.RunOnce(ctx)
		switch {
		case err != nil && errors.Is(err, context.Canceled):
			return ctx.Err()
		case err != nil:
			r.logger.Error("claim attempt failed", logging.Error(err))
			wait = r.retryInterval
		case processed:
			// Drain the queue before sleeping again.
			wait = 0
		}
		if wait > 0 {
			select {
			case <-ctx.Done():
				r.logger.Info("worker stopping")
				return ctx.Err()
			case <-r.wake:
			case <-time.After(wait):
			}
		} else if ctx.Err() != nil {
			r.logger.Info("worker stopping")
			return ctx.Err()
		}
	}
}

// RunOnce performs a single claim attempt. It reports whether a job was
// claimed; errors are claim or transport failures, never job failures, which
// are recorded against the job instead.
func (r *Runner) RunOnce(ctx context.Context) (bool, error) {
	job, err := r.source.Next(ctx)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}

	logger := r.logger.With(logging.String(logging.FieldJobID, job.ID))
	logger.Info("job claimed",
		logging.String(logging.FieldEventType, "job_claimed"),
		logging.Int("clips", len(job.Clips)))

	start := time.Now()
	result, procErr := r.processor.Process(ctx, *job)
	if procErr != nil {
		logger.Error("job failed",
			logging.String(logging.FieldEventType, "job_failed"),
			logging.Error(procErr),
			logging.Duration("elapsed", time.Since(start)))
		if failErr := r.source.Fail(ctx, job.ID, services.Message(procErr)); failErr != nil {
			logger.Error("failed to record job failure", logging.Error(failErr))
		}
		return true, nil
	}

	if err := r.source.Submit(ctx, job.ID, result.Title, result.Body); err != nil {
		logger.Error("failed to submit job result", logging.Error(err))
		if failErr := r.source.Fail(ctx, job.ID, services.Message(err)); failErr != nil {
			logger.Error("failed to record job failure", logging.Error(failErr))
		}
		return true, nil
	}
	logger.Info("job completed",
		logging.String(logging.FieldEventType, "job_completed"),
		logging.String("title", result.Title),
		logging.Duration("elapsed", time.Since(start)))
	return true, nil
}
