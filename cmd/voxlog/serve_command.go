package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"voxlog/internal/logging"
	"voxlog/internal/pipeline"
	"voxlog/internal/queue"
	"voxlog/internal/server"
	"voxlog/internal/services/notion"
	"voxlog/internal/services/ollama"
	"voxlog/internal/services/whisper"
	"voxlog/internal/worker"
)

func newServeCommand(cmdCtx *commandContext) *cobra.Command {
	var noWorker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server (optionally with the embedded worker)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lockPath := filepath.Join(cfg.Paths.DataDir, "voxlog.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another voxlog server instance is already running")
			}
			defer func() { _ = lock.Unlock() }()

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open queue store: %w", err)
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			publisher := notion.NewClient(cfg.Notion)

			embedded := cfg.Server.EmbeddedWorker && !noWorker
			var runner *worker.Runner
			var serverOpts []server.Option
			if embedded {
				driver := pipeline.NewDriver(
					whisper.NewService(cfg.Whisper),
					ollama.NewClient(cfg.Ollama),
					cfg.Paths.DataDir,
					logger,
				)
				runner = worker.NewRunner(
					worker.NewLocalSource(store, publisher),
					driver,
					worker.Options{
						PollInterval:  time.Duration(cfg.Worker.PollInterval) * time.Second,
						RetryInterval: time.Duration(cfg.Worker.ErrorRetryInterval) * time.Second,
					},
					logger,
				)
				// Local submissions start processing immediately instead of
				// waiting out the poll interval.
				serverOpts = append(serverOpts, server.WithSubmitHook(runner.Wake))
			}
			srv := server.New(cfg, store, publisher, logger, serverOpts...)

			logger.Info("starting voxlog server",
				logging.String("bind", cfg.Paths.APIBind),
				logging.Bool("embedded_worker", embedded),
				logging.Bool("publisher_configured", publisher.Configured()))

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return srv.ListenAndServe(groupCtx)
			})
			if runner != nil {
				group.Go(func() error {
					return runner.Run(groupCtx)
				})
			}

			err = group.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noWorker, "no-worker", false, "Serve the API without the embedded worker")
	return cmd
}
