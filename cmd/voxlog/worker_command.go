package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"voxlog/internal/logging"
	"voxlog/internal/pipeline"
	"voxlog/internal/services/ollama"
	"voxlog/internal/services/whisper"
	"voxlog/internal/worker"
)

func newWorkerCommand(cmdCtx *commandContext) *cobra.Command {
	var serverURL string
	var token string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a remote worker that polls the server for jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			if serverURL == "" {
				serverURL = cfg.Worker.ServerURL
			}
			if token == "" {
				token = cfg.Server.APIToken
			}
			source, err := worker.NewRemoteSource(serverURL, token)
			if err != nil {
				return err
			}

			summarizer := ollama.NewClient(cfg.Ollama)
			if err := summarizer.HealthCheck(cmd.Context()); err != nil {
				logger.Warn("summarization backend not reachable yet", logging.Error(err))
			}

			driver := pipeline.NewDriver(
				whisper.NewService(cfg.Whisper),
				summarizer,
				cfg.Paths.DataDir,
				logger,
			)
			runner := worker.NewRunner(source, driver, worker.Options{
				PollInterval:  time.Duration(cfg.Worker.PollInterval) * time.Second,
				RetryInterval: time.Duration(cfg.Worker.ErrorRetryInterval) * time.Second,
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "Base URL of the voxlog server")
	cmd.Flags().StringVar(&token, "token", "", "Worker bearer token")
	return cmd
}
