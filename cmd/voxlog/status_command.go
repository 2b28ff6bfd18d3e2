package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxlog/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [job-id]",
		Short: "Show a job's status, or overall server health",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(ctx.serverURL())
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				health, err := client.health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Server:     %s\n", ctx.serverURL())
				fmt.Fprintf(out, "Status:     %s\n", health.Status)
				fmt.Fprintf(out, "Jobs:       %d total\n", health.Total)
				fmt.Fprintf(out, "Pending:    %d\n", health.Pending)
				fmt.Fprintf(out, "Processing: %d\n", health.Processing)
				fmt.Fprintf(out, "Done:       %d\n", health.Done)
				fmt.Fprintf(out, "Error:      %d\n", health.Error)
				return nil
			}

			status, err := client.jobStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Job %s: %s\n", status.JobID, formatStatusLabel(queue.Status(status.Status)))
			if status.ResultURL != "" {
				fmt.Fprintf(out, "Result: %s\n", status.ResultURL)
			}
			if status.ErrorMessage != "" {
				fmt.Fprintf(out, "Error: %s\n", status.ErrorMessage)
			}
			return nil
		},
	}
}
