package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"voxlog/internal/api"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <audio-file> [audio-file...]",
		Short: "Submit audio files as a new job",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clips := make([]api.ClipUpload, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if len(data) == 0 {
					return fmt.Errorf("%s is empty", path)
				}
				clips = append(clips, api.ClipUpload{
					AudioB64: base64.StdEncoding.EncodeToString(data),
					Suffix:   strings.ToLower(filepath.Ext(path)),
				})
			}

			client := newAPIClient(ctx.serverURL())
			resp, err := client.submit(cmd.Context(), api.SubmitRequest{Clips: clips})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job %s accepted (%s)\n", resp.JobID, pluralize(int64(len(clips)), "clip"))
			fmt.Fprintf(out, "Check progress with: voxlog status %s\n", resp.JobID)
			return nil
		},
	}
	return cmd
}
