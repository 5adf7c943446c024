package commands

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate task descriptors from a job definitions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			output, _ := cmd.Flags().GetString("output")
			level, _ := cmd.Flags().GetInt("level")

			opts := app.RunOptions{TrustLevel: level}
			if output == "" {
				return c.app.Run(cmd.Context(), file, cmd.OutOrStdout(), opts)
			}

			// Buffer the descriptors so a failed run never truncates
			// an existing output file.
			var buf bytes.Buffer
			if err := c.app.Run(cmd.Context(), file, &buf, opts); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // path is provided by user
				return zerr.With(zerr.Wrap(err, "failed to write output file"), "path", output)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "toolchains.yaml", "Path to the job definitions file")
	cmd.Flags().StringP("output", "o", "", "Write descriptors to this file instead of stdout")
	cmd.Flags().IntP("level", "l", 0, "Override the trust level from the job file")
	return cmd
}
