package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mixdown/internal/export"
	"mixdown/internal/player"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var seconds int
	var play bool

	cmd := &cobra.Command{
		Use:   "preview <project>",
		Short: "Render a short preview of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureDurations()
			if err != nil {
				return err
			}
			exporter, err := ctx.newExporter()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, _, err := loadProject(runCtx, cache, args[0])
			if err != nil {
				return err
			}

			path, err := exporter.Preview(runCtx, p, seconds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", path)
			if play {
				return player.Play(path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&seconds, "seconds", export.DefaultPreviewSeconds, "Preview length in seconds")
	cmd.Flags().BoolVar(&play, "play", false, "Open the preview after rendering")
	return cmd
}
