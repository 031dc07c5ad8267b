package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mixdown/internal/config"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>...",
		Short: "Report media durations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureDurations()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandPath(arg)
				if err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
				duration := cache.Duration(cmd.Context(), path)
				value := "unknown"
				if duration > 0 {
					value = fmt.Sprintf("%s (%.2fs)", formatSeconds(duration), duration)
				}
				rows = append(rows, []string{arg, value})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
