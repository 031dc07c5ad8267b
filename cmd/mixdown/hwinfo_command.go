package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHwinfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hwinfo",
		Short: "Probe hardware encoder availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detector, err := ctx.ensureDetector()
			if err != nil {
				return err
			}

			info := detector.Info(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hardware acceleration: %s\n", yesNo(info.Available))
			if info.Available {
				fmt.Fprintf(out, "Family: %s\n", info.Family)
			}
			fmt.Fprintf(out, "Encoder: %s\n", info.Encoder)
			return nil
		},
	}
}
