package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxpipe/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools the pipeline relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			headers := []string{"Tool", "Command", "Status", "Notes"}
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				notes := status.Description
				if !status.Available {
					state = "missing"
					notes = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, notes})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tools missing", len(missing))
			}
			return nil
		},
	}
}
