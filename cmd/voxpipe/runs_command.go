package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voxpipe/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatusFilter(statusFilter)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			headers := []string{"ID", "Source", "Language", "Status", "Stage", "Started", "Error"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					filepath.Base(run.Source),
					run.TargetLanguage,
					string(run.Status),
					run.Stage,
					run.CreatedAt.Local().Format(time.DateTime),
					truncate(run.ErrorMessage, 48),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "Filter by status (running, completed, failed)")
	return cmd
}

func parseStatusFilter(filter string) ([]runstore.Status, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return nil, nil
	}
	switch status := runstore.Status(filter); status {
	case runstore.StatusRunning, runstore.StatusCompleted, runstore.StatusFailed:
		return []runstore.Status{status}, nil
	default:
		return nil, fmt.Errorf("unknown status %q (running, completed, failed)", filter)
	}
}

func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
