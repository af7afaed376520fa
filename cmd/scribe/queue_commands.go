package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scribe/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage recorded outcomes",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings and their processing state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open outcome store: %w", err)
			}
			defer store.Close()

			items, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list recordings: %w", err)
			}

			var filter queue.Status
			if statusFilter != "" {
				parsed, ok := queue.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filter = parsed
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				if filter != "" && item.Status != filter {
					continue
				}
				detail := item.OutputDir
				if item.Status == queue.StatusFailed {
					detail = fmt.Sprintf("%s: %s", item.FailedStage, item.ErrorMessage)
				}
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.Stem,
					string(item.Status),
					strconv.Itoa(item.SpeakerCount),
					item.SpeakerSource,
					detail,
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Recording", "Status", "Speakers", "Speaker Source", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show recordings with this status")
	return cmd
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open outcome store: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear recordings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recording(s)\n", removed)
			return nil
		},
	}
}
