package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/preflight"
	"scribe/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show readiness checks and processing totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			colorize := isTerminal(out)
			results := preflight.RunAll(cmd.Context(), cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				state := "ok"
				if !result.Passed {
					state = "FAIL"
					if colorize {
						state = ansiRed + state + ansiReset
					}
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open outcome store: %w", err)
			}
			defer store.Close()

			items, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list recordings: %w", err)
			}
			counts := make(map[queue.Status]int)
			for _, item := range items {
				counts[item.Status]++
			}
			totalRows := make([][]string, 0, len(counts))
			for _, status := range queue.AllStatuses() {
				if counts[status] == 0 {
					continue
				}
				totalRows = append(totalRows, []string{string(status), fmt.Sprintf("%d", counts[status])})
			}
			if len(totalRows) == 0 {
				fmt.Fprintln(out, "No recordings processed yet")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Recordings"},
				totalRows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
