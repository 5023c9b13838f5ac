package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"steamtab/internal/runstore"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var showFailures bool

	cmd := &cobra.Command{
		Use:   "status [run-id]",
		Short: "Show recent pipeline runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runstore.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			if !showFailures && len(args) == 0 {
				fmt.Fprintln(out, renderRunsTable(runs))
				return nil
			}

			runID := runs[0].ID
			if len(args) == 1 {
				runID = resolveRunID(runs, args[0])
			}
			failures, err := store.Failures(cmd.Context(), runID)
			if err != nil {
				return fmt.Errorf("list failures: %w", err)
			}
			if len(failures) == 0 {
				fmt.Fprintf(out, "No image failures recorded for run %s\n", runID)
				return nil
			}
			fmt.Fprintln(out, renderFailuresTable(failures))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to list")
	cmd.Flags().BoolVar(&showFailures, "failures", false, "List image failures for the most recent run (or the given run id)")
	return cmd
}

func renderRunsTable(runs []runstore.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			shortRunID(run.ID),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			strconv.Itoa(run.RecordsTotal),
			strconv.Itoa(run.RowsExported),
			strconv.Itoa(run.AssetsSucceeded),
			strconv.Itoa(run.AssetsSkipped),
			strconv.Itoa(run.AssetsFailed),
		})
	}
	headers := []string{"started", "run", "elapsed", "records", "rows", "ok", "skip", "fail"}
	return renderTable(headers, rows, 3, 4, 5, 6, 7)
}

func renderFailuresTable(failures []runstore.AssetFailure) string {
	rows := make([][]string, 0, len(failures))
	for _, failure := range failures {
		rows = append(rows, []string{failure.AppID, failure.URL, failure.Detail})
	}
	return renderTable([]string{"appid", "url", "detail"}, rows)
}

// resolveRunID lets callers use the shortened run id printed by the runs
// table. Unknown values pass through unchanged.
func resolveRunID(runs []runstore.Run, arg string) string {
	for _, run := range runs {
		if run.ID == arg || strings.HasPrefix(run.ID, arg) {
			return run.ID
		}
	}
	return arg
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
