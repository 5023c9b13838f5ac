package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"steamtab/internal/logging"
	"steamtab/internal/pipeline"
	"steamtab/internal/runstore"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipImages bool
	var skipExport bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest the catalog, write the export, and download images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(cmd, ctx, pipeline.Options{
				SkipExport: skipExport,
				SkipImages: skipImages,
			})
		},
	}

	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "Skip the image download stage")
	cmd.Flags().BoolVar(&skipExport, "skip-export", false, "Skip writing the export table")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Ingest the catalog and write the export table only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(cmd, ctx, pipeline.Options{SkipImages: true})
		},
	}
}

func newImagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Ingest the catalog and download header images only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(cmd, ctx, pipeline.Options{SkipExport: true})
		},
	}
}

func executePipeline(cmd *cobra.Command, ctx *commandContext, opts pipeline.Options) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return err
	}

	store, storeErr := runstore.Open(cfg)
	if storeErr != nil {
		logger.Warn("run history unavailable", logging.Error(storeErr))
		store = nil
	} else {
		defer store.Close()
	}

	result, runErr := pipeline.New(cfg, store, logger).Run(cmd.Context(), opts)
	if result != nil {
		printRunSummary(cmd.OutOrStdout(), result, opts)
	}
	return runErr
}

func printRunSummary(out io.Writer, result *pipeline.Result, opts pipeline.Options) {
	rows := [][]string{
		{"records ingested", strconv.Itoa(result.RecordsTotal)},
		{"records malformed", strconv.Itoa(result.RecordsMalformed)},
		{"rows exported", strconv.Itoa(result.RowsExported)},
	}
	if !opts.SkipImages {
		rows = append(rows,
			[]string{"images skipped", strconv.Itoa(result.Assets.Skipped)},
			[]string{"images downloaded", strconv.Itoa(result.Assets.Succeeded)},
			[]string{"images failed", strconv.Itoa(result.Assets.Failed)},
		)
	}
	fmt.Fprintln(out, renderTable([]string{"stage", "count"}, rows, 1))
	if !opts.SkipExport {
		fmt.Fprintf(out, "Export: %s\n", result.ExportPath)
	}
	if result.Assets.Failed > 0 {
		line := fmt.Sprintf("%d image downloads failed; see `steamtab status --failures`", result.Assets.Failed)
		if shouldColorize(out) {
			line = ansiYellow + line + ansiReset
		}
		fmt.Fprintln(out, line)
	}
}
