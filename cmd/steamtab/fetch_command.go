package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"steamtab/internal/archive"
	"steamtab/internal/fileutil"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download and unpack the catalog archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			opts := archive.Options{
				URL:         cfg.Source.ArchiveURL,
				ArchivePath: cfg.Source.ArchivePath,
				ExtractDir:  cfg.ExtractDir(),
				Timeout:     time.Duration(cfg.Source.DownloadTimeout) * time.Second,
				Logger:      logger,
			}
			if err := archive.Fetch(cmd.Context(), opts); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if fileutil.Exists(cfg.Paths.RecordStore) {
				fmt.Fprintf(out, "Record store ready at %s\n", cfg.Paths.RecordStore)
			} else {
				fmt.Fprintf(out, "Archive unpacked, but %s was not found inside it\n", cfg.Paths.RecordStore)
			}
			return nil
		},
	}
}
