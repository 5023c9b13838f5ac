package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"steamtab/internal/catalog"
	"steamtab/internal/ingest"
	"steamtab/internal/logging"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <appid>",
		Short: "Display the export fields for one catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			appid := args[0]
			ds, err := ingest.Load(cmd.Context(), cfg.Paths.RecordStore, ingest.Options{
				Policy: ingest.PolicySkip,
				Logger: logging.NewNop(),
			})
			if err != nil {
				return err
			}

			for _, rec := range ds.Records {
				if rec.QueryID.String() != appid {
					continue
				}
				row, ok := catalog.Normalize(rec)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Record %s is excluded from the export (unsuccessful lookup or not a game)\n", appid)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFieldTable(row))
				return nil
			}
			return fmt.Errorf("no record with appid %s in %s", appid, cfg.Paths.RecordStore)
		},
	}
}

func renderFieldTable(row catalog.Row) string {
	caser := cases.Title(language.Und)
	rows := make([][]string, 0, len(catalog.Schema))
	for _, field := range catalog.Schema {
		rows = append(rows, []string{caser.String(field.Name), field.Value(row)})
	}
	return renderTable([]string{"field", "value"}, rows)
}
