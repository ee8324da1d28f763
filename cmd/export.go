package cmd

import (
	"fmt"
	"time"

	"github.com/agentic-research/ketl/internal/ingest"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [doc.json|-] <output.db>",
		Short: "Flatten a document and write the rows into a SQLite table",
		Long: `Flattens like "ketl flatten" and stores the rows in a SQLite table,
replacing it if it exists. The document argument is omitted when
--sqlite-source is set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			output := args[len(args)-1]
			docArgs := args[:len(args)-1]

			set, err := loadDefinitions(cfg)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, cfg, docArgs)
			if err != nil {
				return err
			}
			notifier(cmd).Dropped(set.Dropped)

			engine := ingest.NewEngine(ingest.Options{
				Concurrency: cfg.Concurrency,
				Tracer:      tracerFor(cmd, cfg),
			})
			tbl, err := engine.FlattenSet(cmd.Context(), doc, set)
			if err != nil {
				return err
			}

			writer, err := ingest.NewSQLiteWriter(output)
			if err != nil {
				return err
			}
			defer func() { _ = writer.Close() }()

			start := time.Now()
			if err := writer.WriteTable(cmd.Context(), cfg.ExportTable(), tbl); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s (table %s) in %v.\n",
				len(tbl.Rows), output, cfg.ExportTable(), time.Since(start).Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().StringP("definitions", "d", "", "Column definition file")
	cmd.Flags().String("table", "", "Destination table (default \"rows\")")
	return cmd
}
