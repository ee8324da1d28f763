package cmd

import (
	"github.com/agentic-research/ketl/internal/ingest"
	"github.com/agentic-research/ketl/internal/render"
	"github.com/spf13/cobra"
)

func newFlattenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten [doc.json|-]",
		Short: "Flatten a JSON document into rows",
		Example: `  ketl flatten examples/global-quote.json -d examples/global-quote.ketl
  curl -s $URL | ketl flatten - -d defs.ketl -o csv
  ketl flatten --sqlite-source records.db -d defs.ketl -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			set, err := loadDefinitions(cfg)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, cfg, args)
			if err != nil {
				return err
			}

			format := cfg.Format()
			if format != render.FormatJSON {
				notifier(cmd).Dropped(set.Dropped)
			}

			engine := ingest.NewEngine(ingest.Options{
				Concurrency: cfg.Concurrency,
				Tracer:      tracerFor(cmd, cfg),
			})
			tbl, err := engine.FlattenSet(cmd.Context(), doc, set)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), tbl, set.Dropped, format)
		},
	}
	cmd.Flags().StringP("definitions", "d", "", "Column definition file")
	return cmd
}
