package cmd

import (
	"fmt"

	"github.com/agentic-research/ketl/internal/ingest"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/agentic-research/ketl/internal/render"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <defs>",
		Short: "Check a column definition file line by line",
		Long: `Reports every declaration that was accepted, every line that was
dropped and why, and paths where some segments were not recognized.
Exits non-zero when no column survives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDefinitions(args[0])
			if err != nil {
				return err
			}
			set := lang.ParseDefinitionSet(text)
			n := render.NewNotifier(cmd.OutOrStdout())

			partial := 0
			for _, def := range set.Columns {
				n.Valid(def.Line, def.Field, def.Path.String())
				if err := lang.Validate(def.Path.Text()); err != nil {
					partial++
					n.Info("  line %d: %v", def.Line, err)
				}
			}
			n.Dropped(set.Dropped)
			n.Info("%d columns, %d dropped lines, %d partially recognized paths",
				len(set.Columns), len(set.Dropped), partial)

			if set.Empty() {
				return fmt.Errorf("%s: %w", args[0], ingest.ErrNoDefinitions)
			}
			return nil
		},
	}
}
