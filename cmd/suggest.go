package cmd

import (
	"fmt"

	"github.com/agentic-research/ketl/internal/suggest"
	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	scfg := suggest.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "suggest [doc.json|-]",
		Short: "Print column definitions for every path in a sample document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, getConfig(cmd), args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), suggest.Generate(doc, scfg))
			return err
		},
	}
	cmd.Flags().IntVar(&scfg.MaxDepth, "max-depth", scfg.MaxDepth, "Nesting levels to describe (0 = all)")
	cmd.Flags().IntVar(&scfg.MaxItems, "max-items", scfg.MaxItems, "Array elements to describe per array (0 = all)")
	return cmd
}
