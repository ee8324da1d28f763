package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agentic-research/ketl/internal/lang"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <path-expr>",
		Short: "Show how a path expression is parsed",
		Example: `  ketl explain 'NodeName.{"Global Quote"}.*'
  ketl explain 'data.*.items.InnerNode2.$key'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explain(cmd.OutOrStdout(), args[0])
			if err := lang.Validate(args[0]); err != nil {
				return fmt.Errorf("path is not fully valid: %w", err)
			}
			return nil
		},
	}
}

func explain(w io.Writer, text string) {
	p := lang.ParsePath(text)
	_, _ = fmt.Fprintf(w, "canonical: %s\n", p)
	_, _ = fmt.Fprintf(w, "node name: %t\n", p.NodeName())
	_, _ = fmt.Fprintln(w, "segments:")
	for i, s := range p.Segments() {
		detail := ""
		switch s.Kind {
		case lang.Literal:
			detail = strconv.Quote(s.Key)
		case lang.InnerNode:
			detail = "position " + strconv.Itoa(s.N)
		}
		_, _ = fmt.Fprintf(w, "  %d  %-10s %s\n", i+1, s.Kind, detail)
	}
	if x, ok := p.JSONPath(); ok {
		_, _ = fmt.Fprintf(w, "jsonpath:  %s\n", x)
	} else {
		_, _ = fmt.Fprintln(w, "jsonpath:  none")
	}
}
