package cmd

import (
	"fmt"
	"os"

	"github.com/agentic-research/ketl/internal/config"
	"github.com/agentic-research/ketl/internal/ingest"
	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/spf13/cobra"
)

// source picks the document source: the configured SQLite database, or the
// file (or "-" for stdin) named by the first argument.
func source(cmd *cobra.Command, cfg *config.Config, args []string) (ingest.Source, error) {
	if cfg.SQLite.Source != "" {
		return ingest.SQLiteSource{DBPath: cfg.SQLite.Source, Query: cfg.RecordQuery()}, nil
	}
	if len(args) == 0 {
		return nil, errNoInput("document (a JSON file, - for stdin, or --sqlite-source)")
	}
	return ingest.FileSource{Path: args[0], Stdin: cmd.InOrStdin()}, nil
}

func loadDocument(cmd *cobra.Command, cfg *config.Config, args []string) (jsonv.Value, error) {
	src, err := source(cmd, cfg, args)
	if err != nil {
		return jsonv.Null(), err
	}
	doc, err := src.Load(cmd.Context())
	if err != nil {
		return jsonv.Null(), err
	}
	getLogger(cmd).Debug("document loaded", "kind", doc.Kind().String(), "members", doc.Len())
	return doc, nil
}

func readDefinitions(path string) (string, error) {
	if path == "" {
		return "", errNoInput("definitions file (-d, or definitions in ketl.yaml)")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read definitions: %w", err)
	}
	return string(b), nil
}

func loadDefinitions(cfg *config.Config) (lang.DefinitionSet, error) {
	text, err := readDefinitions(cfg.Definitions)
	if err != nil {
		return lang.DefinitionSet{}, err
	}
	return lang.ParseDefinitionSet(text), nil
}
