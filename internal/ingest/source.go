package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/agentic-research/ketl/internal/jsonv"
)

// StdinPath selects standard input as the document source.
const StdinPath = "-"

// FileSource reads a JSON document from a file, or from Stdin when Path is
// StdinPath.
type FileSource struct {
	Path  string
	Stdin io.Reader
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (jsonv.Value, error) {
	if err := ctx.Err(); err != nil {
		return jsonv.Null(), err
	}
	var (
		data []byte
		err  error
	)
	if s.Path == StdinPath {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(s.Path)
	}
	if err != nil {
		return jsonv.Null(), fmt.Errorf("read %s: %w", s.name(), err)
	}
	doc, err := jsonv.Parse(data)
	if err != nil {
		return jsonv.Null(), fmt.Errorf("parse %s: %w", s.name(), err)
	}
	return doc, nil
}

func (s FileSource) name() string {
	if s.Path == StdinPath {
		return "stdin"
	}
	return s.Path
}

// SQLiteSource combines the records of a SQLite table into one document.
// See LoadSQLite.
type SQLiteSource struct {
	DBPath string
	Query  string
}

// Load implements Source.
func (s SQLiteSource) Load(ctx context.Context) (jsonv.Value, error) {
	return LoadSQLite(ctx, s.DBPath, s.Query)
}

var (
	_ Source = FileSource{}
	_ Source = SQLiteSource{}
)
