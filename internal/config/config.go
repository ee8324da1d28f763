// Package config loads ketl settings from defaults, a ketl.yaml file,
// KETL_ environment variables and command line flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agentic-research/ketl/internal/ingest"
	"github.com/agentic-research/ketl/internal/render"
)

// Defaults applied before any other source.
const (
	DefaultOutput      = string(render.FormatTable)
	DefaultConcurrency = 0 // GOMAXPROCS
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the merged configuration.
type Config struct {
	// Definitions is the path of the column definition file.
	Definitions string       `koanf:"definitions"`
	Output      string       `koanf:"output"`
	Verbose     bool         `koanf:"verbose"`
	Trace       bool         `koanf:"trace"`
	Concurrency int          `koanf:"concurrency"`
	SQLite      SQLiteConfig `koanf:"sqlite"`
	Export      ExportConfig `koanf:"export"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// SQLiteConfig selects a SQLite database as the document source.
type SQLiteConfig struct {
	Source string `koanf:"source"`
	Query  string `koanf:"query"`
}

type ExportConfig struct {
	Table string `koanf:"table"`
}

// Validate checks value ranges and the output format.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be >= 0, got %d", ErrInvalid, c.Concurrency)
	}
	if c.SQLite.Query != "" && c.SQLite.Source == "" {
		return fmt.Errorf("%w: sqlite.query requires sqlite.source", ErrInvalid)
	}
	return nil
}

// Format returns the parsed output format. Call Validate first.
func (c *Config) Format() render.Format {
	f, err := render.ParseFormat(c.Output)
	if err != nil {
		return render.FormatTable
	}
	return f
}

// RecordQuery returns the SQLite record query, falling back to the default.
func (c *Config) RecordQuery() string {
	if c.SQLite.Query == "" {
		return ingest.DefaultRecordQuery
	}
	return c.SQLite.Query
}

// ExportTable returns the export table name, falling back to the default.
func (c *Config) ExportTable() string {
	if c.Export.Table == "" {
		return ingest.DefaultExportTable
	}
	return c.Export.Table
}

type loggerKey struct{}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
