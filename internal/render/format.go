// Package render writes flattened tables and engine notices for the
// terminal: go-pretty tables in several formats, JSON, and lipgloss-styled
// diagnostics.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Format selects how a table is written.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format in help order.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat maps a user supplied name to a Format. Matching ignores case,
// "md" is accepted for markdown and "" means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case "md":
		return FormatMarkdown, nil
	case FormatTable, FormatCSV, FormatMarkdown, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
