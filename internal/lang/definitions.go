package lang

import (
	"regexp"
	"strings"

	"github.com/agentic-research/ketl/api"
)

// CommentPrefix starts a comment line or a trailing comment.
const CommentPrefix = "//"

var declRe = regexp.MustCompile(`^\s*Column\s+(\w+)\s*=\s*(.*)$`)

// Reasons attached to dropped definition lines.
const (
	ReasonNotDeclaration = "not a column declaration"
	ReasonEmptyPath      = "empty path expression"
	ReasonNoSegments     = "no recognizable path segments"
)

// ColumnDefinition binds an output column to a path expression.
type ColumnDefinition struct {
	Field string
	Path  Path
	Line  int // 1-based line of the declaration that produced this definition
}

// DefinitionSet is the outcome of parsing a definition text.
type DefinitionSet struct {
	Columns []ColumnDefinition
	Dropped []api.DroppedLine
}

// Empty reports whether no line produced a column.
func (s DefinitionSet) Empty() bool { return len(s.Columns) == 0 }

// Fields returns the column names in declaration order.
func (s DefinitionSet) Fields() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Field
	}
	return out
}

// Lookup finds a column by field name.
func (s DefinitionSet) Lookup(field string) (ColumnDefinition, bool) {
	for _, c := range s.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// ParseDefinitions parses definition text and returns the well-formed
// columns. Malformed lines are skipped silently.
func ParseDefinitions(text string) []ColumnDefinition {
	return ParseDefinitionSet(text).Columns
}

// ParseDefinitionSet parses definition text, one declaration per line:
//
//	// comment
//	Column Symbol = {"Global Quote"}.{"01. symbol"}
//	Column Keys   = NodeName.{"Global Quote"}.*   // one row per key
//
// A later declaration of an existing field replaces its path and keeps the
// column in the position of the first declaration.
func ParseDefinitionSet(text string) DefinitionSet {
	var set DefinitionSet
	pos := make(map[string]int)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
			continue
		}

		drop := func(reason string) {
			set.Dropped = append(set.Dropped, api.DroppedLine{Line: i + 1, Text: line, Reason: reason})
		}

		m := declRe.FindStringSubmatch(line)
		if m == nil {
			drop(ReasonNotDeclaration)
			continue
		}

		expr := stripComment(m[2])
		if expr == "" {
			drop(ReasonEmptyPath)
			continue
		}
		path := ParsePath(expr)
		if path.IsEmpty() {
			drop(ReasonNoSegments)
			continue
		}

		def := ColumnDefinition{Field: m[1], Path: path, Line: i + 1}
		if j, ok := pos[def.Field]; ok {
			set.Columns[j] = def
			continue
		}
		pos[def.Field] = len(set.Columns)
		set.Columns = append(set.Columns, def)
	}
	return set
}

// stripComment removes a trailing // comment that is not inside a quoted key.
func stripComment(expr string) string {
	if i := indexUnquoted(expr, CommentPrefix); i >= 0 {
		expr = expr[:i]
	}
	return strings.TrimSpace(expr)
}
