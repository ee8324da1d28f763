// Package suggest generates column definitions from a sample document so a
// user can start from paths that are known to resolve.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
)

// Config limits how much of the document is walked.
type Config struct {
	MaxDepth int // nesting levels to describe, 0 = unlimited
	MaxItems int // array elements to describe per array, 0 = all
}

// DefaultConfig returns the limits used by the CLI.
func DefaultConfig() Config {
	return Config{MaxItems: 5}
}

// Indent is prepended once per nesting level.
const Indent = "  "

// fallbackField names a column whose key has no word characters.
const fallbackField = "Field"

var nonWord = regexp.MustCompile(`\W+`)

// FieldName turns a member key into a column identifier.
func FieldName(key string) string {
	if f := nonWord.ReplaceAllString(key, ""); f != "" {
		return f
	}
	return fallbackField
}

type generator struct {
	cfg   Config
	lines []string
}

// Generate returns definition text for doc. Every container level gets a
// Names/Values pair that fans out over its members, and every member gets a
// column of its own. The text parses with lang.ParseDefinitions; later
// duplicates of a field name overwrite earlier ones, so it is meant as a
// menu to copy from rather than a set to use whole.
func Generate(doc jsonv.Value, cfg Config) string {
	g := &generator{cfg: cfg}
	g.level(doc, nil, 0)
	out := strings.TrimRight(strings.Join(g.lines, "\n"), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (g *generator) emit(depth int, format string, args ...any) {
	if format == "" {
		g.lines = append(g.lines, "")
		return
	}
	g.lines = append(g.lines, strings.Repeat(Indent, depth)+fmt.Sprintf(format, args...))
}

func (g *generator) level(v jsonv.Value, prefix []lang.Segment, depth int) {
	if !v.IsObject() && !v.IsArray() || v.Len() == 0 {
		return
	}
	fan := append(clone(prefix), lang.Segment{Kind: lang.Wildcard})
	g.emit(depth, "// Multiple rows - all members at this level:")
	g.emit(depth, "Column Names = %s  // Will create %d rows", lang.NewPath(true, fan...), v.Len())
	g.emit(depth, "Column Values = %s  // Will create %d rows", lang.NewPath(false, fan...), v.Len())
	g.emit(depth, "")

	n := v.Len()
	truncated := false
	if v.IsArray() && g.cfg.MaxItems > 0 && n > g.cfg.MaxItems {
		n, truncated = g.cfg.MaxItems, true
	}
	for pos := 0; pos < n; pos++ {
		field, seg, child := memberAt(v, pos)
		path := append(clone(prefix), seg)
		kind := "Value"
		note := "Single value"
		if child.IsObject() || child.IsArray() {
			kind, note = "Object", "Contains nested data"
		}
		g.emit(depth, "// %s member %d:", kind, pos+1)
		g.emit(depth, "Column %s = %s  // %s", field, lang.NewPath(false, path...), note)
		if (child.IsObject() || child.IsArray()) && (g.cfg.MaxDepth == 0 || depth+1 < g.cfg.MaxDepth) {
			g.level(child, path, depth+1)
		}
		g.emit(depth, "")
	}
	if truncated {
		g.emit(depth, "// %d more elements not shown", v.Len()-n)
		g.emit(depth, "")
	}
}

// memberAt returns the column name, path segment and value for position pos.
// Object members are addressed by key, array elements and keys that cannot
// be written back as a path segment by position.
func memberAt(v jsonv.Value, pos int) (string, lang.Segment, jsonv.Value) {
	byPos := lang.Segment{Kind: lang.InnerNode, N: pos + 1}
	if v.IsArray() {
		e, _ := v.Index(pos)
		return fmt.Sprintf("Item%d", pos+1), byPos, e
	}
	m, _ := v.Object().At(pos)
	seg := lang.Segment{Kind: lang.Literal, Key: m.Key}
	if !roundTrips(seg) {
		seg = byPos
	}
	return FieldName(m.Key), seg, m.Value
}

// roundTrips reports whether seg survives rendering and reparsing on a
// single definition line.
func roundTrips(seg lang.Segment) bool {
	text := seg.String()
	if strings.ContainsAny(text, "\r\n") {
		return false
	}
	p := lang.ParsePath(text)
	return p.Len() == 1 && p.At(0) == seg
}

func clone(segs []lang.Segment) []lang.Segment {
	return append([]lang.Segment(nil), segs...)
}
