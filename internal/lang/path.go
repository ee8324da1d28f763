// Package lang implements the column definition language: path expressions
// over a JSON document and the `Column <field> = <path>` declarations that
// bind them to output columns.
//
// Parsing is forgiving. Tokens that do not match the grammar are dropped and
// declaration lines that do not match are skipped; Validate is the strict
// counterpart used to gate extraction.
package lang

import (
	"slices"
	"strconv"
	"strings"
)

// NodeNamePrefix marks a path whose terminal emits key names instead of values.
const NodeNamePrefix = "NodeName."

// SegmentKind tags the variant held by a Segment.
type SegmentKind uint8

const (
	// Literal selects an object member by exact key.
	Literal SegmentKind = iota + 1
	// Wildcard selects every member of an object or element of an array.
	Wildcard
	// InnerNode selects the member at a 1-based position in key order.
	InnerNode
	// KeyToken, IndexToken and ValueToken read context captured by the
	// innermost enclosing fan-out instead of walking the document.
	KeyToken
	IndexToken
	ValueToken
)

var kindNames = map[SegmentKind]string{
	Literal:    "Literal",
	Wildcard:   "Wildcard",
	InnerNode:  "InnerNode",
	KeyToken:   "KeyToken",
	IndexToken: "IndexToken",
	ValueToken: "ValueToken",
}

func (k SegmentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "SegmentKind(" + strconv.Itoa(int(k)) + ")"
}

// Segment is one step of a path expression.
type Segment struct {
	Kind SegmentKind
	Key  string // Literal only
	N    int    // InnerNode only, >= 1
}

// IsToken reports whether the segment is one of $key, $index or $value.
func (s Segment) IsToken() bool {
	return s.Kind == KeyToken || s.Kind == IndexToken || s.Kind == ValueToken
}

// String renders the segment in canonical source form.
func (s Segment) String() string {
	switch s.Kind {
	case Literal:
		// A key read from '...' may contain the "} terminator.
		if strings.Contains(s.Key, `"}`) {
			return `'` + s.Key + `'`
		}
		return `{"` + s.Key + `"}`
	case Wildcard:
		return "*"
	case InnerNode:
		return "InnerNode" + strconv.Itoa(s.N)
	case KeyToken:
		return "$key"
	case IndexToken:
		return "$index"
	case ValueToken:
		return "$value"
	}
	return s.Kind.String()
}

// Path is a parsed path expression. It is immutable: accessors hand out
// copies, so resolving it against many documents never changes it.
type Path struct {
	text     string
	nodeName bool
	segs     []Segment
}

// NewPath builds a path from segments. It is the programmatic counterpart
// of ParsePath and copies its input.
func NewPath(nodeName bool, segs ...Segment) Path {
	p := Path{nodeName: nodeName, segs: slices.Clone(segs)}
	p.text = p.String()
	return p
}

// Text returns the source text the path was parsed from.
func (p Path) Text() string { return p.text }

// NodeName reports whether the expression started with the NodeName. prefix.
func (p Path) NodeName() bool { return p.nodeName }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// At returns the i-th segment.
func (p Path) At(i int) Segment { return p.segs[i] }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment { return slices.Clone(p.segs) }

// IsEmpty reports whether no segment was recognized.
func (p Path) IsEmpty() bool { return len(p.segs) == 0 }

// HasFanOut reports whether the path contains a wildcard.
func (p Path) HasFanOut() bool {
	return slices.ContainsFunc(p.segs, func(s Segment) bool { return s.Kind == Wildcard })
}

// String renders the path in canonical form, e.g. NodeName.{"a"}.*.
func (p Path) String() string {
	var b strings.Builder
	if p.nodeName {
		b.WriteString(NodeNamePrefix)
	}
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses a path expression. Unrecognized segments are dropped; it
// never fails. The same text always yields the same Path.
func ParsePath(text string) Path {
	body, nodeName, _ := stripNodeName(text)
	p := Path{text: text, nodeName: nodeName}
	for _, tok := range splitSegments(body) {
		seg, reason := classify(tok.raw)
		if reason != "" {
			continue
		}
		p.segs = append(p.segs, seg)
	}
	return p
}

// stripNodeName removes a leading NodeName. prefix and returns the body and
// the byte offset of the body within text.
func stripNodeName(text string) (string, bool, int) {
	trimmed := strings.TrimLeft(text, " \t")
	offset := len(text) - len(trimmed)
	if strings.HasPrefix(trimmed, NodeNamePrefix) {
		return trimmed[len(NodeNamePrefix):], true, offset + len(NodeNamePrefix)
	}
	return text, false, 0
}
