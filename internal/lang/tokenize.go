package lang

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	innerNodeRe = regexp.MustCompile(`^InnerNode([0-9]+)$`)
	bareWordRe  = regexp.MustCompile(`^[\w\s-]+$`)
)

// token is one raw segment of a path expression.
type token struct {
	raw    string // trimmed text
	offset int    // byte offset of raw in the scanned text
}

// indexUnquoted returns the index of the first sep in text that is not
// inside a {"..."}, "..." or '...' block, or -1. A quote only opens a block
// at the start of a segment; quoted blocks have no escapes and end at the
// first closing delimiter.
func indexUnquoted(text, sep string) int {
	closer := ""
	atStart := true
	for i := 0; i < len(text); i++ {
		if closer != "" {
			if strings.HasPrefix(text[i:], closer) {
				i += len(closer) - 1
				closer = ""
			}
			continue
		}
		if strings.HasPrefix(text[i:], sep) {
			return i
		}
		if atStart {
			switch {
			case strings.HasPrefix(text[i:], `{"`):
				closer, atStart = `"}`, false
				i++
				continue
			case text[i] == '"' || text[i] == '\'':
				closer, atStart = string(text[i]), false
				continue
			}
		}
		switch text[i] {
		case '.':
			atStart = true
		case ' ', '\t':
		default:
			atStart = false
		}
	}
	return -1
}

// splitSegments splits a path body on unquoted dots.
func splitSegments(text string) []token {
	var toks []token
	start := 0
	for {
		j := indexUnquoted(text[start:], ".")
		if j < 0 {
			return append(toks, newToken(text, start, len(text)))
		}
		toks = append(toks, newToken(text, start, start+j))
		start += j + 1
	}
}

func newToken(text string, start, end int) token {
	s := text[start:end]
	trimmed := strings.TrimLeft(s, " \t")
	return token{
		raw:    strings.TrimRight(trimmed, " \t"),
		offset: start + len(s) - len(trimmed),
	}
}

// classify maps one raw segment to a Segment. A non-empty reason means the
// segment is malformed.
func classify(raw string) (Segment, string) {
	switch raw {
	case "":
		return Segment{}, "empty segment"
	case "*":
		return Segment{Kind: Wildcard}, ""
	case "$key":
		return Segment{Kind: KeyToken}, ""
	case "$index":
		return Segment{Kind: IndexToken}, ""
	case "$value":
		return Segment{Kind: ValueToken}, ""
	}

	if key, ok, reason := unquote(raw); ok || reason != "" {
		if reason != "" {
			return Segment{}, reason
		}
		return Segment{Kind: Literal, Key: key}, ""
	}

	if m := innerNodeRe.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return Segment{}, "InnerNode position must be a positive integer"
		}
		return Segment{Kind: InnerNode, N: n}, ""
	}

	if bareWordRe.MatchString(raw) {
		return Segment{Kind: Literal, Key: raw}, ""
	}
	return Segment{}, "unexpected characters in segment"
}

// unquote recognizes {"key"}, "key" and 'key'. ok is false with an empty
// reason when raw is not quoted at all.
func unquote(raw string) (key string, ok bool, reason string) {
	for _, q := range [][2]string{{`{"`, `"}`}, {`"`, `"`}, {`'`, `'`}} {
		open, closeQ := q[0], q[1]
		if !strings.HasPrefix(raw, open) {
			continue
		}
		body := raw[len(open):]
		if !strings.HasSuffix(body, closeQ) {
			return "", false, "unterminated quoted key"
		}
		key = body[:len(body)-len(closeQ)]
		if strings.Contains(key, closeQ) {
			return "", false, "unexpected characters after quoted key"
		}
		return key, true, ""
	}
	return "", false, ""
}
