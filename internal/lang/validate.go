package lang

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is wrapped by every error returned from Validate.
var ErrSyntax = errors.New("path syntax error")

// SyntaxError locates the first malformed segment of a path expression.
type SyntaxError struct {
	Offset int    // byte offset of Token in the validated text
	Token  string // offending segment, trimmed
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at offset %d: %s", ErrSyntax, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%v at offset %d near %q: %s", ErrSyntax, e.Offset, e.Token, e.Reason)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Validate checks text against the path grammar without touching any
// document. It reports the first malformed segment.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return &SyntaxError{Reason: "empty path"}
	}

	body, nodeName, offset := stripNodeName(text)
	if nodeName && strings.TrimSpace(body) == "" {
		return &SyntaxError{Offset: offset, Reason: "missing path after " + NodeNamePrefix}
	}

	for _, tok := range splitSegments(body) {
		if _, reason := classify(tok.raw); reason != "" {
			return &SyntaxError{Offset: offset + tok.offset, Token: tok.raw, Reason: reason}
		}
	}
	return nil
}

// IsValid reports whether text is a syntactically well-formed path.
func IsValid(text string) bool {
	return Validate(text) == nil
}
